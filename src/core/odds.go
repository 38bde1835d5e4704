package core

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"mxshs/vsv/src/domain"
)

const (
	homeLabel = "1"
	awayLabel = "2"
)

// ExtractOdds reads draw-no-bet prices from an odds table. The first row
// labelled "1" with a usable price sets the home odds, the first labelled
// "2" the away odds. Rows with fewer than three cells are ignored.
func ExtractOdds(s *goquery.Selection, sel Selector) domain.Odds {
	var odds domain.Odds

	s.Find(sel.OddsRow).EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find(sel.OddsCell)
		if cells.Length() < 3 {
			return true
		}

		label := strings.TrimSpace(cells.Eq(0).Text())
		value := cells.Eq(1).Text()

		switch {
		case label == homeLabel && odds.Home == nil:
			odds.Home = parseOdds(value)
		case label == awayLabel && odds.Away == nil:
			odds.Away = parseOdds(value)
		}

		return odds.Home == nil || odds.Away == nil
	})

	return odds
}

func parseOdds(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !domain.ValidOdds(&v) {
		return nil
	}
	return &v
}
