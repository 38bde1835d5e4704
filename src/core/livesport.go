package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"mxshs/vsv/src/domain"
)

type ParseOptions struct {
	RoundLimit      int
	ResultsTimeout  time.Duration
	OddsTimeout     time.Duration
	ResultsSettle   time.Duration
	OddsSettle      time.Duration
	OddsURLTemplate string
}

// LivesportParser reads results and draw-no-bet odds pages of livesport.
type LivesportParser struct {
	renderer Renderer
	sel      Selector
	opts     ParseOptions
}

func GetLivesportParser(renderer Renderer, opts ParseOptions) *LivesportParser {
	return &LivesportParser{
		renderer: renderer,
		sel:      LivesportSelector,
		opts:     opts,
	}
}

func (lp *LivesportParser) ParseMatches(ctx context.Context, url string) ([]domain.RawMatch, error) {
	doc, err := lp.load(ctx, url, lp.opts.ResultsTimeout, lp.opts.ResultsSettle)
	if err != nil {
		return nil, errors.Wrap(err, "results page")
	}

	return ExtractMatches(doc.Selection, lp.sel, lp.opts.RoundLimit), nil
}

func (lp *LivesportParser) ParseOdds(ctx context.Context, matchID string) (domain.Odds, error) {
	doc, err := lp.load(ctx, lp.OddsURL(matchID), lp.opts.OddsTimeout, lp.opts.OddsSettle)
	if err != nil {
		return domain.Odds{}, errors.Wrapf(err, "odds page of %s", matchID)
	}

	return ExtractOdds(doc.Selection, lp.sel), nil
}

func (lp *LivesportParser) OddsURL(matchID string) string {
	return fmt.Sprintf(lp.opts.OddsURLTemplate, matchID)
}

func (lp *LivesportParser) load(ctx context.Context, url string, timeout, settle time.Duration) (*goquery.Document, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	domNode, err := lp.renderer.Render(ctx, url, settle)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(domNode))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", url)
	}

	return doc, nil
}
