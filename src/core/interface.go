package core

import (
	"context"
	"time"

	"mxshs/vsv/src/domain"
)

// Renderer loads a URL, lets client-side scripts run for settle and
// returns the resulting markup.
type Renderer interface {
	Render(ctx context.Context, url string, settle time.Duration) (string, error)
}

// Browser is a Renderer owning an automation resource that must be released.
type Browser interface {
	Renderer
	Close() error
}

type MatchParser interface {
	ParseMatches(ctx context.Context, url string) ([]domain.RawMatch, error)
	ParseOdds(ctx context.Context, matchID string) (domain.Odds, error)
}

// Selector names the page structure of a results site. Section, Sport and
// Match are class names, the rest are CSS selectors.
type Selector struct {
	Section   string
	Sport     string
	Match     string
	HomeTeam  string
	AwayTeam  string
	HomeScore string
	AwayScore string
	IDPrefix  string
	OddsRow   string
	OddsCell  string
}

var LivesportSelector = Selector{
	Section:   "sportName",
	Sport:     "soccer",
	Match:     "event__match",
	HomeTeam:  ".event__participant--home",
	AwayTeam:  ".event__participant--away",
	HomeScore: ".event__score--home",
	AwayScore: ".event__score--away",
	IDPrefix:  "g_1_",
	OddsRow:   ".ui-table__row",
	OddsCell:  ".ui-table__cell",
}
