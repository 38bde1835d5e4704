package parser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mxshs/vsv/src/core"
	"mxshs/vsv/src/domain"
)

type fakeBrowser struct {
	mu       sync.Mutex
	pages    map[string]string
	errs     map[string]error
	calls    []string
	closed   int
	onRender func(url string)
}

func (b *fakeBrowser) Render(ctx context.Context, url string, settle time.Duration) (string, error) {
	b.mu.Lock()
	b.calls = append(b.calls, url)
	hook := b.onRender
	b.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := b.errs[url]; ok {
		return "", err
	}
	return b.pages[url], nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

func (b *fakeBrowser) launcher() LaunchFunc {
	return func(ctx context.Context) (core.Browser, error) {
		return b, nil
	}
}

func results(rounds ...[]string) string {
	var body strings.Builder
	for i, matches := range rounds {
		fmt.Fprintf(&body, `<div class="event__header sportName soccer">Round %d</div>`, i+1)
		for _, m := range matches {
			body.WriteString(m)
		}
	}
	return `<html><body><div class="leagues--static">` + body.String() + `</div></body></html>`
}

func fixture(id, home, away string, sh, sa int) string {
	return fmt.Sprintf(`<div id="g_1_%s" class="event__match">`+
		`<div class="event__participant--home">%s</div><div class="event__participant--away">%s</div>`+
		`<div class="event__score--home">%d</div><div class="event__score--away">%d</div></div>`,
		id, home, away, sh, sa)
}

func oddsTable(home, away string) string {
	return `<html><body>` +
		`<div class="ui-table__row"><div class="ui-table__cell">1</div><div class="ui-table__cell">` + home + `</div><div class="ui-table__cell"></div></div>` +
		`<div class="ui-table__row"><div class="ui-table__cell">2</div><div class="ui-table__cell">` + away + `</div><div class="ui-table__cell"></div></div>` +
		`</body></html>`
}

var (
	leagueA = domain.League{ID: "premier-league", Name: "Premier League", URL: "https://results/a"}
	leagueB = domain.League{ID: "serie-a", Name: "Serie A", URL: "https://results/b"}
	leagueC = domain.League{ID: "laliga", Name: "La Liga", URL: "https://results/c"}
)

func testOptions(leagues ...domain.League) Options {
	return Options{
		Leagues: leagues,
		Parse: core.ParseOptions{
			RoundLimit:      5,
			ResultsTimeout:  time.Second,
			OddsTimeout:     time.Second,
			OddsURLTemplate: "https://odds/%s",
		},
		OddsWorkers: 1,
	}
}

func newBrowser() *fakeBrowser {
	return &fakeBrowser{
		pages: map[string]string{
			leagueA.URL: results([]string{
				fixture("a1", "Arsenal", "Chelsea", 2, 0),
				fixture("a2", "Everton", "Fulham", 1, 0),
			}),
			leagueB.URL: results(
				[]string{fixture("b1", "Inter", "Milan", 0, 1)},
				[]string{fixture("b2", "Roma", "Lazio", 1, 1)},
			),
			"https://odds/a1": oddsTable("1.5", "2.5"),
			"https://odds/b1": oddsTable("1.8", "2.2"),
			"https://odds/b2": oddsTable("2.0", "2.0"),
		},
		errs: map[string]error{
			"https://odds/a2": errors.New("odds page timeout"),
		},
	}
}

func names(teams []domain.TeamStat) []string {
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Name)
	}
	return out
}

func TestScraper_Run(t *testing.T) {
	b := newBrowser()
	s := NewScraper(b.launcher(), testOptions(leagueA, leagueB), nil)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	// Everton/Fulham lost their odds and drop out; ties keep league order.
	assert.Equal(t, []string{"Milan", "Arsenal", "Roma", "Lazio", "Chelsea", "Inter"}, names(res.Teams))

	milan := res.Teams[0]
	assert.Equal(t, "Serie A", milan.League)
	assert.Equal(t, "serie-a", milan.LeagueID)
	assert.Equal(t, 50.0, milan.TotalStakes)
	assert.InDelta(t, 110.0, milan.TotalReturns, 1e-9)
	assert.InDelta(t, 120.0, milan.VSV, 1e-9)
	assert.Equal(t, 1, milan.OutsiderCount)

	assert.False(t, res.Timestamp.IsZero())
	assert.Equal(t, time.UTC, res.Timestamp.Location())
	assert.Equal(t, 1, b.closed)
}

func TestScraper_LeagueFailureIsIsolated(t *testing.T) {
	b := newBrowser()
	b.errs[leagueA.URL] = errors.New("navigation timeout")
	s := NewScraper(b.launcher(), testOptions(leagueA, leagueC, leagueB), nil)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	for _, team := range res.Teams {
		assert.Equal(t, "serie-a", team.LeagueID)
	}
	assert.Len(t, res.Teams, 4)
}

func TestScraper_OddsFailureDoesNotAbortSiblings(t *testing.T) {
	b := newBrowser()
	s := NewScraper(b.launcher(), testOptions(leagueA), nil)

	matches := s.ScrapeLeague(context.Background(), core.GetLivesportParser(b, s.opts.Parse), leagueA)
	require.Len(t, matches, 2)

	assert.True(t, matches[0].HasOdds())
	assert.False(t, matches[1].HasOdds())
	assert.Nil(t, matches[1].HomeOdds)
	assert.Contains(t, b.calls, "https://odds/a2")
}

func TestScraper_ParallelOddsKeepMatchOrder(t *testing.T) {
	b := newBrowser()
	var rows []string
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("p%d", i)
		rows = append(rows, fixture(id, "Home"+id, "Away"+id, i%3, 1))
		b.pages["https://odds/"+id] = oddsTable(fmt.Sprintf("%d.5", i+1), "2.5")
	}
	b.pages[leagueC.URL] = results(rows)

	opts := testOptions(leagueC)
	opts.OddsWorkers = 4
	s := NewScraper(b.launcher(), opts, nil)

	matches := s.ScrapeLeague(context.Background(), core.GetLivesportParser(b, opts.Parse), leagueC)
	require.Len(t, matches, 12)
	for i, m := range matches {
		assert.Equal(t, fmt.Sprintf("p%d", i), m.MatchID)
		require.NotNil(t, m.HomeOdds)
		assert.InDelta(t, float64(i+1)+0.5, *m.HomeOdds, 1e-9)
	}
}

func TestScraper_LaunchFailure(t *testing.T) {
	s := NewScraper(func(ctx context.Context) (core.Browser, error) {
		return nil, errors.New("chrome not found")
	}, testOptions(leagueA), nil)

	_, err := s.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBrowserLaunch))
	assert.Contains(t, err.Error(), "chrome not found")
}

func TestScraper_CancelledContextFailsAndReleasesBrowser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := newBrowser()
	b.onRender = func(url string) {
		if url == leagueA.URL {
			cancel()
		}
	}
	s := NewScraper(b.launcher(), testOptions(leagueA, leagueB), nil)

	_, err := s.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScrapeAborted))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, b.closed)
	assert.NotContains(t, b.calls, leagueB.URL)
}

func TestScraper_NoLeagues(t *testing.T) {
	b := newBrowser()
	s := NewScraper(b.launcher(), testOptions(), nil)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res.Teams)
	assert.Empty(t, res.Teams)
}
