package parser

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"mxshs/vsv/src/core"
	"mxshs/vsv/src/domain"
	"mxshs/vsv/src/logging"
	"mxshs/vsv/src/stats"
)

var (
	ErrBrowserLaunch = errors.New("browser launch failed")
	ErrScrapeAborted = errors.New("scrape aborted")
)

// LaunchFunc starts the automation resource used for one scrape job.
type LaunchFunc func(ctx context.Context) (core.Browser, error)

type Options struct {
	Leagues     []domain.League
	Parse       core.ParseOptions
	OddsWorkers int
}

// Scraper runs scrape jobs over the configured leagues.
type Scraper struct {
	launch LaunchFunc
	opts   Options
	log    *logging.Logger
	now    func() time.Time
}

func NewScraper(launch LaunchFunc, opts Options, logger *logging.Logger) *Scraper {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.OddsWorkers < 1 {
		opts.OddsWorkers = 1
	}

	return &Scraper{
		launch: launch,
		opts:   opts,
		log:    logger,
		now:    time.Now,
	}
}

// Run scrapes every league in table order, aggregates the matches and
// returns all teams sorted by descending VSV. League and odds failures are
// logged and skipped; only a launch failure or a cancelled ctx fail the job.
func (s *Scraper) Run(ctx context.Context) (domain.ScrapeResult, error) {
	started := s.now()

	browser, err := s.launch(ctx)
	if err != nil {
		return domain.ScrapeResult{}, errors.Mark(errors.Wrap(err, "launch browser"), ErrBrowserLaunch)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			s.log.Warn("browser close failed", "error", err)
		}
	}()

	p := core.GetLivesportParser(browser, s.opts.Parse)

	teams := []domain.TeamStat{}
	for _, league := range s.opts.Leagues {
		matches := s.ScrapeLeague(ctx, p, league)
		if err := ctx.Err(); err != nil {
			return domain.ScrapeResult{}, errors.Mark(errors.Wrapf(err, "scraping %s", league.Name), ErrScrapeAborted)
		}

		teams = append(teams, stats.ProcessMatches(matches, league)...)
	}

	stats.SortByVSV(teams)

	s.log.Info("scrape finished",
		"leagues", len(s.opts.Leagues),
		"teams", len(teams),
		"duration_ms", s.now().Sub(started).Milliseconds(),
	)

	return domain.ScrapeResult{Teams: teams, Timestamp: s.now().UTC()}, nil
}

// ScrapeLeague reads the results page of a league and attaches odds to each
// match found. A results page failure yields no matches; an odds failure
// leaves that match without odds.
func (s *Scraper) ScrapeLeague(ctx context.Context, p core.MatchParser, league domain.League) []domain.RawMatch {
	log := s.log.With("league", league.ID)
	log.Info("scraping league", "url", league.URL)

	matches, err := p.ParseMatches(ctx, league.URL)
	if err != nil {
		log.Warn("league scrape failed", "error", err)
		return nil
	}

	log.Info("matches found", "count", len(matches))

	s.attachOdds(ctx, p, matches, log)

	return matches
}

// attachOdds fetches odds on a bounded pool. Each task writes only its own
// slice element, so the caller sees every result after Wait.
func (s *Scraper) attachOdds(ctx context.Context, p core.MatchParser, matches []domain.RawMatch, log *logging.Logger) {
	if len(matches) == 0 {
		return
	}

	pool, err := ants.NewPool(s.opts.OddsWorkers)
	if err != nil {
		log.Warn("odds worker pool unavailable, fetching sequentially", "error", err)
		for i := range matches {
			s.fetchOdds(ctx, p, &matches[i], log)
		}
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range matches {
		m := &matches[i]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			s.fetchOdds(ctx, p, m, log)
		}); err != nil {
			wg.Done()
			log.Warn("odds fetch not scheduled", "match_id", m.MatchID, "error", err)
		}
	}
	wg.Wait()
}

func (s *Scraper) fetchOdds(ctx context.Context, p core.MatchParser, m *domain.RawMatch, log *logging.Logger) {
	if ctx.Err() != nil {
		return
	}

	odds, err := p.ParseOdds(ctx, m.MatchID)
	if err != nil {
		log.Warn("odds fetch failed", "match_id", m.MatchID, "error", err)
		return
	}
	if odds.Home == nil || odds.Away == nil {
		log.Debug("odds incomplete", "match_id", m.MatchID)
	}

	m.HomeOdds = odds.Home
	m.AwayOdds = odds.Away
}
