package domain

import (
	"math"
	"time"
)

// League is one supported competition. The table is fixed at start-up.
type League struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url"`
}

// RawMatch is a finished fixture as read from a results page. Odds are nil
// until the odds page for the match has been parsed.
type RawMatch struct {
	HomeTeam  string
	AwayTeam  string
	ScoreHome int
	ScoreAway int
	MatchID   string
	HomeOdds  *float64
	AwayOdds  *float64
}

// Odds holds the draw-no-bet prices of one match.
type Odds struct {
	Home *float64
	Away *float64
}

// HasOdds reports whether both sides carry a usable price.
func (m RawMatch) HasOdds() bool {
	return ValidOdds(m.HomeOdds) && ValidOdds(m.AwayOdds)
}

func (m RawMatch) IsDraw() bool {
	return m.ScoreHome == m.ScoreAway
}

// ValidOdds treats nil, NaN, infinities and non-positive prices as absent.
func ValidOdds(v *float64) bool {
	if v == nil {
		return false
	}
	return !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0
}

// TeamMatchView is a match seen from one participant.
type TeamMatchView struct {
	TeamOdds     float64
	OpponentOdds float64
	TeamWon      bool
	IsDraw       bool
}

// TeamStat is the aggregated betting value of one team in one league.
type TeamStat struct {
	Name          string  `json:"name"`
	League        string  `json:"league"`
	LeagueID      string  `json:"leagueId"`
	TotalStakes   float64 `json:"totalStakes"`
	TotalReturns  float64 `json:"totalReturns"`
	VSV           float64 `json:"vsv"`
	FavoriteCount int     `json:"favoriteCount"`
	OutsiderCount int     `json:"outsiderCount"`
}

type ScrapeResult struct {
	Teams     []TeamStat
	Timestamp time.Time
}
