// Package stats turns scraped matches into per-team betting value figures.
package stats

import (
	"sort"

	"mxshs/vsv/src/domain"
)

const (
	FavoriteStake = 100.0
	OutsiderStake = 50.0
)

// VSV is the reduction of one team's match views.
type VSV struct {
	TotalStakes   float64
	TotalReturns  float64
	VSV           float64
	FavoriteCount int
	OutsiderCount int
}

// CalculateVSV simulates a fixed stake on the team in every decided match:
// 100 when it was the favorite, 50 when it was the outsider. VSV is the
// percentage return on the total stake.
func CalculateVSV(views []domain.TeamMatchView) VSV {
	var res VSV

	for _, v := range views {
		if !priced(v.TeamOdds) || !priced(v.OpponentOdds) || v.IsDraw {
			continue
		}

		// equal odds count as outsider
		isFavorite := v.TeamOdds < v.OpponentOdds

		stake := OutsiderStake
		if isFavorite {
			stake = FavoriteStake
			res.FavoriteCount++
		} else {
			res.OutsiderCount++
		}

		res.TotalStakes += stake
		if v.TeamWon {
			res.TotalReturns += stake * v.TeamOdds
		}
	}

	if res.TotalStakes > 0 {
		res.VSV = (res.TotalReturns - res.TotalStakes) / res.TotalStakes * 100
	}

	return res
}

func priced(v float64) bool {
	return domain.ValidOdds(&v)
}

// Views splits a match into the home and the away perspective.
func Views(m domain.RawMatch) (home, away domain.TeamMatchView) {
	draw := m.IsDraw()

	home = domain.TeamMatchView{
		TeamOdds:     *m.HomeOdds,
		OpponentOdds: *m.AwayOdds,
		TeamWon:      m.ScoreHome > m.ScoreAway,
		IsDraw:       draw,
	}
	away = domain.TeamMatchView{
		TeamOdds:     *m.AwayOdds,
		OpponentOdds: *m.HomeOdds,
		TeamWon:      m.ScoreAway > m.ScoreHome,
		IsDraw:       draw,
	}

	return home, away
}

// ProcessMatches groups the priced matches of a league by team name and
// computes one TeamStat per team, in order of first appearance. Matches
// missing either price are skipped for both sides.
func ProcessMatches(matches []domain.RawMatch, league domain.League) []domain.TeamStat {
	var order []string
	byTeam := make(map[string][]domain.TeamMatchView)

	add := func(team string, v domain.TeamMatchView) {
		if _, ok := byTeam[team]; !ok {
			order = append(order, team)
		}
		byTeam[team] = append(byTeam[team], v)
	}

	for _, m := range matches {
		if !m.HasOdds() {
			continue
		}

		home, away := Views(m)
		add(m.HomeTeam, home)
		add(m.AwayTeam, away)
	}

	teams := make([]domain.TeamStat, 0, len(order))
	for _, name := range order {
		v := CalculateVSV(byTeam[name])
		teams = append(teams, domain.TeamStat{
			Name:          name,
			League:        league.Name,
			LeagueID:      league.ID,
			TotalStakes:   v.TotalStakes,
			TotalReturns:  v.TotalReturns,
			VSV:           v.VSV,
			FavoriteCount: v.FavoriteCount,
			OutsiderCount: v.OutsiderCount,
		})
	}

	return teams
}

// SortByVSV orders teams by descending VSV. Equal values keep their
// relative order.
func SortByVSV(teams []domain.TeamStat) {
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].VSV > teams[j].VSV
	})
}
