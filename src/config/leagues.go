package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"mxshs/vsv/src/domain"
)

// DefaultLeagues is the built-in league table, in scrape order.
func DefaultLeagues() []domain.League {
	return []domain.League{
		{
			ID:   "premier-league",
			Name: "Premier League",
			URL:  "https://www.livesport.cz/fotbal/anglie/premier-league/vysledky/",
		},
		{
			ID:   "ligue-1",
			Name: "Ligue 1",
			URL:  "https://www.livesport.cz/fotbal/francie/ligue-1/vysledky/",
		},
		{
			ID:   "serie-a",
			Name: "Serie A",
			URL:  "https://www.livesport.cz/fotbal/italie/serie-a/vysledky/",
		},
		{
			ID:   "bundesliga",
			Name: "Bundesliga",
			URL:  "https://www.livesport.cz/fotbal/nemecko/bundesliga/vysledky/",
		},
		{
			ID:   "laliga",
			Name: "La Liga",
			URL:  "https://www.livesport.cz/fotbal/spanelsko/laliga/vysledky/",
		},
	}
}

type leagueFile struct {
	Leagues []domain.League `yaml:"leagues"`
}

// LoadLeagues reads a league table from a YAML file of the form
//
//	leagues:
//	  - id: serie-a
//	    name: Serie A
//	    url: https://...
func LoadLeagues(path string) ([]domain.League, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read leagues file")
	}

	var f leagueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse leagues file")
	}

	return f.Leagues, nil
}

var validate = validator.New()

func ValidateLeagues(leagues []domain.League) error {
	if len(leagues) == 0 {
		return errors.New("league table is empty")
	}

	seen := make(map[string]struct{}, len(leagues))
	for i, l := range leagues {
		if err := validate.Struct(l); err != nil {
			return errors.Wrapf(err, "league #%d (%q)", i, l.ID)
		}
		if _, ok := seen[l.ID]; ok {
			return errors.Newf("duplicate league id %q", l.ID)
		}
		seen[l.ID] = struct{}{}
	}

	return nil
}
