package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	"mxshs/vsv/src/domain"
	"mxshs/vsv/src/logging"
)

const DefaultOddsURLTemplate = "https://www.livesport.cz/zapas/%s/kurzy/draw-no-bet/zakladni-doba/"

// Config stores runtime configuration for the service.
type Config struct {
	Port               string
	LogLevel           logging.Level
	Leagues            []domain.League
	RoundLimit         int
	OddsWorkers        int
	ResultsTimeout     time.Duration
	OddsTimeout        time.Duration
	ResultsSettle      time.Duration
	OddsSettle         time.Duration
	ScrapeTimeout      time.Duration
	OddsURLTemplate    string
	UserAgent          string
	Headless           bool
	CORSAllowedOrigins []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	var err error

	cfg.Port = getEnv("PORT", "3001")
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, errors.Wrap(err, "parse PORT")
	}

	if cfg.LogLevel, err = logging.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return Config{}, errors.Wrap(err, "parse LOG_LEVEL")
	}

	if path := strings.TrimSpace(getEnv("LEAGUES_FILE", "")); path != "" {
		cfg.Leagues, err = LoadLeagues(path)
		if err != nil {
			return Config{}, err
		}
	} else {
		cfg.Leagues = DefaultLeagues()
	}
	if err := ValidateLeagues(cfg.Leagues); err != nil {
		return Config{}, err
	}

	if cfg.RoundLimit, err = getEnvAsPositiveInt("ROUND_LIMIT", 5); err != nil {
		return Config{}, err
	}
	if cfg.OddsWorkers, err = getEnvAsPositiveInt("ODDS_WORKERS", 1); err != nil {
		return Config{}, err
	}

	durations := []struct {
		key  string
		def  time.Duration
		dest *time.Duration
	}{
		{"RESULTS_TIMEOUT", 60 * time.Second, &cfg.ResultsTimeout},
		{"ODDS_TIMEOUT", 30 * time.Second, &cfg.OddsTimeout},
		{"RESULTS_SETTLE", 3 * time.Second, &cfg.ResultsSettle},
		{"ODDS_SETTLE", 2 * time.Second, &cfg.OddsSettle},
		{"SCRAPE_TIMEOUT", 15 * time.Minute, &cfg.ScrapeTimeout},
	}
	for _, d := range durations {
		if *d.dest, err = getEnvAsDuration(d.key, d.def); err != nil {
			return Config{}, err
		}
	}

	cfg.OddsURLTemplate = getEnv("ODDS_URL_TEMPLATE", DefaultOddsURLTemplate)
	if strings.Count(cfg.OddsURLTemplate, "%s") != 1 {
		return Config{}, errors.Newf("ODDS_URL_TEMPLATE must contain exactly one %%s, got %q", cfg.OddsURLTemplate)
	}

	cfg.UserAgent = getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	if cfg.Headless, err = strconv.ParseBool(getEnv("CHROME_HEADLESS", "true")); err != nil {
		return Config{}, errors.Wrap(err, "parse CHROME_HEADLESS")
	}

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getEnvAsPositiveInt(key string, def int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	if n <= 0 {
		return 0, errors.Newf("parse %s: must be positive, got %d", key, n)
	}
	return n, nil
}

func getEnvAsDuration(key string, def time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	if d < 0 {
		return 0, errors.Newf("parse %s: must not be negative, got %s", key, d)
	}
	return d, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
