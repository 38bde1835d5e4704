package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mxshs/vsv/src/config"
	"mxshs/vsv/src/core"
	"mxshs/vsv/src/logging"
	"mxshs/vsv/src/parser"
	"mxshs/vsv/src/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	launch := func(ctx context.Context) (core.Browser, error) {
		return core.LaunchBrowser(ctx, core.BrowserOptions{
			Headless:  cfg.Headless,
			UserAgent: cfg.UserAgent,
		})
	}

	scraper := parser.NewScraper(launch, parser.Options{
		Leagues: cfg.Leagues,
		Parse: core.ParseOptions{
			RoundLimit:      cfg.RoundLimit,
			ResultsTimeout:  cfg.ResultsTimeout,
			OddsTimeout:     cfg.OddsTimeout,
			ResultsSettle:   cfg.ResultsSettle,
			OddsSettle:      cfg.OddsSettle,
			OddsURLTemplate: cfg.OddsURLTemplate,
		},
		OddsWorkers: cfg.OddsWorkers,
	}, logger)

	srv := server.NewServer(
		server.NewHandler(scraper, cfg.ScrapeTimeout, logger),
		server.Options{Addr: cfg.Addr(), AllowedOrigins: cfg.CORSAllowedOrigins},
		logger,
	)

	go func() {
		logger.Info("server running", "addr", srv.Addr, "leagues", len(cfg.Leagues))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
