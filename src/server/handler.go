package server

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"mxshs/vsv/src/domain"
	"mxshs/vsv/src/logging"
)

type ScrapeRunner interface {
	Run(ctx context.Context) (domain.ScrapeResult, error)
}

type Handler struct {
	scraper ScrapeRunner
	timeout time.Duration
	log     *logging.Logger

	// concurrent scrape requests join the job already running
	jobs singleflight.Group
}

func NewHandler(scraper ScrapeRunner, timeout time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		scraper: scraper,
		timeout: timeout,
		log:     logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	v, err, shared := h.jobs.Do("scrape", func() (any, error) {
		h.log.Info("scrape started")
		return h.scraper.Run(ctx)
	})
	if err != nil {
		h.log.Error("scrape failed", "error", err, "shared", shared)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	res, ok := v.(domain.ScrapeResult)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.Newf("unexpected scrape result %T", v))
		return
	}

	writeJSON(w, http.StatusOK, newScrapeResponse(res))
}
