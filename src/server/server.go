// Package server exposes the scrape pipeline over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"mxshs/vsv/src/logging"
)

type Options struct {
	Addr           string
	AllowedOrigins []string
}

func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/scrape", h.Scrape).Methods(http.MethodPost)
	return r
}

func NewServer(h *Handler, opts Options, logger *logging.Logger) *http.Server {
	if logger == nil {
		logger = logging.Default()
	}

	handler := RequestLogging(logger, CORS(opts.AllowedOrigins, NewRouter(h)))

	// no WriteTimeout: a scrape job runs for minutes
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
