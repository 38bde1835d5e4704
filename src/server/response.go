package server

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"mxshs/vsv/src/domain"
)

// ISO 8601 with milliseconds, as browsers print Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type scrapeResponse struct {
	Success   bool              `json:"success"`
	Teams     []domain.TeamStat `json:"teams"`
	Timestamp string            `json:"timestamp"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func newScrapeResponse(res domain.ScrapeResult) scrapeResponse {
	teams := res.Teams
	if teams == nil {
		teams = []domain.TeamStat{}
	}

	return scrapeResponse{
		Success:   true,
		Teams:     teams,
		Timestamp: formatTimestamp(res.Timestamp),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Success: false, Error: err.Error()})
}
