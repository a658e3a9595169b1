package handlers

import (
	"net/http"
	"time"

	"github.com/ilkin0/mediagw/internal/health"
	"github.com/ilkin0/mediagw/internal/utils"
)

type HealthResponse struct {
	Status      string     `json:"status"`
	Upstream    string     `json:"upstream"`
	LastChecked *time.Time `json:"last_checked,omitempty"`
}

// Health always answers 200; the upstream field reports the last probe.
func Health(status *health.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, checkedAt := status.Snapshot()
		resp := HealthResponse{
			Status:   "ok",
			Upstream: string(state),
		}
		if !checkedAt.IsZero() {
			resp.LastChecked = &checkedAt
		}
		utils.WriteJSON(w, http.StatusOK, resp)
	}
}
