package http

import (
	"net/http"
	"time"

	"github.com/northarcade/gameauth/pkg/httpx"
)

// LivezHandler reports process liveness.
func LivezHandler(startTime time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"status":         "ok",
			"version":        version,
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}
