package http

import (
	"net/http"

	"github.com/northarcade/gameauth/internal/auth/store"
	"github.com/northarcade/gameauth/pkg/httpx"
)

// ReadyzHandler reports readiness. The service is ready once the
// database answers a ping.
func ReadyzHandler(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unavailable",
				"reason": "database unreachable",
			})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
		})
	})
}
