// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storegate/internal/jwt"
	"storegate/internal/platform/middleware"
	dErrors "storegate/pkg/domainerrors"
)

// NewRouter wires the public recovery endpoints, the operator endpoints, and
// the operational surface.
func NewRouter(recovery *RecoveryHandler, admin *AdminHandler, tokens *jwt.Service, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1/recovery", func(r chi.Router) {
		r.Post("/request", recovery.handleRequest)
		r.Post("/verify", recovery.handleVerify)
		r.Post("/complete", recovery.handleComplete)
	})

	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(tokens, logger))
		r.Post("/sync-role", admin.handleSyncRole)
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates domain error codes into a consistent JSON envelope.
// Token and code lookups deliberately map to 400, not 404, so responses do
// not reveal which identifiers have pending resets.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)

	status := http.StatusBadRequest
	switch code {
	case dErrors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case dErrors.CodeRateLimited:
		status = http.StatusTooManyRequests
	case dErrors.CodeInternal:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, map[string]string{"error": string(code)})
}
