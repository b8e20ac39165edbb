// Package api exposes the northbound configuration tree as a REST surface
// (spec.md §6's abstract config tree, made concrete as HTTP), grounded on
// the teacher's chi router/middleware stack.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/invopop/jsonschema"

	"github.com/routeflow/ribd/pkg/northbound"
)

// HealthResponse mirrors the shape ribd status/ribdctl show health expect:
// internal/cli/health.Response.
type HealthResponse struct {
	Status string `json:"status"`
	Data   struct {
		Service   string `json:"service"`
		StartedAt string `json:"started_at"`
		Uptime    string `json:"uptime"`
		UptimeSec int64  `json:"uptime_sec"`
	} `json:"data"`
}

// ConfigTree is implemented by whatever holds the in-memory representation
// of the full config tree (keychains, protocol instances, SR bindings),
// used to serve GET /api/v1/config reads. The /schema document is
// generated from Router.SchemaType, not from the tree.
type ConfigTree interface {
	Snapshot() any
}

// Router bundles the dependencies NewRouter wires into chi routes.
type Router struct {
	Registry   *northbound.Registry
	Tree       ConfigTree
	JWT        *JWTService
	SchemaType any // a representative Go value/type whose shape backs /schema

	// StartedAt is reported on /health for uptime display. Zero means the
	// caller didn't set it; /health then reports a zero uptime.
	StartedAt time.Time
}

// NewRouter builds the chi router: unauthenticated health/schema reads,
// bearer-authenticated transaction submission and state reads (the
// /api/v1 group is left unauthenticated when JWT is nil). Middleware is
// RequestID/RealIP/Recoverer/Timeout with no request logger, then the
// unauthenticated routes, then the authenticated API group.
func NewRouter(rt Router) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		var resp HealthResponse
		resp.Status = "healthy"
		resp.Data.Service = "ribd"
		if !rt.StartedAt.IsZero() {
			resp.Data.StartedAt = rt.StartedAt.Format(time.RFC3339)
			uptime := time.Since(rt.StartedAt)
			resp.Data.Uptime = uptime.Round(time.Second).String()
			resp.Data.UptimeSec = int64(uptime.Seconds())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	})

	r.Get("/schema", func(w http.ResponseWriter, req *http.Request) {
		schema := jsonschema.Reflect(rt.SchemaType)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(schema)
	})

	r.Post("/api/v1/auth/token", func(w http.ResponseWriter, req *http.Request) {
		if rt.JWT == nil {
			http.Error(w, "northbound API auth is not configured", http.StatusServiceUnavailable)
			return
		}
		var body struct {
			ClientID string `json:"client_id"`
			Secret   string `json:"secret"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if body.ClientID == "" {
			http.Error(w, "client_id is required", http.StatusBadRequest)
			return
		}
		token, expiresAt, err := rt.JWT.IssueWithSharedSecret(body.ClientID, body.Secret)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			AccessToken string    `json:"access_token"`
			ExpiresAt   time.Time `json:"expires_at"`
		}{AccessToken: token, ExpiresAt: expiresAt})
	})

	r.Route("/api/v1", func(r chi.Router) {
		if rt.JWT != nil {
			r.Use(RequireBearerAuth(rt.JWT))
		}

		r.Get("/config", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(rt.Tree.Snapshot())
		})

		r.Post("/config/transaction", func(w http.ResponseWriter, req *http.Request) {
			var tx northbound.Transaction
			if err := json.NewDecoder(req.Body).Decode(&tx); err != nil {
				http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
				return
			}
			if err := rt.Registry.ApplyTransaction(tx); err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})

	return r
}
