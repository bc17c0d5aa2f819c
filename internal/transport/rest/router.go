package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/ijanvdwesz/credential-management/internal"
	"github.com/ijanvdwesz/credential-management/internal/auth"
	"github.com/ijanvdwesz/credential-management/internal/credential"
	"github.com/ijanvdwesz/credential-management/internal/division"
	"github.com/ijanvdwesz/credential-management/internal/ou"
	"github.com/ijanvdwesz/credential-management/internal/transport/middleware"
	"github.com/ijanvdwesz/credential-management/internal/transport/swagger"
	"github.com/ijanvdwesz/credential-management/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	OU         *ou.Handler
	Division   *division.Handler
	Credential *credential.Handler
	User       *user.Handler
}

// RegisterAllRoutes wires the full HTTP surface: global middleware, the
// public auth endpoints, and the token-protected API with per-route role
// gates.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, handlers Handlers, gate *auth.RoleGate, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(cfg.Server.Origins()))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	if cfg.Observability.Metrics.Enabled {
		middleware.InitMetrics()
		router.Use(middleware.Instrument)
		router.Handle(cfg.Observability.Metrics.Path, middleware.MetricsHandler())
	}

	// API docs served outside the /api prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Route not found"}`))
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", handlers.Auth.Register)
			sr.Post("/login", handlers.Auth.Login)
		})

		// Everything below requires a valid token; the middleware resolves
		// the principal from the store on each request.
		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			pr.Route("/divisions", func(dr chi.Router) {
				dr.Get("/", handlers.Division.GetDivisions)
				dr.Get("/divisions-by-ou", handlers.Division.GetDivisionsByOU)
				dr.Post("/", handlers.Division.CreateDivision)
			})

			pr.Route("/credentials", func(cr chi.Router) {
				cr.Get("/", handlers.Credential.GetCredentials)
				cr.Get("/credentials", handlers.Credential.GetCredentialsByDivision)
				cr.Post("/", handlers.Credential.CreateCredential)
				cr.Group(func(mr chi.Router) {
					mr.Use(gate.RequireManager())
					mr.Patch("/{id}", handlers.Credential.UpdateCredential)
				})
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(gate.RequireAdmin())
				ar.Get("/ous", handlers.OU.GetOUs)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/user-info", handlers.User.GetUserInfo)
				ur.Group(func(ar chi.Router) {
					ar.Use(gate.RequireAdmin())
					ar.Get("/admin-view", handlers.User.GetAdminView)
					ar.Patch("/change-role/{userId}", handlers.User.ChangeRole)
					ar.Post("/{userId}/assign-division", handlers.User.AssignDivision)
					ar.Delete("/{userId}/remove-division", handlers.User.RemoveDivision)
					ar.Post("/{userId}/assign-ou", handlers.User.AssignOU)
					ar.Delete("/{userId}/remove-ou", handlers.User.RemoveOU)
				})
			})
		})
	})
}
