package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/sharefs/pkg/api/auth"
	"github.com/marmos91/sharefs/pkg/api/handlers"
	apiMiddleware "github.com/marmos91/sharefs/pkg/api/middleware"
	"github.com/marmos91/sharefs/pkg/metrics"
)

// NewRouter creates the chi router serving fs over HTTP.
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe (stats the share root)
//   - POST /api/v1/auth/token - Bearer token issuance (auth enabled only)
//   - GET /api/v1/fs/stat?path=&rich= - Stat or FileStats
//   - GET /api/v1/fs/exists?path= - Path kind
//   - GET /api/v1/fs/list?path= - Directory listing
//   - GET /api/v1/fs/content?path= - File download
//   - PUT /api/v1/fs/content?path= - File upload
//   - POST /api/v1/fs/mkdir - Create directory
//   - POST /api/v1/fs/rename - Rename
//   - DELETE /api/v1/fs?path= - Remove
//
// jwt and accounts may be nil, in which case /api/v1/fs is unauthenticated.
func NewRouter(cfg Config, fs handlers.FS, jwt *auth.JWTService, accounts handlers.Authenticator, m metrics.APIMetrics) http.Handler {
	cfg.applyDefaults()

	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.RequestLogger(m))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.NotFound(w, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.MethodNotAllowed(w, r.Method+" not allowed on "+r.URL.Path)
	})

	healthHandler := handlers.NewHealthHandler(fs)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authEnabled := jwt != nil && accounts != nil
	fsHandler := handlers.NewFSHandler(fs, cfg.MaxBodySize)

	r.Route("/api/v1", func(r chi.Router) {
		if authEnabled {
			authHandler := handlers.NewAuthHandler(accounts, jwt)
			r.Post("/auth/token", authHandler.Token)
		}

		r.Route("/fs", func(r chi.Router) {
			if authEnabled {
				r.Use(apiMiddleware.JWTAuth(jwt))
			}
			r.Get("/stat", fsHandler.Stat)
			r.Get("/exists", fsHandler.Exists)
			r.Get("/list", fsHandler.List)
			r.Get("/content", fsHandler.Download)
			r.Head("/content", fsHandler.Download)
			r.Put("/content", fsHandler.Upload)
			r.Post("/mkdir", fsHandler.Mkdir)
			r.Post("/rename", fsHandler.Rename)
			r.Delete("/", fsHandler.Remove)
		})
	})

	return r
}
