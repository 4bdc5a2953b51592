package http

import (
	"log/slog"
	"net/http"

	"explorewithme/internal/delivery/http/controllers"
	"explorewithme/internal/delivery/http/middleware"
	"explorewithme/internal/domain"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	Events         *controllers.EventController
	Requests       *controllers.RequestController
	Public         *controllers.PublicEventController
	Admin          *controllers.AdminEventController
	Verifier       domain.TokenVerifier
	PublicLimiter  *middleware.RateLimiter
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// Private: initiator events
	mux.HandleFunc("POST /users/{userId}/events", cfg.Events.CreateEvent)
	mux.HandleFunc("GET /users/{userId}/events", cfg.Events.ListEvents)
	mux.HandleFunc("GET /users/{userId}/events/{eventId}", cfg.Events.GetEvent)
	mux.HandleFunc("PATCH /users/{userId}/events/{eventId}", cfg.Events.UpdateEvent)
	mux.HandleFunc("GET /users/{userId}/events/{eventId}/requests", cfg.Events.ListEventRequests)
	mux.HandleFunc("PATCH /users/{userId}/events/{eventId}/requests", cfg.Events.ModerateRequests)

	// Private: participation requests
	mux.HandleFunc("GET /users/{userId}/requests", cfg.Requests.ListRequests)
	mux.HandleFunc("POST /users/{userId}/requests", cfg.Requests.CreateRequest)
	mux.HandleFunc("PATCH /users/{userId}/requests/{requestId}/cancel", cfg.Requests.CancelRequest)

	// Public
	mux.HandleFunc("GET /events", cfg.PublicLimiter.Wrap(cfg.Public.SearchEvents))
	mux.HandleFunc("GET /events/{eventId}", cfg.PublicLimiter.Wrap(cfg.Public.GetEvent))

	// Admin
	requireAdmin := middleware.RequireRole(cfg.Verifier, domain.RoleAdmin, cfg.Logger)
	mux.HandleFunc("GET /admin/events", requireAdmin(cfg.Admin.SearchEvents))
	mux.HandleFunc("PATCH /admin/events/{eventId}", requireAdmin(cfg.Admin.UpdateEvent))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.RequestID(handler)
	handler = chimiddleware.RealIP(handler)
	handler = chimiddleware.Recoverer(handler)
	return handler
}
