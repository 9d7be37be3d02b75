package routes

import (
	"net/http"

	"github.com/careloop/backend/internal/api/handlers"
	"github.com/careloop/backend/internal/api/middleware"
	"github.com/careloop/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler         *handlers.AuthHandler
	chatHandler         *handlers.ChatHandler
	triageHandler       *handlers.TriageHandler
	telemedicineHandler *handlers.TelemedicineHandler
	communityHandler    *handlers.CommunityHandler
	dashboardHandler    *handlers.DashboardHandler
	staticHandler       *handlers.StaticHandler

	verifier middleware.TokenVerifier
	metrics  *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	triageHandler *handlers.TriageHandler,
	telemedicineHandler *handlers.TelemedicineHandler,
	communityHandler *handlers.CommunityHandler,
	dashboardHandler *handlers.DashboardHandler,
	staticHandler *handlers.StaticHandler,
	verifier middleware.TokenVerifier,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		authHandler:         authHandler,
		chatHandler:         chatHandler,
		triageHandler:       triageHandler,
		telemedicineHandler: telemedicineHandler,
		communityHandler:    communityHandler,
		dashboardHandler:    dashboardHandler,
		staticHandler:       staticHandler,
		verifier:            verifier,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	requireAuth := middleware.RequireAuth(r.verifier)

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints
	r.mux.HandleFunc("POST /api/auth/register", r.authHandler.Register)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(r.authHandler.Me)))

	// Assistant endpoints
	r.mux.HandleFunc("POST /api/chat", r.chatHandler.SendMessage)
	r.mux.HandleFunc("POST /api/triage", r.triageHandler.Assess)

	// Telemedicine endpoints
	r.mux.HandleFunc("GET /api/telemedicine/doctors", r.telemedicineHandler.ListDoctors)
	r.mux.HandleFunc("GET /api/telemedicine/doctors/{id}/slots", r.telemedicineHandler.GetSlots)
	r.mux.Handle("POST /api/telemedicine/bookings", requireAuth(http.HandlerFunc(r.telemedicineHandler.Book)))
	r.mux.Handle("GET /api/telemedicine/bookings", requireAuth(http.HandlerFunc(r.telemedicineHandler.ListBookings)))

	// Community endpoints
	r.mux.HandleFunc("GET /api/community/boards", r.communityHandler.ListBoards)
	r.mux.HandleFunc("GET /api/community/boards/{board}/posts", r.communityHandler.ListPosts)
	r.mux.Handle("POST /api/community/boards/{board}/posts", requireAuth(http.HandlerFunc(r.communityHandler.CreatePost)))

	// Dashboard endpoint
	r.mux.Handle("GET /api/dashboard", requireAuth(http.HandlerFunc(r.dashboardHandler.GetDashboard)))

	// Everything else is the single-page frontend.
	if r.staticHandler != nil {
		r.mux.Handle("/", r.staticHandler)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.Compression(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
