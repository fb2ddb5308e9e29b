package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dreamcanvas/server/internal/api/recovery"
	"github.com/dreamcanvas/server/internal/auth"
	"github.com/dreamcanvas/server/internal/services"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(svc *services.DreamService, verifier auth.Verifier) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(CORSMiddleware)
	router.Use(RequestLogMiddleware)

	healthHandler := NewHealthHandler()
	dreamHandler := NewDreamHandler(svc, verifier)

	// Health endpoint (unauthenticated)
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Dream endpoints
	router.HandleFunc("/api/dreams", dreamHandler.ListDreams).Methods("GET")
	router.HandleFunc("/api/dreams", dreamHandler.CreateDream).Methods("POST")
	router.HandleFunc("/api/dreams/generate", dreamHandler.GenerateDream).Methods("POST")
	router.HandleFunc("/api/dreams/{id:[0-9]+}", dreamHandler.GetDream).Methods("GET")
	router.HandleFunc("/api/dreams/{id:[0-9]+}/favorite", dreamHandler.SetFavorite).Methods("PATCH")

	// Preflight requests must match a route so CORSMiddleware can answer them.
	router.PathPrefix("/api/").Methods("OPTIONS").HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	return router
}
