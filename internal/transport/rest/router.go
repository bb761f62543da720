package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"stressdost/internal/service"
	"stressdost/internal/transport/rest/handler"
	"stressdost/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	InterviewService *service.InterviewService
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(c.InterviewService)
	wsHandler := ws.NewHandler(c.WSHub)

	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/session/start", sessionHandler.Start).Methods("POST", "OPTIONS")
	r.HandleFunc("/session/{id}/answer", sessionHandler.Answer).Methods("POST", "OPTIONS")
	r.HandleFunc("/session/{id}/next-question", sessionHandler.NextQuestion).Methods("POST", "OPTIONS")
	r.HandleFunc("/session/{id}/status", sessionHandler.Status).Methods("GET", "OPTIONS")
	r.HandleFunc("/session/{id}/debug", sessionHandler.Debug).Methods("GET", "OPTIONS")
	r.HandleFunc("/session/{id}/start-simulation", sessionHandler.StartSimulation).Methods("POST", "OPTIONS")
	r.HandleFunc("/session/{id}/test-popup", sessionHandler.TestPopup).Methods("POST", "OPTIONS")

	r.HandleFunc("/ws/session/{id}", wsHandler.SessionWS).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
