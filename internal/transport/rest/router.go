package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"pulsecheck/internal/service"
	"pulsecheck/internal/transport/rest/handler"
	"pulsecheck/internal/transport/rest/middleware"
	"pulsecheck/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	SurveyService     *service.SurveyService
	PredictionService *service.PredictionService
	AnalyticsService  *service.AnalyticsService
	InsightService    *service.InsightService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService)
	questionHandler := handler.NewQuestionHandler(c.SurveyService)
	configHandler := handler.NewConfigHandler(c.SurveyService)
	cronHandler := handler.NewCronHandler(c.SurveyService)
	predictionHandler := handler.NewPredictionHandler(c.PredictionService, c.AnalyticsService)
	analyticsHandler := handler.NewAnalyticsHandler(c.AnalyticsService)
	insightHandler := handler.NewInsightHandler(c.InsightService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/employee", authHandler.EmployeeToken).Methods("POST", "OPTIONS")
	v1.HandleFunc("/cron/weekly", cronHandler.Weekly).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Manager routes (require manager auth)
	managerRoutes := v1.NewRoute().Subrouter()
	managerRoutes.Use(authMW.RequireManager)

	managerRoutes.HandleFunc("/predictions/churn", predictionHandler.Churn).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/predictions/weekly", predictionHandler.Weekly).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/analytics/summary", analyticsHandler.Summary).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/insights/company", insightHandler.Company).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/actions/recommendations", insightHandler.Recommendations).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	managerRoutes.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT", "OPTIONS")
	managerRoutes.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")
	managerRoutes.HandleFunc("/pulse-config", configHandler.Get).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/pulse-config", configHandler.Update).Methods("PUT", "OPTIONS")

	// Employee routes (require employee auth)
	employeeRoutes := v1.NewRoute().Subrouter()
	employeeRoutes.Use(authMW.RequireEmployee)

	employeeRoutes.HandleFunc("/survey/init", surveyHandler.Init).Methods("GET", "OPTIONS")
	employeeRoutes.HandleFunc("/survey/submit", surveyHandler.Submit).Methods("POST", "OPTIONS")

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
