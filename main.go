package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/premiado/src/config"
	"github.com/username/premiado/src/database"
	"github.com/username/premiado/src/handlers"
	"github.com/username/premiado/src/logger"
	"github.com/username/premiado/src/processors"
	"github.com/username/premiado/src/ranking"
	"github.com/username/premiado/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Premiado backend server starting...")

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing response cache...")
	responseCache := cache.New(cache.NoExpiration, 0)
	logger.L.Info("Response cache initialized.")

	logger.L.Info("Initializing services and handlers...")
	reservationService := services.NewReservationService(
		config.Cfg.ReservationsAPIURL,
		config.Cfg.ReservationsAPIEmail,
		config.Cfg.ReservationsAPIToken,
		config.Cfg.FetchTimeout,
		responseCache,
		database.DB,
	)
	reservationProcessor := processors.NewReservationProcessor(config.Cfg.ExcludedAgents)

	colorPairs := map[string]ranking.Pair{}
	for _, project := range config.Cfg.Projects {
		colorPairs[project] = ranking.DefaultPair
	}

	dashboardService := services.NewDashboardService(
		reservationService,
		reservationProcessor,
		config.Cfg.CutoffDate,
		config.Cfg.PageSize,
		config.Cfg.MaxNameLength,
		config.Cfg.ProjectAliases,
		colorPairs,
		config.Cfg.GoalThresholds,
	)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, reservationService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("GET /api/leaderboard", dashboardHandler.HandleGetLeaderboard)
	apiRouter.HandleFunc("POST /api/leaderboard/action", dashboardHandler.HandleLeaderboardAction)
	apiRouter.HandleFunc("GET /api/goal-progress", dashboardHandler.HandleGetGoalProgress)
	apiRouter.HandleFunc("GET /api/projects", dashboardHandler.HandleGetProjects)
	apiRouter.HandleFunc("POST /api/refresh", dashboardHandler.HandleRefresh)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Premiado backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
