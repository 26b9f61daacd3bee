// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_lang_portal/internal/config"
	"go_lang_portal/internal/handlers"
	"go_lang_portal/internal/middleware"
	"go_lang_portal/internal/repository"
	"go_lang_portal/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	wordRepo := repository.NewGormWordRepository()
	groupRepo := repository.NewGormGroupRepository()
	activityRepo := repository.NewGormActivityRepository()
	sessionRepo := repository.NewGormSessionRepository()
	reviewRepo := repository.NewGormReviewRepository()
	statsRepo := repository.NewGormStatsRepository()

	sessionService := service.NewSessionService(db, sessionRepo, groupRepo, activityRepo, wordRepo, reviewRepo, cfg)
	dashboardService := service.NewDashboardService(db, statsRepo, sessionRepo, reviewRepo, cfg)
	wordService := service.NewWordService(db, wordRepo, cfg)
	groupService := service.NewGroupService(db, groupRepo, wordRepo, cfg)
	activityService := service.NewActivityService(db, activityRepo)

	sessionHandler := handlers.NewSessionHandler(sessionService, cfg)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	wordHandler := handlers.NewWordHandler(wordService)
	groupHandler := handlers.NewGroupHandler(groupService, sessionService, cfg)
	activityHandler := handlers.NewActivityHandler(activityService)

	// 4. Setup Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/study-sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateStudySession)
			r.Get("/", sessionHandler.GetStudySessions)
			r.Post("/reset", sessionHandler.ResetStudyHistory)
			r.Get("/{session_id}", sessionHandler.GetStudySession)
			r.Post("/{session_id}/reviews", sessionHandler.SubmitReviews)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", dashboardHandler.GetStats)
			r.Get("/recent-session", dashboardHandler.GetRecentSession)
		})

		r.Route("/words", func(r chi.Router) {
			r.Get("/", wordHandler.GetWords)
			r.Get("/{word_id}", wordHandler.GetWord)
			r.Delete("/{word_id}", wordHandler.DeleteWord)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.GetGroups)
			r.Get("/{group_id}", groupHandler.GetGroup)
			r.Get("/{group_id}/words", groupHandler.GetGroupWords)
			r.Get("/{group_id}/study-sessions", groupHandler.GetGroupSessions)
			r.Delete("/{group_id}", groupHandler.DeleteGroup)
		})

		r.Route("/study-activities", func(r chi.Router) {
			r.Get("/", activityHandler.GetStudyActivities)
			r.Get("/{activity_id}", activityHandler.GetStudyActivity)
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
