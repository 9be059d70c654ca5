package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/config"
	"github.com/worldsacross/tutor-viewer/internal/database"
	"github.com/worldsacross/tutor-viewer/internal/gateway"
	"github.com/worldsacross/tutor-viewer/internal/handler"
	"github.com/worldsacross/tutor-viewer/internal/logger"
	"github.com/worldsacross/tutor-viewer/internal/middleware"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/present"
	"github.com/worldsacross/tutor-viewer/internal/router"
	"github.com/worldsacross/tutor-viewer/internal/service"
	"github.com/worldsacross/tutor-viewer/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("upstream", cfg.APIBaseURL).
		Msg("Starting tutor viewer")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	// ─── Upstream Gateway ──────────────────────────────────────────────
	var opts []gateway.Option
	if rdb != nil {
		defer rdb.Close()
		opts = append(opts, gateway.WithCache(gateway.NewRedisCache(rdb, cfg.UpstreamCacheTTL, log)))
	}
	client := gateway.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout, log, opts...)

	// ─── Initialize Services ──────────────────────────────────────────
	model.SetLocation(cfg.Location)
	format := present.NewFormatter(cfg.Locale, cfg.Location)

	tutorService := service.NewTutorService(client, format, cfg.TutorPageSize, log)
	studentService := service.NewStudentService(client, format, cfg.StudentPageSize, log)
	classService := service.NewClassService(client, format, cfg.ClassPageSize, log)
	homeService := service.NewHomeService(tutorService, studentService, classService, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Home:    handler.NewHomeHandler(homeService),
		Tutor:   handler.NewTutorHandler(tutorService, log),
		Student: handler.NewStudentHandler(studentService, log),
		Class:   handler.NewClassHandler(classService, log),
	}

	// ─── Prewarm Snapshots ─────────────────────────────────────────────
	// Failures are not fatal: each list retries on its next visit.
	for _, res := range homeService.RefreshAll(ctx) {
		if res.Error != "" {
			log.Warn().Str("collection", res.Name).Str("error", res.Error).Msg("Initial load failed")
		}
	}

	refreshLimiter := middleware.NewRateLimiter(cfg.RefreshRatePerMinute, time.Minute)
	defer refreshLimiter.Stop()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, refreshLimiter)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
