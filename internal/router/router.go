package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/worldsacross/tutor-viewer/internal/config"
	"github.com/worldsacross/tutor-viewer/internal/handler"
	"github.com/worldsacross/tutor-viewer/internal/middleware"
	"github.com/worldsacross/tutor-viewer/internal/response"
)

// listMaxAge is how long clients may reuse a list response.
const listMaxAge = 15

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Home    *handler.HomeHandler
	Tutor   *handler.TutorHandler
	Student *handler.StudentHandler
	Class   *handler.ClassHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config, refreshLimiter *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())

	// Workbooks are zip archives already.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper:   middleware.SkipPathSuffix("/export"),
	}))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/home", handlers.Home.GetHome)
		api.POST("/refresh", middleware.NoStore(), refreshLimiter.Middleware(), handlers.Home.Refresh)
	}

	// ─── Tutors ────────────────────────────────────────────────────────
	tutors := api.Group("/tutors")
	tutors.Use(middleware.CacheControl(listMaxAge))
	{
		tutors.GET("", handlers.Tutor.ListTutors)
		tutors.GET("/specialties", handlers.Tutor.ListSpecialties)
		tutors.GET("/export", handlers.Tutor.ExportTutors)
		tutors.GET("/:id", handlers.Tutor.GetTutor)
	}

	// ─── Students ──────────────────────────────────────────────────────
	students := api.Group("/students")
	students.Use(middleware.CacheControl(listMaxAge))
	{
		students.GET("", handlers.Student.ListStudents)
		students.GET("/export", handlers.Student.ExportStudents)
		students.GET("/:id", handlers.Student.GetStudent)
	}

	// ─── Classes ───────────────────────────────────────────────────────
	classes := api.Group("/classes")
	classes.Use(middleware.CacheControl(listMaxAge))
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.GET("/export", handlers.Class.ExportClasses)
		classes.GET("/:id", handlers.Class.GetClass)
	}

	return router
}
