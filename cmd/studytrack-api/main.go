package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studytrack/studytrack-api/api/swagger"
	"github.com/studytrack/studytrack-api/internal/handler"
	"github.com/studytrack/studytrack-api/internal/middleware"
	"github.com/studytrack/studytrack-api/internal/repository"
	"github.com/studytrack/studytrack-api/internal/service"
	"github.com/studytrack/studytrack-api/pkg/cache"
	"github.com/studytrack/studytrack-api/pkg/config"
	"github.com/studytrack/studytrack-api/pkg/database"
	"github.com/studytrack/studytrack-api/pkg/logger"
	corsmiddleware "github.com/studytrack/studytrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studytrack/studytrack-api/pkg/middleware/requestid"
	"github.com/studytrack/studytrack-api/pkg/storage"
)

// @title StudyTrack API
// @version 0.1.0
// @description Course, assignment and grade tracking for students
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	files, err := storage.NewLocalStorage(cfg.Attachments.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init attachment storage", "error", err)
	}

	validate := validator.New()

	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	gradeCategoryRepo := repository.NewGradeCategoryRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled && redisClient != nil)

	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, validate, logr)
	gradeSvc := service.NewGradeService(gradeCategoryRepo, courseRepo, validate, logr)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	recalcSvc := service.NewRecalcService(service.RecalcServiceParams{
		Grades:     gradeSvc,
		Metrics:    metricsSvc,
		Logger:     logr,
		Workers:    cfg.Recalc.Workers,
		MaxRetries: cfg.Recalc.MaxRetries,
	})

	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Courses:     courseRepo,
		Assignments: assignmentRepo,
		Cache:       cacheSvc,
		Logger:      logr,
		Config: service.DashboardServiceConfig{
			CacheTTL: cfg.Dashboard.CacheTTL,
		},
	})
	scheduleSvc := service.NewScheduleService(courseRepo, assignmentRepo, logr, nil)

	signer := storage.NewSigner(cfg.Attachments.SignedURLSecret, cfg.Attachments.SignedURLTTL)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, files, signer, cfg.Attachments.MaxFileSizeBytes, logr)
	exportSvc := service.NewExportService(gradeSvc, logr)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recalcSvc.Start(rootCtx)
	defer recalcSvc.Stop()

	courseHandler := handler.NewCourseHandler(courseSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc, courseSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc, recalcSvc, exportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	attachmentHandler := handler.NewAttachmentHandler(attachmentSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")
	// downloads authenticate via the signed token instead of a bearer header
	api.GET("/attachments/download", attachmentHandler.Download)
	api.Use(middleware.JWT(tokenSvc))
	{
		api.GET("/courses", courseHandler.List)
		api.POST("/courses", courseHandler.Create)
		api.GET("/courses/:id", courseHandler.Get)
		api.PUT("/courses/:id", courseHandler.Update)
		api.DELETE("/courses/:id", courseHandler.Delete)
		api.POST("/courses/:id/recalculate", gradeHandler.Recalculate)

		api.GET("/assignments", assignmentHandler.List)
		api.POST("/assignments", assignmentHandler.Create)
		api.GET("/assignments/:id", assignmentHandler.Get)
		api.PUT("/assignments/:id", assignmentHandler.Update)
		api.PATCH("/assignments/:id/toggle", assignmentHandler.Toggle)
		api.DELETE("/assignments/:id", assignmentHandler.Delete)

		api.GET("/grade-categories", gradeHandler.ListCategories)
		api.POST("/grade-categories", gradeHandler.CreateCategory)
		api.PUT("/grade-categories/:id", gradeHandler.UpdateCategory)
		api.DELETE("/grade-categories/:id", gradeHandler.DeleteCategory)
		api.GET("/grades/report", gradeHandler.Report)
		api.GET("/grades/export", gradeHandler.Export)

		api.GET("/dashboard/stats", dashboardHandler.Stats)
		api.GET("/dashboard/upcoming", dashboardHandler.Upcoming)
		api.GET("/dashboard/schedule/today", scheduleHandler.Today)

		api.GET("/attachments", attachmentHandler.List)
		api.POST("/attachments", attachmentHandler.Upload)
		api.GET("/attachments/:id/download-url", attachmentHandler.DownloadURL)
		api.DELETE("/attachments/:id", attachmentHandler.Delete)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-rootCtx.Done()
	logr.Sugar().Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
