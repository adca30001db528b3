package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rosterapp "github.com/classtrack/backend/internal/application/roster"
	trackingapp "github.com/classtrack/backend/internal/application/tracking"
	"github.com/classtrack/backend/internal/infrastructure/config"
	"github.com/classtrack/backend/internal/infrastructure/logger"
	"github.com/classtrack/backend/internal/infrastructure/persistence"
	"github.com/classtrack/backend/internal/interfaces/http/handler"
	"github.com/classtrack/backend/internal/interfaces/http/middleware"
	"github.com/classtrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ClassTrack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	taskTypeRepo := persistence.NewGormTaskTypeRepository(db.DB)
	documentTypeRepo := persistence.NewGormDocumentTypeRepository(db.DB)
	studentTaskRepo := persistence.NewGormStudentTaskRepository(db.DB)
	studentDocRepo := persistence.NewGormStudentDocumentRepository(db.DB)

	// Period storage: Postgres primary with a flat-file fallback so
	// period definitions stay readable while the database is down.
	gormPeriodRepo := persistence.NewGormPeriodRepository(db.DB)
	filePeriodRepo, err := persistence.NewFilePeriodRepository(cfg.Fallback.PeriodFile)
	if err != nil {
		log.Fatal("Failed to open period fallback store", zap.Error(err))
	}
	periodRepo := persistence.NewFallbackPeriodRepository(
		gormPeriodRepo, filePeriodRepo, db.Ping, cfg.Fallback.ProbeInterval, log,
	)

	// Application services
	studentService := rosterapp.NewStudentService(studentRepo)
	importService := rosterapp.NewImportService(studentRepo, log)
	taskTypeService := trackingapp.NewTaskTypeService(taskTypeRepo)
	documentTypeService := trackingapp.NewDocumentTypeService(documentTypeRepo)
	periodService := trackingapp.NewPeriodService(periodRepo, taskTypeRepo, documentTypeRepo)
	activationService := trackingapp.NewActivationService(periodRepo, studentRepo, studentTaskRepo, studentDocRepo, log)
	studentTaskService := trackingapp.NewStudentTaskService(studentTaskRepo)
	studentDocumentService := trackingapp.NewStudentDocumentService(studentDocRepo)

	// HTTP handlers
	studentHandler := handler.NewStudentHandler(studentService, importService)
	taskTypeHandler := handler.NewTaskTypeHandler(taskTypeService)
	documentTypeHandler := handler.NewDocumentTypeHandler(documentTypeService)
	periodHandler := handler.NewPeriodHandler(periodService, activationService)
	studentTaskHandler := handler.NewStudentTaskHandler(studentTaskService)
	studentDocumentHandler := handler.NewStudentDocumentHandler(studentDocumentService)
	systemHandler := handler.NewSystemHandler(db, periodRepo, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health endpoints live outside API versioning
	engine.GET("/healthz", systemHandler.Health)
	engine.GET("/readyz", systemHandler.Ready)
	engine.GET("/api/v1/ping", systemHandler.Ping)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Roster domain (students, CSV import)
	rosterRoutes := router.NewDomainGroup("/students")
	rosterRoutes.POST("", studentHandler.Create)
	rosterRoutes.GET("", studentHandler.List)
	rosterRoutes.GET("/classes", studentHandler.ListClasses)
	rosterRoutes.POST("/import", studentHandler.Import)
	rosterRoutes.GET("/:id", studentHandler.GetByID)
	rosterRoutes.PUT("/:id", studentHandler.Update)
	rosterRoutes.DELETE("/:id", studentHandler.Delete)

	// Task type catalog
	taskTypeRoutes := router.NewDomainGroup("/task-types")
	taskTypeRoutes.POST("", taskTypeHandler.Create)
	taskTypeRoutes.GET("", taskTypeHandler.List)
	taskTypeRoutes.GET("/:id", taskTypeHandler.GetByID)
	taskTypeRoutes.PUT("/:id", taskTypeHandler.Update)
	taskTypeRoutes.DELETE("/:id", taskTypeHandler.Delete)

	// Document type catalog
	documentTypeRoutes := router.NewDomainGroup("/document-types")
	documentTypeRoutes.POST("", documentTypeHandler.Create)
	documentTypeRoutes.GET("", documentTypeHandler.List)
	documentTypeRoutes.GET("/:id", documentTypeHandler.GetByID)
	documentTypeRoutes.PUT("/:id", documentTypeHandler.Update)
	documentTypeRoutes.DELETE("/:id", documentTypeHandler.Delete)

	// Periods, their association lists, and the activation engine
	periodRoutes := router.NewDomainGroup("/periodes")
	periodRoutes.POST("", periodHandler.Create)
	periodRoutes.GET("", periodHandler.List)
	periodRoutes.GET("/:id", periodHandler.GetByID)
	periodRoutes.PUT("/:id", periodHandler.Update)
	periodRoutes.DELETE("/:id", periodHandler.Delete)
	periodRoutes.PUT("/:id/task-types", periodHandler.ReplaceTaskTypes)
	periodRoutes.PUT("/:id/document-types", periodHandler.ReplaceDocumentTypes)
	periodRoutes.POST("/:id/activate", periodHandler.Activate)
	periodRoutes.GET("/:id/summary", periodHandler.Summary)
	periodRoutes.GET("/:id/progress", periodHandler.Progress)

	// Per-student tracking rows
	studentTaskRoutes := router.NewDomainGroup("/student-tasks")
	studentTaskRoutes.GET("", studentTaskHandler.List)
	studentTaskRoutes.GET("/:id", studentTaskHandler.GetByID)
	studentTaskRoutes.PATCH("/:id", studentTaskHandler.Update)
	studentTaskRoutes.DELETE("/:id", studentTaskHandler.Delete)

	studentDocumentRoutes := router.NewDomainGroup("/student-documents")
	studentDocumentRoutes.GET("", studentDocumentHandler.List)
	studentDocumentRoutes.GET("/:id", studentDocumentHandler.GetByID)
	studentDocumentRoutes.PATCH("/:id", studentDocumentHandler.Update)
	studentDocumentRoutes.DELETE("/:id", studentDocumentHandler.Delete)

	r.Register(rosterRoutes).
		Register(taskTypeRoutes).
		Register(documentTypeRoutes).
		Register(periodRoutes).
		Register(studentTaskRoutes).
		Register(studentDocumentRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
