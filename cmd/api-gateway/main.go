package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/schedassist/sched-assist-api/api/swagger"
	"github.com/schedassist/sched-assist-api/internal/handler"
	"github.com/schedassist/sched-assist-api/internal/middleware"
	"github.com/schedassist/sched-assist-api/internal/oracle"
	"github.com/schedassist/sched-assist-api/internal/repository"
	"github.com/schedassist/sched-assist-api/internal/service"
	"github.com/schedassist/sched-assist-api/pkg/cache"
	"github.com/schedassist/sched-assist-api/pkg/config"
	"github.com/schedassist/sched-assist-api/pkg/database"
	"github.com/schedassist/sched-assist-api/pkg/logger"
	corsmiddleware "github.com/schedassist/sched-assist-api/pkg/middleware/cors"
	reqidmiddleware "github.com/schedassist/sched-assist-api/pkg/middleware/requestid"
)

// @title Scheduling Assistant API
// @version 0.1.0
// @description Conversational scheduling assistant backed by a completion oracle
// @BasePath /
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

	// The timetable store is mandatory; refuse to start without it.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}

	timetableRepo := repository.NewTimetableRepository(redisClient, cfg.Assistant.WriteRetries)
	conflictStore := repository.NewRedisConflictStore(redisClient)
	oracleClient := oracle.NewClient(cfg.Oracle)

	validate := validator.New()
	metrics := service.NewMetricsService()

	var assistant *service.AssistantService
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		auditRepo := repository.NewAuditRepository(db)
		assistant = service.NewAssistantService(timetableRepo, conflictStore, oracleClient, auditRepo, validate, logr, metrics, cfg.Assistant.PendingConflictTTL)
	} else {
		assistant = service.NewAssistantService(timetableRepo, conflictStore, oracleClient, nil, validate, logr, metrics, cfg.Assistant.PendingConflictTTL)
	}

	timetables := service.NewTimetableService(timetableRepo, logr)
	conflicts := service.NewConflictService(conflictStore, logr, cfg.Assistant.PendingConflictTTL)
	exports := service.NewExportService(timetableRepo)

	chatHandler := handler.NewChatHandler(assistant)
	timetableHandler := handler.NewTimetableHandler(timetables, exports)
	conflictHandler := handler.NewConflictHandler(conflicts)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	// Legacy contract route, kept at the root path.
	r.POST("/chat", chatHandler.Chat)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/timetables/:userId", timetableHandler.Get)
		api.GET("/timetables/:userId/dates/:date", timetableHandler.GetDate)
		api.GET("/timetables/:userId/export", timetableHandler.Export)
		api.GET("/conflicts/:userId", conflictHandler.Get)
		api.DELETE("/conflicts/:userId", conflictHandler.Cancel)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
