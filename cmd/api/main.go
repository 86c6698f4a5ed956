package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/warit-s/acadpay-api/api/swagger"
	"github.com/warit-s/acadpay-api/internal/handler"
	"github.com/warit-s/acadpay-api/internal/middleware"
	"github.com/warit-s/acadpay-api/internal/models"
	"github.com/warit-s/acadpay-api/internal/repository"
	"github.com/warit-s/acadpay-api/internal/service"
	"github.com/warit-s/acadpay-api/pkg/cache"
	"github.com/warit-s/acadpay-api/pkg/config"
	"github.com/warit-s/acadpay-api/pkg/logger"
	corsmiddleware "github.com/warit-s/acadpay-api/pkg/middleware/cors"
	reqidmiddleware "github.com/warit-s/acadpay-api/pkg/middleware/requestid"
)

// @title AcadPay API
// @version 1.0.0
// @description Academic work compensation request service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	store, err := repository.NewStore(cfg.Store.DataDir, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		redisClient = nil
	}

	requestRepo := repository.NewRequestRepository(store)
	userRepo := repository.NewUserRepository(store)
	timelineRepo := repository.NewTimelineRepository(store)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, nil, logr)
	timelineSvc := service.NewTimelineService(timelineRepo, nil, logr)
	requestSvc := service.NewRequestService(requestRepo, userRepo, timelineRepo, nil, logr)
	dashboardSvc := service.NewDashboardService(requestRepo, redisClient, cfg.Dashboard.CacheTTL, metricsSvc, logr)
	exportSvc := service.NewExportService(requestSvc, dashboardSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	timelineHandler := handler.NewTimelineHandler(timelineSvc)
	requestHandler := handler.NewRequestHandler(requestSvc, dashboardSvc, metricsSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(authSvc))

	secured.POST("/auth/change-password", authHandler.ChangePassword)

	secured.GET("/dashboard", dashboardHandler.List)
	secured.GET("/dashboard/export", exportHandler.DashboardCSV)

	secured.GET("/requests/timeline-status", requestHandler.TimelineStatus)
	secured.GET("/requests/:id", requestHandler.Get)
	secured.GET("/requests/:id/export", exportHandler.RequestPDF)

	applicant := secured.Group("")
	applicant.Use(middleware.RequireRoles(models.RoleApplicant))
	applicant.POST("/requests", requestHandler.Save)
	applicant.POST("/requests/:id/appeal", requestHandler.Appeal)

	reviewers := secured.Group("")
	reviewers.Use(middleware.RequireRoles(models.RoleAdministration, models.RoleResearch, models.RoleCommittee))
	reviewers.POST("/requests/:id/decision", requestHandler.Decide)

	secured.GET("/timeline", timelineHandler.Get)

	admin := secured.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.PUT("/timeline", timelineHandler.Update)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.DELETE("/users/:username", userHandler.Delete)
	admin.POST("/users/:username/reset-password", userHandler.ResetPassword)

	logr.Info("server starting",
		zap.Int("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("data_dir", cfg.Store.DataDir))

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
