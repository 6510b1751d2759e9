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

	_ "github.com/hostelworks/hostel-admin-api/api/swagger"
	"github.com/hostelworks/hostel-admin-api/internal/authz"
	"github.com/hostelworks/hostel-admin-api/internal/handler"
	"github.com/hostelworks/hostel-admin-api/internal/middleware"
	"github.com/hostelworks/hostel-admin-api/internal/repository"
	"github.com/hostelworks/hostel-admin-api/internal/service"
	"github.com/hostelworks/hostel-admin-api/pkg/cache"
	"github.com/hostelworks/hostel-admin-api/pkg/config"
	"github.com/hostelworks/hostel-admin-api/pkg/database"
	"github.com/hostelworks/hostel-admin-api/pkg/logger"
	corsmiddleware "github.com/hostelworks/hostel-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hostelworks/hostel-admin-api/pkg/middleware/requestid"
)

// @title Hostel Admin API
// @version 1.0.0
// @description Role-based hostel administration service
// @BasePath /
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The dashboard cache is the only Redis consumer; the service
		// degrades to direct queries without it.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.Enabled && redisClient != nil)

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	requestRepo := repository.NewRoomRequestRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	validate := validator.New()
	idGen := service.NewCustomIDGenerator(cfg.Registry.CustomIDLength, cfg.Registry.CustomIDAttempts)

	authSvc := service.NewAuthService(userRepo, idGen, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "hostel-admin-api",
		SingleSession:      true,
	})
	userSvc := service.NewUserService(userRepo, roomRepo, logr)
	roomSvc := service.NewRoomService(roomRepo, userRepo, validate, logr)
	requestSvc := service.NewRoomRequestService(requestRepo, roomRepo, userRepo, logr)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, userRepo, validate, logr)
	eventSvc := service.NewEventService(eventRepo, validate, logr)
	feeSvc := service.NewFeeService(feeRepo, userRepo, validate, logr)
	visitorSvc := service.NewVisitorService(visitorRepo, validate, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Rooms:    roomRepo,
		Requests: requestRepo,
		Tickets:  maintenanceRepo,
		Visitors: visitorRepo,
		Fees:     feeRepo,
		Users:    userRepo,
		Cache:    cacheSvc,
		Logger:   logr,
		Config:   service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	exportSvc := service.NewExportService(visitorRepo, feeRepo, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	requestHandler := handler.NewRoomRequestHandler(requestSvc)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	feeHandler := handler.NewFeeHandler(feeSvc)
	visitorHandler := handler.NewVisitorHandler(visitorSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)

	protected := api.Group("", middleware.JWT(authSvc))

	// Admin dashboard counters come from the tables the write endpoints
	// touch; drop the cached copy after any successful mutation.
	protected.Use(func(c *gin.Context) {
		c.Next()
		if c.Request.Method != http.MethodGet && c.Writer.Status() < 400 {
			dashboardSvc.Invalidate(c.Request.Context())
		}
	})

	protected.GET("/me", userHandler.Me)

	users := protected.Group("/users", middleware.RequireOperation(authz.OpUserList))
	users.GET("", userHandler.List)
	users.GET("/:custom_id", userHandler.GetByCustomID)

	rooms := protected.Group("/rooms")
	rooms.GET("", middleware.RequireOperation(authz.OpRoomListAll), roomHandler.List)
	rooms.GET("/available", roomHandler.ListAvailable)
	rooms.POST("", middleware.RequireOperation(authz.OpRoomCreate), roomHandler.Create)
	rooms.PUT("/:id", middleware.RequireOperation(authz.OpRoomEdit), roomHandler.Update)
	rooms.POST("/:id/unassign", middleware.RequireOperation(authz.OpRoomUnassign), roomHandler.Unassign)
	rooms.DELETE("/:id", middleware.RequireOperation(authz.OpRoomDelete), roomHandler.Delete)

	requests := protected.Group("/room-requests")
	requests.POST("", middleware.RequireOperation(authz.OpRequestSubmit), requestHandler.Submit)
	requests.GET("/mine", requestHandler.ListMine)
	requests.GET("/pending", middleware.RequireOperation(authz.OpRequestReview), requestHandler.ListPending)
	requests.POST("/:id/approve", middleware.RequireOperation(authz.OpRequestApprove), requestHandler.Approve)
	requests.POST("/:id/reject", middleware.RequireOperation(authz.OpRequestReject), requestHandler.Reject)

	maintenance := protected.Group("/maintenance")
	maintenance.POST("", middleware.RequireOperation(authz.OpMaintenanceCreate), maintenanceHandler.Create)
	maintenance.GET("", maintenanceHandler.List)
	maintenance.PUT("/:id/status", middleware.RequireOperation(authz.OpMaintenanceStatus), middleware.Audit(userRepo, "MAINTENANCE_STATUS", "maintenance"), maintenanceHandler.UpdateStatus)
	maintenance.DELETE("/:id", middleware.RequireOperation(authz.OpMaintenanceDelete), middleware.Audit(userRepo, "MAINTENANCE_DELETE", "maintenance"), maintenanceHandler.Delete)

	events := protected.Group("/events")
	events.GET("", eventHandler.List)
	events.POST("", middleware.RequireOperation(authz.OpEventCreate), middleware.Audit(userRepo, "EVENT_CREATE", "event"), eventHandler.Create)
	events.PUT("/:id", middleware.RequireOperation(authz.OpEventEdit), middleware.Audit(userRepo, "EVENT_UPDATE", "event"), eventHandler.Update)
	events.DELETE("/:id", middleware.RequireOperation(authz.OpEventDelete), middleware.Audit(userRepo, "EVENT_DELETE", "event"), eventHandler.Delete)

	fees := protected.Group("/fees")
	fees.POST("", middleware.RequireOperation(authz.OpFeeCreate), middleware.Audit(userRepo, "FEE_CREATE", "fee"), feeHandler.Create)
	fees.GET("", feeHandler.List)
	fees.PUT("/:id/status", middleware.RequireOperation(authz.OpFeeStatus), middleware.Audit(userRepo, "FEE_STATUS", "fee"), feeHandler.UpdateStatus)
	fees.DELETE("/:id", middleware.RequireOperation(authz.OpFeeDelete), middleware.Audit(userRepo, "FEE_DELETE", "fee"), feeHandler.Delete)

	visitors := protected.Group("/visitors")
	visitors.POST("", middleware.RequireOperation(authz.OpVisitorRegister), visitorHandler.Register)
	visitors.GET("", visitorHandler.List)
	visitors.PUT("/:id/decision", middleware.RequireOperation(authz.OpVisitorDecide), middleware.Audit(userRepo, "VISITOR_DECISION", "visitor"), visitorHandler.Decide)
	visitors.DELETE("/:id", middleware.RequireOperation(authz.OpVisitorDelete), middleware.Audit(userRepo, "VISITOR_DELETE", "visitor"), visitorHandler.Delete)

	feedback := protected.Group("/feedback")
	feedback.POST("", middleware.RequireOperation(authz.OpFeedbackSubmit), feedbackHandler.Submit)
	feedback.GET("", middleware.RequireOperation(authz.OpFeedbackView), feedbackHandler.List)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/admin", middleware.RequireOperation(authz.OpDashboardAdmin), dashboardHandler.Admin)
	dashboard.GET("/student", middleware.RequireOperation(authz.OpDashboardStudent), dashboardHandler.Student)
	dashboard.GET("/system", middleware.RequireOperation(authz.OpDashboardAdmin), metricsHandler.System)

	exports := protected.Group("/exports")
	exports.GET("/visitors.csv", middleware.RequireOperation(authz.OpExportVisitors), exportHandler.VisitorLogCSV)
	exports.GET("/fees.pdf", middleware.RequireOperation(authz.OpExportFees), exportHandler.FeeStatementPDF)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
