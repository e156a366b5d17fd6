package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shakeel7521951/bursa-backend/app/echo-server/router"
	"github.com/shakeel7521951/bursa-backend/business/blog"
	"github.com/shakeel7521951/bursa-backend/business/catalog"
	"github.com/shakeel7521951/bursa-backend/business/orders"
	"github.com/shakeel7521951/bursa-backend/business/requests"
	userService "github.com/shakeel7521951/bursa-backend/business/user"
	"github.com/shakeel7521951/bursa-backend/internal/middleware"
	"github.com/shakeel7521951/bursa-backend/internal/repository/notification"
	psqlRepo "github.com/shakeel7521951/bursa-backend/internal/repository/postgres"
	redisRepo "github.com/shakeel7521951/bursa-backend/internal/repository/redis"
	"github.com/shakeel7521951/bursa-backend/internal/rest"
	"github.com/shakeel7521951/bursa-backend/pkg/config"
	"github.com/shakeel7521951/bursa-backend/pkg/database"
	redisdb "github.com/shakeel7521951/bursa-backend/pkg/database/redis"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
	"github.com/shakeel7521951/bursa-backend/pkg/metrics"
	"github.com/shakeel7521951/bursa-backend/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Bursa Trans API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close redis client", err)
		}
	}()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	serviceRepo := psqlRepo.NewServiceRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	requestRepo := psqlRepo.NewTransportRequestRepository(db)
	bookingRepo := psqlRepo.NewRequestBookingRepository(db)
	blogRepo := psqlRepo.NewBlogRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)

	// Init service
	usersSvc := userService.NewUserService(userRepo, validate, mailjetEmail, sessionRepo)
	catalogSvc := catalog.NewCatalogService(serviceRepo, ordersRepo)
	ordersSvc := orders.NewOrdersService(ordersRepo, serviceRepo, userRepo, mailjetEmail, cfg.App.AdminEmail)
	requestsSvc := requests.NewRequestsService(requestRepo, bookingRepo)
	blogSvc := blog.NewBlogService(blogRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usersSvc)
	serviceHandler := rest.NewServiceHandler(catalogSvc)
	ordersHandler := rest.NewOrdersHandler(ordersSvc)
	requestsHandler := rest.NewRequestsHandler(requestsSvc)
	blogHandler := rest.NewBlogHandler(blogSvc)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.App.FrontendURL, "http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(usersSvc)
	adminOnly := middleware.AdminOnly()
	transporterOnly := middleware.TransporterOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupServiceRoutes(api, serviceHandler, authRequired, transporterOnly)
	router.SetupOrdersRoutes(api, ordersHandler, authRequired, adminOnly)
	router.SetupRequestRoutes(api, requestsHandler, authRequired, transporterOnly)
	router.SetupBlogRoutes(api, blogHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
