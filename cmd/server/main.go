package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/autopartshop/autoparts-backend/config"
	"github.com/autopartshop/autoparts-backend/internal/app/controller"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/internal/app/service"
	"github.com/autopartshop/autoparts-backend/internal/db"
	"github.com/autopartshop/autoparts-backend/internal/middleware"
	"github.com/autopartshop/autoparts-backend/internal/router"
	"github.com/autopartshop/autoparts-backend/internal/scheduler"
	"github.com/autopartshop/autoparts-backend/internal/storage"
	"github.com/autopartshop/autoparts-backend/internal/websocket"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"github.com/autopartshop/autoparts-backend/pkg/mailer"
	"github.com/autopartshop/autoparts-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting AutoParts Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis cache (optional)
	if cfg.Redis.Enabled {
		if err := redis.Init(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}); err != nil {
			logger.Warn("Failed to connect to Redis, caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	brandRepo := repository.NewCarBrandRepository(db.GetDB())
	modelRepo := repository.NewCarModelRepository(db.GetDB())
	variantRepo := repository.NewEngineVariantRepository(db.GetDB())
	partRepo := repository.NewPartRepository(db.GetDB())
	partsCategoryRepo := repository.NewPartsCategoryRepository(db.GetDB())
	equipmentRepo := repository.NewEquipmentRepository(db.GetDB())
	equipmentCategoryRepo := repository.NewEquipmentCategoryRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize websocket hub for the admin order feed
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize mailer
	var mail mailer.Mailer = mailer.NopMailer{}
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	// Initialize image storage
	imageStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	brandService := service.NewCarBrandService(brandRepo)
	modelService := service.NewCarModelService(modelRepo, brandRepo)
	variantService := service.NewEngineVariantService(variantRepo, modelRepo)
	partService := service.NewPartService(partRepo, modelRepo, partsCategoryRepo, variantRepo)
	partsCategoryService := service.NewPartsCategoryService(partsCategoryRepo)
	equipmentService := service.NewEquipmentService(equipmentRepo, equipmentCategoryRepo)
	equipmentCategoryService := service.NewEquipmentCategoryService(equipmentCategoryRepo)
	cartService := service.NewCartService(cartRepo, partRepo, equipmentRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, userRepo, db.GetDB(), mail, hub)
	compatibilityService := service.NewCompatibilityService(variantRepo, partRepo, modelRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	brandController := controller.NewCarBrandController(brandService)
	modelController := controller.NewCarModelController(modelService, compatibilityService)
	variantController := controller.NewEngineVariantController(variantService)
	partController := controller.NewPartController(partService, compatibilityService)
	partsCategoryController := controller.NewPartsCategoryController(partsCategoryService)
	equipmentController := controller.NewEquipmentController(equipmentService)
	equipmentCategoryController := controller.NewEquipmentCategoryController(equipmentCategoryService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, hub)
	uploadController := controller.NewUploadController(imageStorage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the stale cart cleanup scheduler
	cartCleanup := scheduler.NewCartCleanupScheduler(cartRepo, cfg.Cart.StaleAfter)
	cartCleanup.Start()
	defer cartCleanup.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		brandController,
		modelController,
		variantController,
		partController,
		partsCategoryController,
		equipmentController,
		equipmentCategoryController,
		cartController,
		orderController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
