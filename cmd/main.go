package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"sareehouse/internal/config"
	"sareehouse/internal/events"
	"sareehouse/internal/handlers"
	"sareehouse/internal/middleware"
	"sareehouse/internal/models"
	"sareehouse/internal/repository"
	"sareehouse/internal/services"
	"sareehouse/internal/storage"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.WishlistItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Optional - caching and token revocation degrade gracefully without it
	redisClient := config.InitRedis(cfg)
	if redisClient == nil {
		logger.Warn("Redis unavailable, caching and sign-out revocation disabled")
	} else {
		logger.Info("Connected to Redis")
	}

	// Optional - storefront events are best effort
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			logger.WithError(err).Warn("NATS unavailable, continuing without events")
		}
	} else {
		logger.Warn("NATS_URL not configured, events disabled")
	}
	defer publisher.Close()

	// Optional - image uploads require a configured bucket
	var imageStore storage.ImageStore
	if cfg.GCSBucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := storage.NewGCSImageStore(ctx, cfg.GCSBucket)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("GCS unavailable, image uploads disabled")
		} else {
			imageStore = store
		}
	} else {
		logger.Warn("GCS_BUCKET not configured, image uploads disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db, redisClient)
	productRepo := repository.NewProductRepository(db, redisClient)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	checkoutRepo := repository.NewCheckoutRepository(db, redisClient)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, redisClient, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, logger)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, imageStore, logger)
	cartService := services.NewCartService(cartRepo, productRepo, logger)
	checkoutService := services.NewCheckoutService(checkoutRepo, publisher, logger)
	orderService := services.NewOrderService(orderRepo, userRepo, authService, publisher, logger)
	reviewService := services.NewReviewService(reviewRepo, orderRepo, userRepo, publisher, logger)
	analyticsService := services.NewAnalyticsService(orderRepo, productRepo, userRepo, reviewRepo, cfg.LowStockThreshold, logger)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService, cfg.DefaultPageSize, cfg.MaxPageSize)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistHandler := handlers.NewWishlistHandler(db)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)

	auth := middleware.AuthMiddleware(cfg.JWTSecret, authService)
	admin := middleware.RequireAdmin()

	v1 := router.Group("/api/v1")
	{
		// Public storefront routes
		v1.POST("/auth/signup", authHandler.SignUp)
		v1.POST("/auth/signin", authHandler.SignIn)
		v1.POST("/auth/reset-password", authHandler.RequestPasswordReset)
		v1.POST("/auth/reset-password/confirm", authHandler.ConfirmPasswordReset)

		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.GET("/products/:id/images", productHandler.ListGalleryImages)
		v1.GET("/categories", categoryHandler.ListCategories)
		v1.GET("/categories/:id", categoryHandler.GetCategory)
		v1.GET("/reviews", reviewHandler.ListApproved)

		// Signed-in customer routes
		customer := v1.Group("")
		customer.Use(auth)
		{
			customer.POST("/auth/signout", authHandler.SignOut)
			customer.GET("/account", authHandler.GetAccount)
			customer.PUT("/account/profile", authHandler.UpdateProfile)

			customer.GET("/cart", cartHandler.GetCart)
			customer.DELETE("/cart", cartHandler.ClearCart)
			customer.POST("/cart/items", cartHandler.AddItem)
			customer.PUT("/cart/items/:itemId", cartHandler.UpdateItem)
			customer.DELETE("/cart/items/:itemId", cartHandler.RemoveItem)

			customer.POST("/checkout", checkoutHandler.Checkout)

			customer.GET("/orders", orderHandler.ListMyOrders)
			customer.GET("/orders/:id", orderHandler.GetOrder)
			customer.POST("/orders/:id/cancel", orderHandler.CancelOrder)

			customer.GET("/reviews/eligibility", reviewHandler.CheckEligibility)
			customer.POST("/reviews", reviewHandler.CreateReview)

			customer.GET("/wishlist", wishlistHandler.GetWishlist)
			customer.POST("/wishlist", wishlistHandler.AddToWishlist)
			customer.DELETE("/wishlist/:productId", wishlistHandler.RemoveFromWishlist)
		}

		// Admin back office routes
		adminGroup := v1.Group("/admin")
		adminGroup.Use(auth, admin)
		{
			adminGroup.POST("/products", productHandler.CreateProduct)
			adminGroup.PUT("/products/:id", productHandler.UpdateProduct)
			adminGroup.DELETE("/products/:id", productHandler.DeleteProduct)
			adminGroup.POST("/products/upload", productHandler.UploadImage)
			adminGroup.POST("/products/:id/images", productHandler.AddGalleryImages)
			adminGroup.PUT("/products/:id/images/reorder", productHandler.ReorderGalleryImages)
			adminGroup.DELETE("/products/:id/images/:imageId", productHandler.DeleteGalleryImage)

			adminGroup.POST("/categories", categoryHandler.CreateCategory)
			adminGroup.PUT("/categories/:id", categoryHandler.UpdateCategory)
			adminGroup.DELETE("/categories/:id", categoryHandler.DeleteCategory)

			adminGroup.GET("/orders", orderHandler.ListOrders)
			adminGroup.PUT("/orders/:id/status", orderHandler.UpdateStatus)
			adminGroup.DELETE("/orders/:id", orderHandler.DeleteOrder)

			adminGroup.GET("/customers", authHandler.ListCustomers)

			adminGroup.GET("/reviews", reviewHandler.ListAll)
			adminGroup.PUT("/reviews/:id/status", reviewHandler.UpdateStatus)
			adminGroup.DELETE("/reviews/:id", reviewHandler.DeleteReview)

			adminGroup.GET("/analytics/dashboard", analyticsHandler.Dashboard)
			adminGroup.GET("/analytics/sales", analyticsHandler.SalesOverTime)
			adminGroup.GET("/analytics/top-products", analyticsHandler.TopProducts)
			adminGroup.GET("/analytics/order-statuses", analyticsHandler.StatusHistogram)
		}
	}

	logger.WithField("port", cfg.Port).Info("Starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
