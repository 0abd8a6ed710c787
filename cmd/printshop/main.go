package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/printhaus/printshop-platform/internal/api/handlers"
	"github.com/printhaus/printshop-platform/internal/api/middleware"
	"github.com/printhaus/printshop-platform/internal/cache"
	"github.com/printhaus/printshop-platform/internal/config"
	"github.com/printhaus/printshop-platform/internal/health"
	"github.com/printhaus/printshop-platform/internal/metrics"
	repository "github.com/printhaus/printshop-platform/internal/repositories"
	redisrepo "github.com/printhaus/printshop-platform/internal/repositories/redis"
	service "github.com/printhaus/printshop-platform/internal/services"
	"github.com/printhaus/printshop-platform/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := redisrepo.NewClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	rateLimitRepo := redisrepo.NewRateLimitRepo(redisClient, cfg)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)
	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, productCache, cfg.Uploads.MaxImageBytes)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product, cfg.Shipping.ExpressFee, metrics.CartObserver)
	cartHandler := handlers.NewCartHandler(cartService)
	notificationService := service.NewNotificationService(repos.Notification, emailClient)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.User, notificationService, cfg.Shipping.ExpressFee)
	orderHandler := handlers.NewOrderHandler(orderService)
	enquiryService := service.NewEnquiryService(repos.Enquiry)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)
	rateLimiter := middleware.NewRateLimiter()

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()

	// Public storefront
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/enquiries", enquiryHandler.CreateEnquiry())

	// Authenticated customers
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("PUT /api/v1/users/profile", authMiddleware.Authenticate(userHandler.UpdateProfile()))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListMyOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))

	// Back office
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.Authenticate(authMiddleware.RequireAdmin(productHandler.CreateProduct())))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(productHandler.UpdateProduct())))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(productHandler.DeleteProduct())))
	routerMux.HandleFunc("GET /api/v1/admin/orders", authMiddleware.Authenticate(authMiddleware.RequireAdmin(orderHandler.ListAllOrders())))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", authMiddleware.Authenticate(authMiddleware.RequireAdmin(orderHandler.UpdateStatus())))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/delivery", authMiddleware.Authenticate(authMiddleware.RequireAdmin(orderHandler.UpdateDeliveryInfo())))
	routerMux.HandleFunc("DELETE /api/v1/admin/orders/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(orderHandler.DeleteOrder())))
	routerMux.HandleFunc("GET /api/v1/admin/enquiries", authMiddleware.Authenticate(authMiddleware.RequireAdmin(enquiryHandler.ListEnquiries())))
	routerMux.HandleFunc("GET /api/v1/admin/enquiries/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(enquiryHandler.GetEnquiry())))
	routerMux.HandleFunc("PATCH /api/v1/admin/enquiries/{id}/status", authMiddleware.Authenticate(authMiddleware.RequireAdmin(enquiryHandler.UpdateStatus())))
	routerMux.HandleFunc("DELETE /api/v1/admin/enquiries/{id}", authMiddleware.Authenticate(authMiddleware.RequireAdmin(enquiryHandler.DeleteEnquiry())))
	routerMux.HandleFunc("POST /api/v1/admin/notifications/email", authMiddleware.Authenticate(authMiddleware.RequireAdmin(notificationHandler.SendEmail())))
	routerMux.HandleFunc("GET /api/v1/admin/notifications", authMiddleware.Authenticate(authMiddleware.RequireAdmin(notificationHandler.ListNotifications())))

	// Operational endpoints
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = rateLimiter.Limit(handler)
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
