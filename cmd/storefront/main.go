package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/auth"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

func main() {
	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	shutdownTracing, err := telemetry.Setup(startupCtx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(startupCtx, &cfg.Database)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(startupCtx, repos.DB); err != nil {
			slog.Error("❌ Error applying migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(startupCtx, &cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	listCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	limiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	tokens := auth.NewTokenManager(cfg.Security)

	numberer, err := utils.NewOrderNumberer(cfg.OrderNumber.Salt, cfg.OrderNumber.MinLength)
	if err != nil {
		slog.Error("❌ Error configuring order numbers", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var mailer service.Mailer
	if cfg.SendGrid.APIKey != "" {
		mailer = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.AppBaseURL)
	} else {
		slog.Warn("SendGrid API key not set, account emails will not be delivered")
	}

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey)

	userService := service.NewUserService(repos.Users, mailer)
	authService := service.NewAuthService(repos, limiter, tokens, mailer, cfg.Security.ResetTokenExpiry)
	addressService := service.NewAddressService(repos.Addresses)
	categoryService := service.NewCategoryService(repos.Categories, listCache, cfg.Cache.ListTTL)
	productService := service.NewProductService(repos.Transactor, repos.Products, repos.Categories, listCache, cfg.Cache.ListTTL)
	cartService := service.NewCartService(repos.Transactor, repos.Carts, repos.Products)
	orderService := service.NewOrderService(repos, listCache, numberer, cfg.Cache.ListTTL)
	ratingService := service.NewRatingService(repos.Transactor, repos.Ratings, repos.Products)
	paymentService := service.NewPaymentService(repos.Payments, repos.Orders, stripeClient, cfg.Stripe.SupportedCurrencies)

	if err := userService.SeedAdmin(startupCtx, cfg.Admin); err != nil {
		slog.Error("❌ Error seeding the admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService, cfg.Env == "production")
	addressHandler := handlers.NewAddressHandler(addressService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	authMiddleware := middleware.NewAuthMiddleware(tokens, authService, userService)

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{Stripe: stripeClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", health.Version))

	authed := authMiddleware.Authenticate
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireAdmin(next))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.Handle("GET /health", healthChecker.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.HandleFunc("GET /api/v1", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, "Storefront API is running", nil)
	})

	routerMux.HandleFunc("POST /api/v1/users", userHandler.Register())
	routerMux.HandleFunc("PUT /api/v1/users", authed(userHandler.UpdateUser()))

	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/refresh", authHandler.RefreshToken())
	routerMux.HandleFunc("POST /api/v1/auth/forgot-password", authHandler.ForgotPassword())
	routerMux.HandleFunc("POST /api/v1/auth/reset-password", authHandler.ResetPassword())
	routerMux.HandleFunc("POST /api/v1/auth/email-verification", userHandler.VerifyEmail())
	routerMux.HandleFunc("GET /api/v1/auth/logout", authed(authHandler.Logout()))
	routerMux.HandleFunc("POST /api/v1/auth/change-password", authed(authHandler.ChangePassword()))

	routerMux.HandleFunc("POST /api/v1/customer-address", authed(addressHandler.CreateAddress()))
	routerMux.HandleFunc("PUT /api/v1/customer-address", authed(addressHandler.UpdateAddress()))
	routerMux.HandleFunc("GET /api/v1/customer-address", authed(addressHandler.GetAddress()))

	routerMux.HandleFunc("GET /api/v1/categories", categoryHandler.ListCategories())
	routerMux.HandleFunc("POST /api/v1/categories", admin(categoryHandler.CreateCategory()))
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", admin(categoryHandler.UpdateCategory()))
	routerMux.HandleFunc("DELETE /api/v1/categories/{id}", admin(categoryHandler.DeleteCategory()))
	routerMux.HandleFunc("POST /api/v1/categories/{id}/status", admin(categoryHandler.UpdateStatus()))

	routerMux.HandleFunc("POST /api/v1/products", admin(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", admin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", admin(productHandler.DeleteProduct()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/status", admin(productHandler.UpdateStatus()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/images", admin(productHandler.AddImages()))
	routerMux.HandleFunc("POST /api/v1/products/{id}/images/delete", admin(productHandler.RemoveImages()))
	routerMux.HandleFunc("POST /api/v1/products/lists", productHandler.ListProducts())
	routerMux.HandleFunc("POST /api/v1/products/by-category", productHandler.ListByCategories())

	routerMux.HandleFunc("POST /api/v1/carts", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/carts/add-item", cartHandler.AddItem())
	routerMux.HandleFunc("POST /api/v1/carts/remove-item", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /api/v1/carts/update-item", cartHandler.UpdateItem())

	routerMux.HandleFunc("POST /api/v1/orders", authed(orderHandler.Checkout()))
	routerMux.HandleFunc("POST /api/v1/orders/list-with-search", authed(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authed(orderHandler.GetOrder()))
	routerMux.HandleFunc("POST /api/v1/orders/update-order-status", admin(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("POST /api/v1/orders/update-payment-status", admin(orderHandler.UpdatePaymentStatus()))

	routerMux.HandleFunc("POST /api/v1/rating/add-or-update-rating", authed(ratingHandler.AddOrUpdateRating()))
	routerMux.HandleFunc("POST /api/v1/rating/delete-rating", authed(ratingHandler.DeleteRating()))
	routerMux.HandleFunc("GET /api/v1/rating/{productId}", authed(ratingHandler.GetMyRating()))

	routerMux.HandleFunc("POST /api/v1/payments/create-payment-intent", authed(paymentHandler.CreatePaymentIntent()))

	// Middleware chaining, innermost first
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = middleware.Recover(handler)
	handler = middleware.CORS(cfg.HTTPServer.CORSOrigins)(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		repos.Close(),
		shutdownTracing(shutdownCtx),
	)
	if err != nil {
		slog.Error("⚠️ Shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}
}
