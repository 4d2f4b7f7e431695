package main

import (
	"context"   // Lifecycle context
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"storefront/internal/api"        // Custom package for API handlers
	"storefront/internal/config"     // Custom package for configuration
	"storefront/internal/db"         // Database connection, migration and seeding
	"storefront/internal/logging"    // Logger setup
	"storefront/internal/repository" // Gorm-backed stores
	"storefront/internal/service"    // Domain services
	"storefront/internal/utils"      // Login attempt counter

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/sync/errgroup"   // Server and shutdown goroutines
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	closer := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.IsProd})
	defer closer.Close()

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Login throttling is optional: without Redis every attempt is allowed
	var attempts *utils.LoginAttempts
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		defer redisClient.Close()
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		attempts = utils.NewLoginAttempts(redisClient, cfg.LoginMaxAttempts, cfg.LoginLockout)
	}

	products := repository.NewProductRepository(gdb)
	users := repository.NewUserRepository(gdb)
	carts := repository.NewCartRepository(gdb)

	catalog := service.NewCatalogService(products)
	cart := service.NewCartService(carts, products, users)
	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL, attempts)
	source := service.FileSource(cfg.ProductsFile)

	// Bootstrap data for empty databases
	if err := db.SeedUsers(ctx, gdb); err != nil {
		logrus.Fatalf("failed to seed users: %v", err)
	}
	if err := db.SeedProducts(ctx, gdb, func(ctx context.Context) (int, error) {
		return catalog.Reload(ctx, source)
	}); err != nil {
		logrus.Fatalf("failed to seed products: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(api.Deps{
		DB:           gdb,
		Catalog:      catalog,
		Cart:         cart,
		Auth:         auth,
		ImportSource: source,
		JWTSecret:    cfg.JWTSecret,
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("Server running") // Log server start
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logrus.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logrus.Errorf("server stopped: %v", err)
	}
}
