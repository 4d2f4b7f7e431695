package main

import (
	"context" // Seeding context
	"flag"    // Command-line flags

	"storefront/internal/config"  // Custom import path (Config)
	"storefront/internal/db"      // Custom import path (Database)
	"storefront/internal/logging" // Logger setup
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "seed default users and the catalog when the tables are empty")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	closer := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.IsProd})
	defer closer.Close()

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err) // Log fatal error if migration fails
	}
	if !*seed {
		return
	}

	ctx := context.Background()
	if err := db.SeedUsers(ctx, gdb); err != nil {
		logrus.Fatalf("failed to seed users: %v", err)
	}
	catalog := service.NewCatalogService(repository.NewProductRepository(gdb))
	load := func(ctx context.Context) (int, error) {
		return catalog.Reload(ctx, service.FileSource(cfg.ProductsFile))
	}
	if err := db.SeedProducts(ctx, gdb, load); err != nil {
		logrus.Fatalf("failed to seed products: %v", err)
	}
}
