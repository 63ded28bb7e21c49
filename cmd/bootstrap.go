package cmd

import (
	"context"
	"log"

	"content-store/core/config"
	"content-store/core/logger"
	"content-store/core/storage"
	"content-store/feature/content"

	"go.uber.org/zap"
)

// bootstrap loads configuration, builds the logger and storage client, and
// returns a ready content store. Failures are fatal.
func bootstrap(ctx context.Context, opts ...content.Option) (*config.Config, *zap.Logger, *content.Store) {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// 3. Initialize Storage (credentials are resolved here, once)
	client, err := storage.NewClient(cfg.Storage, logg)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}
	if cfg.Storage.AutoCreateBucket {
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Fatal("Failed to ensure bucket", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}
	}

	// 4. Initialize Content Store
	store, err := content.NewStore(client, cfg.Storage.Bucket, cfg.Content, logg, opts...)
	if err != nil {
		logg.Fatal("Invalid content configuration", zap.Error(err))
	}

	return cfg, logg, store
}
