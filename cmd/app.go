package cmd

import (
	"context"
	"fmt"
	"time"

	"locize-sync/core/config"
	"locize-sync/core/database"
	"locize-sync/core/logger"
	"locize-sync/core/reconcile"
	"locize-sync/core/storage"
	"locize-sync/feature/bucket"
	"locize-sync/feature/dbstore"
	"locize-sync/feature/extractor"
	"locize-sync/feature/locize"

	"go.uber.org/zap"
)

// setup loads and validates the configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// newStore builds the translation store selected by store.backend.
func newStore(ctx context.Context, cfg *config.Config, l *zap.Logger) (reconcile.Store, error) {
	l = l.With(zap.String("store", cfg.Store.Backend))

	switch cfg.Store.Backend {
	case config.BackendLocize:
		return locize.NewStore(locize.Config{
			BaseURL:   cfg.Locize.BaseURL,
			ProjectID: cfg.Locize.ProjectID,
			APIKey:    cfg.Locize.APIKey,
			Version:   cfg.Locize.Version,
			Namespace: cfg.Store.Namespace,
			Timeout:   time.Duration(cfg.Locize.TimeoutSeconds) * time.Second,
		}, l), nil

	case config.BackendBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("bucket %q does not exist", cfg.Storage.Bucket)
		}
		return bucket.NewStore(client, cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.Store.Namespace, l), nil

	case config.BackendDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		store := dbstore.NewStore(db, cfg.Store.Namespace, l)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newExtractor builds the source scanner from find_keys.
func newExtractor(cfg *config.Config, l *zap.Logger) (*extractor.Extractor, error) {
	return extractor.New(extractor.Config{
		Extensions: cfg.FindKeys.Extensions,
		Ignore:     cfg.FindKeys.Ignore,
		Functions:  cfg.FindKeys.Functions,
		Namespace:  cfg.Store.Namespace,
		Unique:     cfg.FindKeys.Unique,
	}, l)
}

// sourceRoot returns the --root flag, then find_keys.root, then ".".
func sourceRoot(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.FindKeys.Root != "" {
		return cfg.FindKeys.Root
	}
	return "."
}

// newEngine wires the store and extractor into an engine.
func newEngine(ctx context.Context, cfg *config.Config, l *zap.Logger, opts ...reconcile.Option) (*reconcile.Engine, error) {
	store, err := newStore(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	ext, err := newExtractor(cfg, l)
	if err != nil {
		return nil, err
	}
	return reconcile.NewEngine(store, ext, l, opts...), nil
}
