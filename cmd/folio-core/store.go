package main

import (
	"context"
	"fmt"
	"log"

	"github.com/foliocms/folio-core/internal/adapters/driven/filestore"
	"github.com/foliocms/folio-core/internal/adapters/driven/postgres"
	redisadapter "github.com/foliocms/folio-core/internal/adapters/driven/redis"
	"github.com/foliocms/folio-core/internal/adapters/driven/sealed"
	"github.com/foliocms/folio-core/internal/config"
	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
)

// openStore connects the configured backing store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (driven.KeyValueStore, func(), error) {
	var (
		store   driven.KeyValueStore
		closeFn = func() {}
	)

	switch cfg.Backend {
	case config.BackendRedis:
		log.Println("Connecting to Redis...")
		client, err := redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		closeFn = func() { _ = client.Close() }
		store = redisadapter.NewKeyValueStore(client, cfg.KeyPrefix)
		log.Println("Redis connected")

	case config.BackendPostgres:
		log.Println("Connecting to PostgreSQL...")
		dbCfg := postgres.DefaultConfig(cfg.DatabaseURL)
		dbCfg.MaxOpenConns = cfg.DBMaxOpenConns
		dbCfg.MaxIdleConns = cfg.DBMaxIdleConns
		dbCfg.ConnMaxLifetime = cfg.DBConnMaxLifetime
		dbCfg.ConnMaxIdleTime = cfg.DBConnMaxIdleTime

		db, err := postgres.Connect(ctx, dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := db.InitSchema(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
		closeFn = func() { _ = db.Close() }
		store = postgres.NewKeyValueStore(db.DB, cfg.KeyPrefix)
		log.Println("PostgreSQL connected and schema initialized")

	default:
		fs, err := filestore.NewKeyValueStore(cfg.DataDir, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open data dir: %w", err)
		}
		store = fs
		log.Printf("Using file store in %s", cfg.DataDir)
	}

	if cfg.SecretKey != "" {
		sealer, err := sealed.NewSealerFromHex(cfg.SecretKey)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("invalid FOLIO_SECRET_KEY: %w", err)
		}
		store = sealed.NewStore(store, sealer, domain.KeySession)
		log.Println("Session record sealed at rest")
	}

	return store, closeFn, nil
}
