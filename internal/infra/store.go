package infra

import (
	"context"
	"fmt"

	"go-caixa-pos/internal/config"
	"go-caixa-pos/pkg/database"
	"go-caixa-pos/pkg/kvstore"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"
)

// OpenStore builds the key-value store selected by STORE_DRIVER. The returned
// close func releases the underlying connection.
func OpenStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func() error, error) {
	noop := func() error { return nil }

	gormLevel := logger.Warn
	if cfg.LogLevel == "debug" {
		gormLevel = logger.Info
	}

	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("memory store selected: state is lost on restart")
		return kvstore.NewMemory(), noop, nil

	case database.DriverSQLite, database.DriverPostgres, database.DriverMySQL:
		dsn := cfg.DatabaseURL
		if cfg.StoreDriver == database.DriverSQLite {
			dsn = cfg.SQLitePath
		}
		db, err := database.Connect(cfg.StoreDriver, dsn, gormLevel)
		if err != nil {
			return nil, nil, err
		}
		store, err := kvstore.NewGormStore(db)
		if err != nil {
			return nil, nil, fmt.Errorf("migrate kv_entries: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return store, sqlDB.Close, nil

	case "redis":
		rdb, err := kvstore.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return kvstore.NewRedisStore(rdb, cfg.RedisPrefix), rdb.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
