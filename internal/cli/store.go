package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/config"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/memory"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/postgres"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/sqlite"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

// openStore connects the snapshot store named by cfg.StoreDriver. The
// returned close func is always safe to call.
func openStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (game.SnapshotStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, func() {}, err
		}
		log.Infow("[STORE] Connected to Redis", "addr", cfg.RedisURL)
		return redis.NewSnapshotStore(client, cfg.SessionTTL), func() { client.Close() }, nil

	case config.StorePostgres:
		db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			return nil, func() {}, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("[STORE] Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			db.Close()
			return nil, func() {}, fmt.Errorf("migration failed: %w", err)
		}
		return postgres.NewSnapshotRepo(db), func() { db.Close() }, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, func() {}, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			db.Close()
			return nil, func() {}, fmt.Errorf("migration failed: %w", err)
		}
		log.Infow("[STORE] Using SQLite", "path", cfg.SQLitePath)
		return sqlite.NewSnapshotRepo(db), func() { db.Close() }, nil

	default:
		return memory.NewStore(), func() {}, nil
	}
}
