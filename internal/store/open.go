package store

import (
	"context"
	"fmt"

	"github.com/Shivanand-hulikatti/event-booking/internal/config"
	"github.com/Shivanand-hulikatti/event-booking/internal/database"
	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
)

// Open builds the backend selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return OpenSQLite(ctx, cfg.Store.SQLiteDSN)
	case "postgres":
		pool, err := database.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		s, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	case "redis":
		client, err := DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
