package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "admin123", cfg.Auth.AdminSecret)
	assert.True(t, cfg.App.SeedDemoData)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.False(t, cfg.App.SeedDemoData)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, time.UTC, cfg.App.Location)
}
