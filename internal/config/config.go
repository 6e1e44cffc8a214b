// Package config loads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Kafka    KafkaConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StoreConfig selects the document store backend: memory, sqlite, postgres or redis.
type StoreConfig struct {
	Driver    string
	SQLiteDSN string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type AuthConfig struct {
	AdminSecret string
	BcryptCost  int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type AppConfig struct {
	SeedDemoData bool
	LogFile      string
	Location     *time.Location
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver:    strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			SQLiteDSN: getEnv("SQLITE_DSN", "file:eventbooking.db?cache=shared"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "eventbooking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
			MinConns: getEnvInt("DB_MIN_CONNS", 1),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", ""),
		},
		Auth: AuthConfig{
			AdminSecret: getEnv("ADMIN_SECRET", "admin123"),
			BcryptCost:  getEnvInt("BCRYPT_COST", 10),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "event-booking.notifications"),
		},
		App: AppConfig{
			SeedDemoData: getEnvBool("SEED_DEMO_DATA", true),
			LogFile:      getEnv("LOG_FILE", ""),
			Location:     getEnvLocation("APP_TIMEZONE", time.Local),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvLocation(key string, defaultValue *time.Location) *time.Location {
	if value := os.Getenv(key); value != "" {
		if loc, err := time.LoadLocation(value); err == nil {
			return loc
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
