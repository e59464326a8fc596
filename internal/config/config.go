package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config contains all configuration parameters for the server.
type Config struct {
	Port              string `envconfig:"PORT" default:"3000"`
	Env               string `envconfig:"ENV" default:"development"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	StoreDriver       string `envconfig:"STORE_DRIVER" default:"postgres"`
	JWTSecret         string `envconfig:"JWT_SECRET" default:"aegis"`
	CORSOrigins       string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	WithdrawRateLimit int    `envconfig:"WITHDRAW_RATE_LIMIT" default:"5"`
	LoginRateLimit    int    `envconfig:"LOGIN_RATE_LIMIT" default:"5"`

	Database DatabaseConfig `envconfig:"DB"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Fees     FeeDefaults    `envconfig:"FEE"`
	DevFund  DevFundSeed    `envconfig:"DEV_FUND"`
	Admin    AdminSeed      `envconfig:"ADMIN"`
	Retry    RetryConfig    `envconfig:"RETRY"`
}

// DatabaseConfig holds the PostgreSQL connection and pool settings.
// Nested fields carry no envconfig tag so they only resolve under their
// prefix (DB_HOST, never HOST).
type DatabaseConfig struct {
	Host            string        `default:"localhost"`
	Port            string        `default:"5432"`
	User            string        `default:"postgres"`
	Password        string        `default:"postgres"`
	Name            string        `default:"aegis"`
	SSLMode         string        `split_words:"true" default:"disable"`
	MaxIdleConns    int           `split_words:"true" default:"10"`
	MaxOpenConns    int           `split_words:"true" default:"100"`
	ConnMaxLifetime time.Duration `split_words:"true" default:"1h"`
	ConnMaxIdleTime time.Duration `split_words:"true" default:"30m"`
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type RedisConfig struct {
	Enabled  bool          `default:"true"`
	Host     string        `default:"localhost"`
	Port     string        `default:"6379"`
	Password string        `default:""`
	DB       int           `default:"0"`
	TTL      time.Duration `default:"10m"`
}

// FeeDefaults seeds the fee policy when the store holds none yet.
type FeeDefaults struct {
	Enabled        bool    `default:"true"`
	Percentage     float64 `default:"1.5"`
	MinFee         float64 `split_words:"true" default:"0.001"`
	MaxFee         float64 `split_words:"true" default:"2.0"`
	DevFundAddress string  `split_words:"true" default:"aegs1qqu5j3hxmvujs258zc2xuy8k6vmkzp5qxhqhec7"`
}

// DevFundSeed seeds the ledger when the store holds none yet.
type DevFundSeed struct {
	Balance           float64 `default:"245.32"`
	TotalCollected    float64 `split_words:"true" default:"325.75"`
	WithdrawalAddress string  `split_words:"true" default:"aegs1qqu5j3hxmvujs258zc2xuy8k6vmkzp5qxhqhec7"`
}

type AdminSeed struct {
	Email    string
	Password string
}

// RetryConfig bounds retries of transient store failures.
type RetryConfig struct {
	MaxAttempts     int           `split_words:"true" default:"3"`
	InitialInterval time.Duration `split_words:"true" default:"50ms"`
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the .env file (when present) and processes the environment into a Config.
func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
