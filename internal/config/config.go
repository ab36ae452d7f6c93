package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBUser         string
	DBPass         string
	DBHost         string
	DBPort         string
	DBName         string
	SSLMode        string
	RedisHost      string
	RedisPort      string
	NatsHost       string
	NatsPort       string
	ApiPort        string
	BusProvider    string
	GRPCHost       string
	GRPCPort       string
	GRPCListenPort string
	ApiEnabled     string
	WorkerProvider string

	AdminKey      string
	MaxPrize      decimal.Decimal
	HouseEdge     decimal.Decimal
	MaxCodeBet    int64
	MaxAccountBet decimal.Decimal
	TwoFactorTTL  time.Duration
	OddsFile      string

	LogLevel  string
	LogFormat string
	LogFile   string
}

// New loads and validates configuration from environment variables.
// HTTP server is optional: if PRIZE_API_ENABLED != "true", ApiAddr() returns an error
// and the HTTP server simply won't start.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:         os.Getenv("PRIZE_POSTGRES_USER"),
		DBPass:         os.Getenv("PRIZE_POSTGRES_PASSWORD"),
		DBHost:         os.Getenv("PRIZE_POSTGRES_HOST"),
		DBPort:         getEnv("PRIZE_POSTGRES_PORT", "5432"),
		DBName:         os.Getenv("PRIZE_POSTGRES_DB"),
		SSLMode:        getEnv("PRIZE_POSTGRES_SSLMODE", "disable"),
		RedisHost:      os.Getenv("PRIZE_REDIS_HOST"),
		RedisPort:      os.Getenv("PRIZE_REDIS_PORT"),
		NatsHost:       os.Getenv("PRIZE_NATS_HOST"),
		NatsPort:       os.Getenv("PRIZE_NATS_PORT"),
		GRPCHost:       os.Getenv("PRIZE_GRPC_HOST"),
		GRPCPort:       os.Getenv("PRIZE_GRPC_PORT"),
		GRPCListenPort: getEnv("PRIZE_GRPC_LISTEN_PORT", "50051"),
		BusProvider:    os.Getenv("PRIZE_BUS_PROVIDER"),
		ApiPort:        os.Getenv("PRIZE_API_PORT"),
		ApiEnabled:     os.Getenv("PRIZE_API_ENABLED"),
		WorkerProvider: os.Getenv("PRIZE_WORKER_PROVIDER"),

		AdminKey:     os.Getenv("PRIZE_ADMIN_KEY"),
		MaxCodeBet:   int64(getEnvInt("PRIZE_MAX_CODE_BET", 10)),
		TwoFactorTTL: getEnvDuration("PRIZE_TWO_FACTOR_TTL", 5*time.Minute),
		OddsFile:     os.Getenv("PRIZE_ODDS_FILE"),

		LogLevel:  getEnv("PRIZE_LOG_LEVEL", "info"),
		LogFormat: getEnv("PRIZE_LOG_FORMAT", "json"),
		LogFile:   os.Getenv("PRIZE_LOG_FILE"),
	}

	var err error
	if cfg.MaxPrize, err = getEnvDecimal("PRIZE_MAX_PRIZE", "500"); err != nil {
		return nil, err
	}
	if cfg.HouseEdge, err = getEnvDecimal("PRIZE_HOUSE_EDGE", "1"); err != nil {
		return nil, err
	}
	if cfg.MaxAccountBet, err = getEnvDecimal("PRIZE_MAX_ACCOUNT_BET", "100"); err != nil {
		return nil, err
	}

	// Required: database
	if cfg.DBUser == "" || cfg.DBHost == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("missing required env for database: PRIZE_POSTGRES_USER/HOST/DB")
	}

	// Required: redis
	if cfg.RedisHost == "" || cfg.RedisPort == "" {
		return nil, fmt.Errorf("missing required env for redis: PRIZE_REDIS_HOST/PORT")
	}

	// Required: bus provider
	if cfg.BusProvider == "" {
		return nil, fmt.Errorf("missing required env: PRIZE_BUS_PROVIDER (nats|grpc)")
	}
	if cfg.BusProvider != "nats" && cfg.BusProvider != "grpc" {
		return nil, fmt.Errorf("invalid bus provider %q, must be 'nats' or 'grpc'", cfg.BusProvider)
	}

	// Required: worker provider (default to bus provider if empty)
	if cfg.WorkerProvider == "" {
		cfg.WorkerProvider = cfg.BusProvider
	}
	if cfg.WorkerProvider != "nats" && cfg.WorkerProvider != "grpc" {
		return nil, fmt.Errorf("invalid worker provider %q, must be 'nats' or 'grpc'", cfg.WorkerProvider)
	}
	if cfg.BusProvider == "grpc" && (cfg.GRPCHost == "" || cfg.GRPCPort == "") {
		return nil, fmt.Errorf("missing required env for grpc bus: PRIZE_GRPC_HOST/PORT")
	}
	if (cfg.BusProvider == "nats" || cfg.WorkerProvider == "nats") && (cfg.NatsHost == "" || cfg.NatsPort == "") {
		return nil, fmt.Errorf("missing required env for nats: PRIZE_NATS_HOST/PORT")
	}

	// Required: operator routes are closed without a shared secret.
	if cfg.AdminKey == "" {
		return nil, fmt.Errorf("missing required env: PRIZE_ADMIN_KEY")
	}

	// Game limits
	if !cfg.MaxPrize.IsPositive() {
		return nil, fmt.Errorf("PRIZE_MAX_PRIZE must be positive, got %s", cfg.MaxPrize)
	}
	if !cfg.HouseEdge.IsPositive() || cfg.HouseEdge.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("PRIZE_HOUSE_EDGE must be in (0, 100), got %s", cfg.HouseEdge)
	}
	if cfg.MaxCodeBet < 1 {
		return nil, fmt.Errorf("PRIZE_MAX_CODE_BET must be at least 1, got %d", cfg.MaxCodeBet)
	}
	if !cfg.MaxAccountBet.IsPositive() {
		return nil, fmt.Errorf("PRIZE_MAX_ACCOUNT_BET must be positive, got %s", cfg.MaxAccountBet)
	}
	if cfg.TwoFactorTTL <= 0 {
		return nil, fmt.Errorf("PRIZE_TWO_FACTOR_TTL must be positive, got %s", cfg.TwoFactorTTL)
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName, c.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c *Config) NatsAddr() string {
	return fmt.Sprintf("nats://%s:%s", c.NatsHost, c.NatsPort)
}

// GRPCAddr is the remote EventService dialled by the grpc bus.
func (c *Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%s", c.GRPCHost, c.GRPCPort)
}

// GRPCListenAddr is where this process serves the wallet and event services.
func (c *Config) GRPCListenAddr() string {
	return ":" + c.GRPCListenPort
}

// ApiAddr returns the HTTP listen address if the API is enabled.
// Returns an error if PRIZE_API_ENABLED != "true"; callers should skip starting the HTTP server.
func (c *Config) ApiAddr() (string, error) {
	if c.ApiEnabled == "true" {
		if c.ApiPort == "" {
			return "", fmt.Errorf("PRIZE_API_PORT is required when PRIZE_API_ENABLED=true")
		}
		return ":" + c.ApiPort, nil
	}
	return "", fmt.Errorf("HTTP API is disabled (PRIZE_API_ENABLED != true)")
}

// BusAddr returns the connection address for the configured bus provider.
func (c *Config) BusAddr() string {
	if c.BusProvider == "nats" {
		return c.NatsAddr()
	}
	return c.GRPCAddr()
}

func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var intVal int
	if _, err := fmt.Sscanf(val, "%d", &intVal); err != nil {
		return defaultVal
	}
	return intVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvDecimal(key, defaultVal string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, defaultVal))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
