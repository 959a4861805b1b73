package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Oracle modes
const (
	OracleMongo = "mongo"
	OracleAPI   = "api"
)

// Ledger backends
const (
	LedgerMemory = "memory"
	LedgerRedis  = "redis"
)

// DefaultAlgorithm is the algorithm passed to report generation when none is configured.
const DefaultAlgorithm = "aiverify.algorithms.partial_dependence_plot:partial_dependence_plot"

// Config holds all harness configuration
type Config struct {
	API    APIConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Suite  SuiteConfig
	Ledger LedgerConfig
	OTEL   OTELConfig
	Log    LogConfig
}

// APIConfig holds the GraphQL endpoint configuration
type APIConfig struct {
	Endpoint string        `validate:"required,url"`
	Timeout  time.Duration `validate:"gt=0"`
}

// MongoConfig holds the datastore connection used by the oracle
type MongoConfig struct {
	URI               string `validate:"required"`
	Database          string `validate:"required"`
	ProjectCollection string `validate:"required"`
	ReportCollection  string `validate:"required"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SuiteConfig holds scenario tuning knobs
type SuiteConfig struct {
	RunID            string `validate:"required"`
	Oracle           string `validate:"oneof=mongo api"`
	Algorithm        string `validate:"required"`
	ReportTimeout    time.Duration
	ReportPoll       time.Duration
	ReadinessTimeout time.Duration
	Cleanup          bool
}

// LedgerConfig selects where created entities are recorded
type LedgerConfig struct {
	Backend string `validate:"oneof=memory redis"`
	Prefix  string `validate:"required"`
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// LogConfig holds logger configuration
type LogConfig struct {
	Env   string
	Level string
}

var validate = validator.New()

// Load reads optional .env files and then builds the configuration from the environment.
// Variables already present in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			Endpoint: getEnv("E2E_GRAPHQL_ENDPOINT", "http://localhost:4000/graphql"),
			Timeout:  getEnvAsMillis("E2E_HTTP_TIMEOUT_MS", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:               getEnv("E2E_MONGO_URI", "mongodb://127.0.0.1:27017/?directConnection=true&serverSelectionTimeoutMS=2000"),
			Database:          getEnv("E2E_MONGO_DATABASE", "aiverify"),
			ProjectCollection: getEnv("E2E_MONGO_PROJECT_COLLECTION", "projecttemplatemodels"),
			ReportCollection:  getEnv("E2E_MONGO_REPORT_COLLECTION", "reportmodels"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Suite: SuiteConfig{
			RunID:            getEnv("E2E_RUN_ID", uuid.NewString()),
			Oracle:           strings.ToLower(getEnv("E2E_ORACLE", OracleMongo)),
			Algorithm:        getEnv("E2E_ALGORITHM", DefaultAlgorithm),
			ReportTimeout:    getEnvAsMillis("E2E_REPORT_TIMEOUT_MS", 2*time.Minute),
			ReportPoll:       getEnvAsMillis("E2E_REPORT_POLL_MS", time.Second),
			ReadinessTimeout: getEnvAsMillis("E2E_READINESS_TIMEOUT_MS", time.Minute),
			Cleanup:          getEnvAsBool("E2E_CLEANUP", false),
		},
		Ledger: LedgerConfig{
			Backend: strings.ToLower(getEnv("E2E_LEDGER", LedgerMemory)),
			Prefix:  getEnv("E2E_LEDGER_PREFIX", "e2e"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "projectapi-e2e"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Log: LogConfig{
			Env:   getEnv("ENV", "production"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsMillis(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}
