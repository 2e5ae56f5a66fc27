package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DeletePolicyOrphan   = "orphan"
	DeletePolicyRestrict = "restrict"
	DeletePolicyCascade  = "cascade"
)

type Config struct {
	Addr               string
	Environment        string
	DatabaseURL        string
	DBMaxConns         int
	DBConnLifetime     time.Duration
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
	DeletePolicy       string
	ShutdownTimeout    time.Duration
	LogLevel           string
	LogFormat          string
	LogFile            string
	LogMaxSizeMB       int
	LogMaxBackups      int
	LogMaxAgeDays      int
}

// Load reads the environment, after merging in the optional dotenv file named
// by ENV_FILE. Variables already present in the environment win.
func Load() Config {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}

	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", "sqlite://database.db"),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 10),
		DBConnLifetime:     getEnvDuration("DB_CONN_LIFETIME", time.Hour),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", false),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 0),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		DeletePolicy:       strings.ToLower(getEnv("EMPLOYEE_DELETE_POLICY", DeletePolicyOrphan)),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		LogFile:            getEnv("LOG_FILE", ""),
		LogMaxSizeMB:       getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups:      getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:      getEnvInt("LOG_MAX_AGE_DAYS", 28),
	}
}

func loadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	switch c.DeletePolicy {
	case DeletePolicyOrphan, DeletePolicyRestrict, DeletePolicyCascade:
	default:
		return fmt.Errorf("EMPLOYEE_DELETE_POLICY must be one of orphan, restrict, cascade")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}
	return nil
}
