// internal/pkg/config/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingRequiredConfig marks a required setting that is unset or still
// carries a placeholder value.
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Config holds all application configuration
type Config struct {
	// Application
	App AppConfig

	// Database
	Database DatabaseConfig

	// Scanner input
	Scanner ScannerConfig

	// Product lookup
	Lookup LookupConfig

	// Label printer
	Printer PrinterConfig

	// Redis
	Redis RedisConfig

	// Asynq
	Asynq AsynqConfig

	// AWS
	AWS AWSConfig

	// Export
	Export ExportConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL                string `required:"true"`
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	EnableQueryLogging bool
	AutoMigrate        bool
	SecretsProvider    string // env, aws
}

// ScannerConfig holds scan input configuration
type ScannerConfig struct {
	Device      string
	Source      string // evdev, lines
	IdleTimeout time.Duration
	Grab        bool
	QueueSize   int
}

// LookupConfig holds product lookup configuration
type LookupConfig struct {
	Enabled           bool
	BaseURL           string
	Timeout           time.Duration
	UserAgent         string
	RequestsPerMinute int
	IgnoredCodes      []string
	CacheTTL          time.Duration
}

// PrinterConfig holds label printer configuration
type PrinterConfig struct {
	BaseURL   string
	Transport string
	Address   string
	Mode      string // direct, queue, off
	Density   int
	LabelType int
	Threshold int
	Timeout   time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	TTL          time.Duration
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	Concurrency         int
	Queues              map[string]int // queue name -> priority
	StrictPriority      bool
	RetryMax            int
	ShutdownTimeout     time.Duration
	HealthCheckInterval time.Duration
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // For MinIO in development
	UsePathStyle    bool   // For MinIO compatibility
	LabelPrefix     string
	SecretName      string
}

// ExportConfig holds stock report configuration
type ExportConfig struct {
	OutputDir string
	Prefix    string
	// Retention is how long timestamped reports are kept, zero keeps them
	Retention time.Duration
}

// Load loads configuration from environment variables and an optional
// stockscan.yaml file.
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	// Initialize viper
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetTypeByDefaultValue(true)
	viper.SetConfigName("stockscan")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/stockscan")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		logger.Info("config file loaded", slog.String("file", viper.ConfigFileUsed()))
	}

	// Set defaults
	setDefaults()

	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "stockscan"),
			Environment: env,
			Version:     getEnv("APP_VERSION", "dev"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
			Debug:       getBoolEnv("APP_DEBUG", env == "development"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     int32(getIntEnv("DB_MAX_CONNECTIONS", 8)),
			MinConnections:     int32(getIntEnv("DB_MIN_CONNECTIONS", 1)),
			MaxConnLifetime:    getDurationEnv("DB_CONNECTION_LIFETIME", time.Hour),
			MaxConnIdleTime:    getDurationEnv("DB_IDLE_TIME", 30*time.Minute),
			HealthCheckPeriod:  getDurationEnv("DB_HEALTH_CHECK_PERIOD", time.Minute),
			ConnectTimeout:     getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
			EnableQueryLogging: getBoolEnv("DB_QUERY_LOGGING", false),
			AutoMigrate:        getBoolEnv("DB_AUTO_MIGRATE", true),
			SecretsProvider:    getEnv("SECRETS_PROVIDER", "env"),
		},
		Scanner: ScannerConfig{
			Device:      getEnv("SCANNER_DEVICE", ""),
			Source:      getEnv("SCANNER_SOURCE", "evdev"),
			IdleTimeout: getDurationEnv("SCANNER_IDLE_TIMEOUT", 120*time.Second),
			Grab:        getBoolEnv("SCANNER_GRAB", true),
			QueueSize:   getIntEnv("SCANNER_QUEUE_SIZE", 64),
		},
		Lookup: LookupConfig{
			Enabled:           getBoolEnv("LOOKUP_ENABLED", true),
			BaseURL:           getEnv("LOOKUP_BASE_URL", "https://world.openfoodfacts.org"),
			Timeout:           getDurationEnv("LOOKUP_TIMEOUT", 10*time.Second),
			UserAgent:         getEnv("LOOKUP_USER_AGENT", "stockscan/dev"),
			RequestsPerMinute: getIntEnv("LOOKUP_REQUESTS_PER_MINUTE", 60),
			IgnoredCodes:      getSliceEnv("LOOKUP_IGNORED_CODES", []string{"4061463732958"}),
			CacheTTL:          getDurationEnv("LOOKUP_CACHE_TTL", 7*24*time.Hour),
		},
		Printer: PrinterConfig{
			BaseURL:   getEnv("PRINTER_BASE_URL", "http://localhost:58000"),
			Transport: getEnv("PRINTER_TRANSPORT", "serial"),
			Address:   getEnv("PRINTER_ADDRESS", "/dev/ttyACM0"),
			Mode:      getEnv("PRINTER_MODE", "direct"),
			Density:   getIntEnv("PRINTER_DENSITY", 3),
			LabelType: getIntEnv("PRINTER_LABEL_TYPE", 1),
			Threshold: getIntEnv("PRINTER_THRESHOLD", 128),
			Timeout:   getDurationEnv("PRINTER_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Enabled:      getBoolEnv("REDIS_ENABLED", true),
			Addr:         redisAddr,
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			MaxRetries:   getIntEnv("REDIS_MAX_RETRIES", 3),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 4),
			TTL:          getDurationEnv("REDIS_TTL", time.Hour),
		},
		Asynq: AsynqConfig{
			RedisAddr:           getEnv("ASYNQ_REDIS_ADDR", redisAddr),
			RedisPassword:       getEnv("REDIS_PASSWORD", ""),
			RedisDB:             getIntEnv("ASYNQ_REDIS_DB", 1),
			Concurrency:         getIntEnv("ASYNQ_CONCURRENCY", 2),
			Queues:              parseQueues(getEnv("ASYNQ_QUEUES", "labels:6,default:3,low:1")),
			StrictPriority:      getBoolEnv("ASYNQ_STRICT_PRIORITY", false),
			RetryMax:            getIntEnv("ASYNQ_RETRY_MAX", 5),
			ShutdownTimeout:     getDurationEnv("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthCheckInterval: getDurationEnv("ASYNQ_HEALTH_CHECK_INTERVAL", 30*time.Second),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "eu-central-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
			S3Endpoint:      getEnv("AWS_S3_ENDPOINT", ""),
			UsePathStyle:    getBoolEnv("AWS_S3_PATH_STYLE", env == "development"),
			LabelPrefix:     getEnv("AWS_S3_LABEL_PREFIX", "labels"),
			SecretName:      getEnv("AWS_SECRET_NAME", "stockscan/database"),
		},
		Export: ExportConfig{
			OutputDir: getEnv("EXPORT_DIR", "exports"),
			Prefix:    getEnv("EXPORT_PREFIX", "exports"),
			Retention: getDurationEnv("EXPORT_RETENTION", 30*24*time.Hour),
		},
	}

	if cfg.Database.SecretsProvider == "aws" {
		if err := cfg.resolveSecrets(logger); err != nil {
			return nil, err
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// resolveSecrets loads connection credentials from AWS Secrets Manager
func (c *Config) resolveSecrets(logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bundle, err := NewSecretBundle(ctx, c.AWS.Region, c.AWS.SecretName, logger)
	if err != nil {
		return fmt.Errorf("failed to create secrets client: %w", err)
	}
	if err := c.applySecrets(ctx, bundle); err != nil {
		return fmt.Errorf("failed to resolve secrets: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validators := []interface{ Validate(*Config) error }{&BasicValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// ArchiveEnabled reports whether rendered labels are uploaded to S3
func (c *Config) ArchiveEnabled() bool {
	return c.AWS.S3Bucket != ""
}

// Helper functions

func setDefaults() {
	viper.SetDefault("app.name", "stockscan")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// getEnv reads key from the environment, then the config file
func getEnv(key, defaultValue string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := getEnv(key, ""); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := getEnv(key, ""); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := getEnv(key, ""); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := getEnv(key, ""); value != "" {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return defaultValue
}

func parseQueues(queuesStr string) map[string]int {
	queues := make(map[string]int)
	pairs := strings.Split(queuesStr, ",")
	for _, pair := range pairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			name := strings.TrimSpace(parts[0])
			priority, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err == nil {
				queues[name] = priority
			}
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}
