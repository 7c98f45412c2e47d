package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ssorr707/discord-system-bot2/database"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverBadger   = "badger"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string // Registers commands to this guild only; empty registers globally

	// Storage configuration
	StorageDriver string // "postgres" or "badger"
	DatabaseURL   string
	DatabaseName  string
	BadgerPath    string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated); empty disables event publishing

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelServiceName          string
	OTelExportIntervalMillis int

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		StorageDriver: strings.ToLower(getEnvWithDefault("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DatabaseName:  os.Getenv("DATABASE_NAME"),
		BadgerPath:    getEnvWithDefault("BADGER_PATH", "./data"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		OTelEnabled:              getEnvBool("OTEL_ENABLED", false),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "guild-settings-bot"),
		OTelExportIntervalMillis: 60000,

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.OTelExportIntervalMillis = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverBadger:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected postgres or badger)", c.StorageDriver)
	}

	if c.Environment == "test" {
		return nil
	}

	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.StorageDriver == StorageDriverPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER is postgres")
	}
	if c.StorageDriver == StorageDriverBadger && strings.TrimSpace(c.BadgerPath) == "" {
		return fmt.Errorf("BADGER_PATH cannot be empty when STORAGE_DRIVER is badger")
	}
	return nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:              "test",
		StorageDriver:            StorageDriverBadger,
		OTelExporterType:         "none",
		OTelServiceName:          "guild-settings-bot-test",
		OTelExportIntervalMillis: 60000,
		LogLevel:                 "debug",
	}
}
