package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/log"
)

type Config struct {
	// HTTP Server
	Port               string
	RateLimitPerMinute int

	// Logging
	LogLevel  string
	LogFormat string

	// Settings persistence
	SettingsBackend string
	SQLiteDBPath    string

	// AMQP (empty URL disables event publishing)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
	AMQPQueue      string

	// Sample data source
	SeedSample  bool
	MockLatency time.Duration

	// Summary cache
	CacheSize          int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Settings defaults
	DefaultCurrency      string
	DefaultMonthlyBudget string
}

func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "8081"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		SettingsBackend: getEnv("SETTINGS_BACKEND", "memory"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/expenses.db"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "expense_tracker"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "expense.events"),
		AMQPQueue:      getEnv("AMQP_QUEUE", "expense_notifications"),

		SeedSample:  getEnvBool("SEED_SAMPLE", true),
		MockLatency: getEnvDuration("MOCK_LATENCY", 500*time.Millisecond),

		CacheSize:          getEnvInt("CACHE_SIZE", 64),
		CacheTTL:           getEnvDuration("CACHE_TTL", 5*time.Minute),
		CacheSweepInterval: getEnvDuration("CACHE_SWEEP_INTERVAL", 10*time.Minute),

		DefaultCurrency:      getEnv("DEFAULT_CURRENCY", "PHP"),
		DefaultMonthlyBudget: getEnv("DEFAULT_MONTHLY_BUDGET", "2000"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Validate settings backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.SettingsBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid settings backend '%s': must be one of %v", c.SettingsBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.SettingsBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if c.MockLatency < 0 {
		errors = append(errors, fmt.Sprintf("invalid mock latency %v: must not be negative", c.MockLatency))
	} else if c.MockLatency > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid mock latency %v: must be at most 1 minute", c.MockLatency))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	} else if c.CacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at most 10000", c.CacheSize))
	}
	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	}

	if _, err := c.DefaultSettings(); err != nil {
		errors = append(errors, fmt.Sprintf("invalid default settings: %v", err))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// DefaultSettings builds the settings used until the user saves their own.
func (c *Config) DefaultSettings() (core.Settings, error) {
	s := core.DefaultSettings()
	s.Currency = core.NormalizeCurrency(c.DefaultCurrency)

	budget, err := core.ParseMoney(c.DefaultMonthlyBudget)
	if err != nil {
		return core.Settings{}, fmt.Errorf("monthly budget %q: %w", c.DefaultMonthlyBudget, err)
	}
	s.MonthlyBudget = budget

	if err := s.Validate(); err != nil {
		return core.Settings{}, err
	}
	return s, nil
}

// LoggerConfig maps the logging settings onto a log.Config.
func (c *Config) LoggerConfig() log.Config {
	lc := log.DefaultConfig()
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		lc.Level = level
	}
	lc.Format = c.LogFormat
	return lc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
