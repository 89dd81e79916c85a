// Package cli provides common CLI initialization utilities shared by
// cmd/expense-tracker and cmd/expense-notifier.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expensetracker/internal/config"
	"expensetracker/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig reads the environment into a validated configuration and builds
// the process logger for component. The logger is returned even when
// validation fails so the caller can report the problem.
func LoadConfig(component string) (*config.Config, *log.Logger, error) {
	cfg := config.Load()

	lc := cfg.LoggerConfig()
	lc.Component = component
	logger := log.New(lc)

	if err := cfg.Validate(); err != nil {
		return cfg, logger, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger, nil
}

// MustSetup loads the .env file and the configuration, installs the logger
// as the default one and exits the process on invalid configuration.
func MustSetup(component string) (*config.Config, *log.Logger) {
	LoadEnvFile()

	cfg, logger, err := LoadConfig(component)
	log.SetDefault(logger)
	if err != nil {
		Fatal(logger, "Configuration validation failed", err, log.ErrorTypeConfiguration)
	}
	return cfg, logger
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Fatal logs err and exits with status 1.
func Fatal(logger *log.Logger, msg string, err error, errorType string) {
	logger.Error(msg,
		log.NewFields().WithError(err).WithErrorType(errorType).ToSlice()...)
	os.Exit(1)
}
