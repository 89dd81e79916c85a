package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"expensetracker/internal/log"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SETTINGS_BACKEND", "memory")

	cfg, logger, err := LoadConfig(log.ComponentApp)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if logger == nil || logger.Component() != log.ComponentApp {
		t.Errorf("logger should carry the app component")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, logger, err := LoadConfig(log.ComponentNotify)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid port") {
		t.Errorf("error = %v", err)
	}
	if logger == nil || logger.Component() != log.ComponentNotify {
		t.Errorf("logger should be returned on failure")
	}
}

func TestSignalContextCancel(t *testing.T) {
	ctx, cancel := SignalContext()
	cancel()

	select {
	case <-ctx.Done():
		if ctx.Err() != context.Canceled {
			t.Errorf("Err() = %v, want context.Canceled", ctx.Err())
		}
	case <-time.After(time.Second):
		t.Fatal("context not cancelled")
	}
}
