package credentials

import (
	"testing"
	"time"
)

func TestDefaultConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", cfg.BatchSize)
	}
	if cfg.FlushInterval != 5*time.Second {
		t.Errorf("FlushInterval = %v, want 5s", cfg.FlushInterval)
	}
	if cfg.BufferSize != 1000 {
		t.Errorf("BufferSize = %d, want 1000", cfg.BufferSize)
	}
	if cfg.WorkerPoolSize != 10 {
		t.Errorf("WorkerPoolSize = %d, want 10", cfg.WorkerPoolSize)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.RetryAttempts)
	}
	if len(cfg.TokenParsedServices) != 2 {
		t.Errorf("TokenParsedServices = %v, want 2 entries", cfg.TokenParsedServices)
	}
}

func TestGetEnvStringList_Overrides(t *testing.T) {
	t.Setenv("CREDENTIAL_TRACKING_TOKEN_PARSED_SERVICES", "openai, claude ,gitlab")

	services := getEnvStringList("CREDENTIAL_TRACKING_TOKEN_PARSED_SERVICES", []string{"default"})
	want := []string{"openai", "claude", "gitlab"}

	if len(services) != len(want) {
		t.Fatalf("got %v, want %v", services, want)
	}
	for i := range want {
		if services[i] != want[i] {
			t.Errorf("services[%d] = %q, want %q", i, services[i], want[i])
		}
	}
}

func TestGetEnvInt_InvalidFallsBackToDefault(t *testing.T) {
	t.Setenv("CREDENTIAL_TRACKING_BATCH_SIZE", "not-a-number")

	if got := getEnvInt("CREDENTIAL_TRACKING_BATCH_SIZE", 50); got != 50 {
		t.Errorf("getEnvInt with invalid value = %d, want fallback 50", got)
	}
}

func TestGetEnvDuration_InvalidFallsBackToDefault(t *testing.T) {
	t.Setenv("CREDENTIAL_TRACKING_FLUSH_INTERVAL", "not-a-duration")

	if got := getEnvDuration("CREDENTIAL_TRACKING_FLUSH_INTERVAL", 5*time.Second); got != 5*time.Second {
		t.Errorf("getEnvDuration with invalid value = %v, want fallback 5s", got)
	}
}
