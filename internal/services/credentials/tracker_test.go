package credentials

import (
	"context"
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		BatchSize:           1000,
		FlushInterval:       time.Hour,
		BufferSize:          100,
		WorkerPoolSize:      2,
		RetryAttempts:       3,
		RetryBackoff:        time.Millisecond,
		TokenParsedServices: []string{"openai", "claude"},
	}
}

func TestTracker_TrackUsage_IncrementsBufferedCount(t *testing.T) {
	tr := NewTracker(testConfig())

	event := &UsageEvent{
		CredentialType: "token",
		CredentialID:   "cred1",
		UserID:         "user1",
		Service:        "github",
		Timestamp:      time.Now(),
	}

	if err := tr.TrackUsage(context.Background(), event); err != nil {
		t.Fatalf("TrackUsage: %v", err)
	}

	stats := tr.GetStats()
	if stats.EventsBuffered != 1 {
		t.Errorf("EventsBuffered = %d, want 1", stats.EventsBuffered)
	}
}

func TestTracker_GetStats_InitiallyZero(t *testing.T) {
	tr := NewTracker(testConfig())
	stats := tr.GetStats()

	if stats.EventsBuffered != 0 || stats.EventsFlushed != 0 || stats.Errors != 0 || stats.BufferOverflows != 0 {
		t.Errorf("expected zero-valued stats on a fresh tracker, got %+v", stats)
	}
}

func TestTracker_Shutdown_NoEventsBuffered(t *testing.T) {
	tr := NewTracker(testConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := tr.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown on an idle tracker should not error: %v", err)
	}
}

func TestNewTracker_NilConfigUsesDefault(t *testing.T) {
	tr := NewTracker(nil)
	if tr.config == nil {
		t.Fatal("expected NewTracker(nil) to fall back to DefaultConfig")
	}
	if tr.config.BatchSize <= 0 {
		t.Errorf("expected a positive default batch size, got %d", tr.config.BatchSize)
	}
}
