package credentials

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNewTrackedClient_NilTrackerReturnsBaseUnwrapped(t *testing.T) {
	base := &http.Client{Timeout: 5 * time.Second}
	got := NewTrackedClient(nil, base)

	if got != base {
		t.Error("expected NewTrackedClient with a nil tracker to return the base client unchanged")
	}
}

func TestNewTrackedClient_WrapsTransport(t *testing.T) {
	tracker := newRecordingTracker()
	base := &http.Client{Timeout: 5 * time.Second}

	wrapped := NewTrackedClient(tracker, base)

	if wrapped == base {
		t.Fatal("expected a new client wrapping the transport")
	}
	if _, ok := wrapped.Transport.(*TrackedRoundTripper); !ok {
		t.Errorf("expected Transport to be *TrackedRoundTripper, got %T", wrapped.Transport)
	}
	if wrapped.Timeout != base.Timeout {
		t.Errorf("Timeout = %v, want %v (preserved from base)", wrapped.Timeout, base.Timeout)
	}
}

func TestWrapOAuthClient_DelegatesToNewTrackedClient(t *testing.T) {
	tracker := newRecordingTracker()
	base := &http.Client{}

	wrapped := WrapOAuthClient(tracker, base)
	if _, ok := wrapped.Transport.(*TrackedRoundTripper); !ok {
		t.Errorf("expected Transport to be *TrackedRoundTripper, got %T", wrapped.Transport)
	}
}

func TestTrackSSHConnection_Success(t *testing.T) {
	tracker := newRecordingTracker()

	if err := TrackSSHConnection(context.Background(), tracker, "user1", "key1", true); err != nil {
		t.Fatalf("TrackSSHConnection: %v", err)
	}

	select {
	case ev := <-tracker.events:
		if ev.CredentialType != "security_key" || ev.CredentialID != "key1" {
			t.Errorf("got %+v, want security_key/key1", ev)
		}
		if ev.StatusCode != 200 {
			t.Errorf("StatusCode = %d, want 200 on success", ev.StatusCode)
		}
		if ev.ErrorType != "" {
			t.Errorf("ErrorType = %q, want empty on success", ev.ErrorType)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a tracked event")
	}
}

func TestTrackSSHConnection_Failure(t *testing.T) {
	tracker := newRecordingTracker()

	if err := TrackSSHConnection(context.Background(), tracker, "user1", "key1", false); err != nil {
		t.Fatalf("TrackSSHConnection: %v", err)
	}

	select {
	case ev := <-tracker.events:
		if ev.ErrorType != "request_error" {
			t.Errorf("ErrorType = %q, want request_error on failure", ev.ErrorType)
		}
		if ev.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0 on failure", ev.StatusCode)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a tracked event")
	}
}

func TestTrackUsageDirect_NilTracker(t *testing.T) {
	if err := TrackUsageDirect(context.Background(), nil, &UsageEvent{}); err != nil {
		t.Errorf("expected nil error with a nil tracker, got %v", err)
	}
}
