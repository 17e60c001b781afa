package credentials

import (
	"context"
	"net/http"
	"testing"
	"time"
)

type fakeRoundTripper struct {
	resp *http.Response
	err  error
}

func (f *fakeRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f.resp, f.err
}

type recordingTracker struct {
	events chan *UsageEvent
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{events: make(chan *UsageEvent, 10)}
}

func (r *recordingTracker) TrackUsage(ctx context.Context, event *UsageEvent) error {
	r.events <- event
	return nil
}
func (r *recordingTracker) Flush(ctx context.Context) error    { return nil }
func (r *recordingTracker) Shutdown(ctx context.Context) error { return nil }
func (r *recordingTracker) GetStats() TrackerStats             { return TrackerStats{} }

func TestTrackedRoundTripper_NoCredentialContext_PassesThrough(t *testing.T) {
	tracker := newRecordingTracker()
	base := &fakeRoundTripper{resp: &http.Response{StatusCode: 200, Body: http.NoBody}}
	rt := NewTrackedRoundTripper(base, tracker)

	req, _ := http.NewRequest(http.MethodGet, "http://api.github.com/repos", nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}

	select {
	case ev := <-tracker.events:
		t.Fatalf("expected no tracked event without credential context, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTrackedRoundTripper_WithCredentialContext_TracksEvent(t *testing.T) {
	tracker := newRecordingTracker()
	base := &fakeRoundTripper{resp: &http.Response{StatusCode: 200, Body: http.NoBody, Header: http.Header{}}}
	rt := NewTrackedRoundTripper(base, tracker)

	req, _ := http.NewRequest(http.MethodGet, "http://api.github.com/repos", nil)
	ctx := WithCredentialContext(req.Context(), "token", "cred1", "github")
	req = req.WithContext(ctx)

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}

	select {
	case ev := <-tracker.events:
		if ev.CredentialID != "cred1" || ev.CredentialType != "token" {
			t.Errorf("got event %+v, want credential cred1/token", ev)
		}
		if ev.StatusCode != 200 {
			t.Errorf("StatusCode = %d, want 200", ev.StatusCode)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a tracked event within 1s")
	}
}

func TestTrackedRoundTripper_ErrorResponse_SetsErrorType(t *testing.T) {
	tracker := newRecordingTracker()
	base := &fakeRoundTripper{resp: &http.Response{StatusCode: 500, Body: http.NoBody, Header: http.Header{}}}
	rt := NewTrackedRoundTripper(base, tracker)

	req, _ := http.NewRequest(http.MethodGet, "http://api.github.com/repos", nil)
	ctx := WithCredentialContext(req.Context(), "token", "cred1", "github")
	req = req.WithContext(ctx)

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}

	select {
	case ev := <-tracker.events:
		if ev.ErrorType != "http_error" {
			t.Errorf("ErrorType = %q, want http_error", ev.ErrorType)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a tracked event within 1s")
	}
}

func TestNewTrackedRoundTripper_NilBaseDefaultsToDefaultTransport(t *testing.T) {
	rt := NewTrackedRoundTripper(nil, newRecordingTracker())
	if rt.base != http.DefaultTransport {
		t.Error("expected nil base to default to http.DefaultTransport")
	}
}
