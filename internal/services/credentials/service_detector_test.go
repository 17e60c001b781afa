package credentials

import (
	"net/http"
	"net/url"
	"testing"
)

func TestDetectService_KnownHosts(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"api.openai.com", "openai"},
		{"api.anthropic.com", "claude"},
		{"api.github.com", "github"},
		{"gitlab.com", "gitlab"},
		{"gmail.googleapis.com", "gmail"},
		{"calendar.googleapis.com", "google_calendar"},
	}

	for _, c := range cases {
		req := &http.Request{URL: &url.URL{Host: c.host}, Header: http.Header{}}
		if got := DetectService(req); got != c.want {
			t.Errorf("DetectService(%q) = %q, want %q", c.host, got, c.want)
		}
	}
}

func TestDetectService_HostWithPort(t *testing.T) {
	req := &http.Request{URL: &url.URL{Host: "api.github.com:443"}, Header: http.Header{}}
	if got := DetectService(req); got != "github" {
		t.Errorf("DetectService with port = %q, want github", got)
	}
}

func TestDetectService_FallbackSubstringMatch(t *testing.T) {
	req := &http.Request{URL: &url.URL{Host: "my-proxy.anthropic.internal"}, Header: http.Header{}}
	if got := DetectService(req); got != "claude" {
		t.Errorf("DetectService substring fallback = %q, want claude", got)
	}
}

func TestDetectService_HeaderFallback(t *testing.T) {
	req := &http.Request{
		URL:    &url.URL{Host: "unknown-proxy.example.com"},
		Header: http.Header{"Anthropic-Version": []string{"2023-06-01"}},
	}
	if got := DetectService(req); got != "claude" {
		t.Errorf("DetectService header fallback = %q, want claude", got)
	}
}

func TestDetectService_Unknown(t *testing.T) {
	req := &http.Request{URL: &url.URL{Host: "example.com"}, Header: http.Header{}}
	if got := DetectService(req); got != "unknown" {
		t.Errorf("DetectService(unknown host) = %q, want unknown", got)
	}
}
