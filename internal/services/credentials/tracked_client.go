package credentials

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shashank-sharma/backend/internal/util"
)

// TrackedRoundTripper wraps an http.RoundTripper and emits exactly one
// UsageEvent per round-trip when the request carries a credential
// context. Requests without one pass through untouched.
type TrackedRoundTripper struct {
	base                http.RoundTripper
	tracker             UsageTracker
	tokenParsedServices map[string]struct{}
	userIDExtractor      func(*http.Request) (string, bool)
}

// NewTrackedRoundTripper builds a wrapper around base. tokenParsedServices
// is the set of service tags eligible for response-body token parsing;
// pass nil to use Config's default (openai, claude).
func NewTrackedRoundTripper(base http.RoundTripper, tracker UsageTracker, tokenParsedServices ...string) *TrackedRoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if len(tokenParsedServices) == 0 {
		tokenParsedServices = DefaultConfig().TokenParsedServices
	}

	set := make(map[string]struct{}, len(tokenParsedServices))
	for _, s := range tokenParsedServices {
		set[s] = struct{}{}
	}

	return &TrackedRoundTripper{
		base:                base,
		tracker:             tracker,
		tokenParsedServices: set,
		userIDExtractor:     extractUserIDFromRequest,
	}
}

func (rt *TrackedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	credInfo, hasCred := GetCredentialFromContext(req.Context())
	if !hasCred {
		return rt.base.RoundTrip(req)
	}

	userID, _ := rt.userIDExtractor(req)
	if userID == "" {
		userID, _ = util.GetUserIDFromContext(req.Context())
	}

	service := DetectService(req)
	if service == "" || service == "unknown" {
		if credInfo.Service != "" {
			service = credInfo.Service
		}
	}

	startTime := time.Now()

	var requestSize int64
	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err == nil {
			requestSize = int64(len(bodyBytes))
			req.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))
		}
	}

	resp, err := rt.base.RoundTrip(req)

	responseTime := time.Since(startTime)

	var statusCode int
	var responseSize int64
	var tokensUsed int64

	if resp != nil {
		statusCode = resp.StatusCode

		if resp.Body != nil {
			bodyBytes, readErr := io.ReadAll(resp.Body)
			if readErr == nil {
				responseSize = int64(len(bodyBytes))
				resp.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))

				if _, eligible := rt.tokenParsedServices[service]; eligible {
					parser := GetParserForService(service)
					if tokens, parseErr := parser.ParseTokensUsed(resp); parseErr == nil {
						tokensUsed = tokens
					}
				}
			}
		}
	} else {
		statusCode = 0
	}

	event := &UsageEvent{
		CredentialType: credInfo.Type,
		CredentialID:   credInfo.ID,
		UserID:         userID,
		Service:        service,
		Endpoint:       req.URL.Path,
		Method:         req.Method,
		StatusCode:     statusCode,
		ResponseTimeMs: responseTime.Milliseconds(),
		TokensUsed:     tokensUsed,
		RequestSize:    requestSize,
		ResponseSize:   responseSize,
		Timestamp:      startTime,
	}

	if err != nil {
		event.ErrorType = "request_error"
		event.ErrorMessage = err.Error()
	} else if resp != nil && resp.StatusCode >= 400 {
		event.ErrorType = "http_error"
		event.ErrorMessage = http.StatusText(resp.StatusCode)
	}

	go func() {
		_ = rt.tracker.TrackUsage(context.Background(), event)
	}()

	return resp, err
}

func extractUserIDFromRequest(req *http.Request) (string, bool) {
	return util.GetUserIDFromContext(req.Context())
}
