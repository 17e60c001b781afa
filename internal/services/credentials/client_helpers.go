package credentials

import (
	"context"
	"net/http"
	"time"
)

// NewTrackedClient wraps baseClient's transport so round-trips made with a
// credential context attached (see WithCredentialContext) are reported to
// tracker. The tracker is injected rather than looked up from a package
// singleton; callers own one tracker per Application and pass it down.
func NewTrackedClient(tracker UsageTracker, baseClient *http.Client) *http.Client {
	if baseClient == nil {
		baseClient = &http.Client{}
	}
	if tracker == nil {
		return baseClient
	}

	baseTransport := baseClient.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}

	return &http.Client{
		Transport:     NewTrackedRoundTripper(baseTransport, tracker),
		CheckRedirect: baseClient.CheckRedirect,
		Jar:           baseClient.Jar,
		Timeout:       baseClient.Timeout,
	}
}

// WrapOAuthClient is NewTrackedClient under the name callers reach for when
// wrapping an oauth2.Config-issued client.
func WrapOAuthClient(tracker UsageTracker, oauthClient *http.Client) *http.Client {
	return NewTrackedClient(tracker, oauthClient)
}

// TrackUsageDirect submits an event for a non-HTTP credential use, such as
// an SSH connection, that never passes through the transport wrapper.
func TrackUsageDirect(ctx context.Context, tracker UsageTracker, event *UsageEvent) error {
	if tracker == nil {
		return nil
	}
	return tracker.TrackUsage(ctx, event)
}

// TrackSSHConnection records one SSH_CONNECT event for a security_key
// credential. security_keys are exercised outside HTTP entirely, so there
// is no request/response to intercept; callers invoke this directly at the
// point they establish (or fail to establish) the connection.
func TrackSSHConnection(ctx context.Context, tracker UsageTracker, userID, credentialID string, success bool) error {
	statusCode := 200
	var errType, errMsg string
	if !success {
		statusCode = 0
		errType = "request_error"
		errMsg = "ssh connection failed"
	}

	event := &UsageEvent{
		CredentialType: "security_key",
		CredentialID:   credentialID,
		UserID:         userID,
		Service:        "ssh",
		Method:         "SSH_CONNECT",
		StatusCode:     statusCode,
		ErrorType:      errType,
		ErrorMessage:   errMsg,
		Timestamp:      time.Now(),
	}

	return TrackUsageDirect(ctx, tracker, event)
}
