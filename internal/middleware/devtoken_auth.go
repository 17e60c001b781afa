package middleware

import (
	"context"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shashank-sharma/backend/internal/logger"
	"github.com/shashank-sharma/backend/internal/query"
	"github.com/shashank-sharma/backend/internal/services/credentials"
	"github.com/shashank-sharma/backend/internal/util"
)

// DevTokenAuthMiddleware validates dev tokens from the AuthSyncToken
// header and reports one usage event per authenticated request to
// tracker. Failed-auth attempts never reach the tracker: there is no
// credential to attribute them to.
func DevTokenAuthMiddleware(tracker credentials.UsageTracker) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		devTokenValue := e.Request.Header.Get("AuthSyncToken")
		if devTokenValue == "" {
			return util.RespondError(e, util.ErrUnauthorized)
		}

		devToken, err := query.ValidateDevToken(devTokenValue)
		if err != nil {
			logger.LogError("Dev token validation failed", "error", err)
			return util.RespondError(e, util.ErrUnauthorized)
		}

		e.Set("devTokenUserId", devToken.User)
		e.Set("devTokenId", devToken.Id)

		startTime := time.Now()
		handlerErr := e.Next()
		responseTime := time.Since(startTime)

		statusCode := 200
		if handlerErr != nil {
			statusCode = 0
		}

		event := &credentials.UsageEvent{
			CredentialType: "dev_token",
			CredentialID:   devToken.Id,
			UserID:         devToken.User,
			Service:        "pocketbase",
			Endpoint:       e.Request.URL.Path,
			Method:         e.Request.Method,
			StatusCode:     statusCode,
			ResponseTimeMs: responseTime.Milliseconds(),
			Timestamp:      startTime,
		}
		if handlerErr != nil {
			event.ErrorType = "request_error"
			event.ErrorMessage = handlerErr.Error()
		}

		go func() {
			_ = credentials.TrackUsageDirect(context.Background(), tracker, event)
		}()

		return handlerErr
	}
}
