package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shashank-sharma/backend/internal/logger"
)

// RequestIDMiddleware stamps every request with a unique ID, echoed back on
// the X-Request-Id response header, so a single request can be traced
// through the log file even once several are in flight concurrently.
func RequestIDMiddleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		e.Set("requestId", id)
		e.Response.Header().Set("X-Request-Id", id)
		return e.Next()
	}
}

// PanicRecoveryMiddleware recovers from panics and returns a proper error response
func PanicRecoveryMiddleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		defer func() {
			if r := recover(); r != nil {
				// Log the panic with stack trace
				errMsg := fmt.Sprintf("Panic recovered: %v", r)
				logger.LogError("Panic in request handler",
					"error", errMsg,
					"path", e.Request.URL.Path,
					"method", e.Request.Method,
					"stack", string(debug.Stack()))

				// Return error response
				e.JSON(http.StatusInternalServerError, map[string]interface{}{
					"error": "An internal server error occurred",
					"code":  "INTERNAL_ERROR",
				})
			}
		}()

		return e.Next()
	}
}

// RegisterGlobalMiddleware registers global middleware for all routes
func RegisterGlobalMiddleware(e *core.RequestEvent) error {
	logger.Debug.Println("Registering global middleware")
	return e.Next()
}
