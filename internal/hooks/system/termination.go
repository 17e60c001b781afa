package system

import (
	"context"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shashank-sharma/backend/internal/cronjobs"
	"github.com/shashank-sharma/backend/internal/logger"
	"github.com/shashank-sharma/backend/internal/services/credentials"
)

// RegisterTerminationHooks wires graceful shutdown: stop the cron scheduler,
// flush any buffered credential usage events, then close the log file.
func RegisterTerminationHooks(pb *pocketbase.PocketBase, tracker *credentials.Tracker, cron *cronjobs.Runner) {
	pb.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if cron != nil {
			logger.LogInfo("Stopping cron scheduler...")
			cron.Stop()
		}
		return e.Next()
	})

	pb.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		if tracker != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			logger.LogInfo("Shutting down credential usage tracker...")
			if err := tracker.Shutdown(ctx); err != nil {
				logger.LogError("Error shutting down credential usage tracker: %v", err)
			}
		}
		return e.Next()
	})

	pb.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		logger.LogInfo("Application shutting down...")
		logger.Cleanup()
		return nil
	})
}
