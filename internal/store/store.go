// Package store holds the process-wide handle to the running PocketBase
// app instance, so that packages outside internal/app (query helpers,
// background trackers, cron jobs) can reach the database without each
// having to thread an *core.App argument through every call.
package store

import (
	"sync"

	"github.com/pocketbase/pocketbase/core"
)

var (
	mu  sync.RWMutex
	app core.App
)

// InitApp registers the running app instance. Called once during startup.
func InitApp(a core.App) {
	mu.Lock()
	defer mu.Unlock()
	app = a
}

// GetDao returns the process-wide app instance used for record access.
// Returns nil if InitApp has not been called yet.
func GetDao() core.App {
	mu.RLock()
	defer mu.RUnlock()
	return app
}
