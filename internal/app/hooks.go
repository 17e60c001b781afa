package app

import (
	"github.com/shashank-sharma/backend/internal/hooks/security"
	"github.com/shashank-sharma/backend/internal/hooks/system"
	"github.com/shashank-sharma/backend/internal/hooks/token"
	"github.com/shashank-sharma/backend/internal/logger"
)

// registerHooks sets up all application event handlers
func (app *Application) registerHooks() {
	encryptionKey := app.Pb.Store().Get("ENCRYPTION_KEY").(string)

	token.RegisterEncryptionHooks(app.Pb, encryptionKey)
	security.RegisterFingerprintHooks(app.Pb)
	system.RegisterTerminationHooks(app.Pb, app.Tracker, app.CronRunner)

	logger.LogInfo("Hooks registered")
}
