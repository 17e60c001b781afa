// Package security computes derived fields on security_keys records.
package security

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"github.com/shashank-sharma/backend/internal/logger"
	"github.com/shashank-sharma/backend/internal/services/credentials"
)

// RegisterFingerprintHooks derives the fingerprint field from a submitted
// public_key on create, so clients don't have to compute SHA256 digests
// themselves and can't register a key under a fingerprint that doesn't
// match what they actually hold.
func RegisterFingerprintHooks(pb *pocketbase.PocketBase) {
	pb.OnRecordCreate("security_keys").BindFunc(func(e *core.RecordEvent) error {
		pubKey := e.Record.GetString("public_key")
		if pubKey == "" {
			return e.Next()
		}

		fingerprint, err := credentials.FingerprintPublicKey([]byte(pubKey))
		if err != nil {
			logger.LogError("Failed to fingerprint security key: %v", err)
			return err
		}
		e.Record.Set("fingerprint", fingerprint)

		return e.Next()
	})
}
