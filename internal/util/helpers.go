package util

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/security"
	"github.com/shashank-sharma/backend/internal/logger"
)

func GenerateRandomId() string {
	return security.RandomStringWithAlphabet(core.DefaultIdLength, core.DefaultIdAlphabet)
}

// GetUserId extracts user ID from JWT token without signature verification.
// WARNING: This function does not verify token signatures. It should only be used
// when the token has already been validated by PocketBase's RequireAuth() middleware
// or when used in contexts where token authenticity is guaranteed by other means.
// For untrusted input, use proper JWT verification libraries.
func GetUserId(tokenString string) (string, error) {
	// Split the token into header, payload, and signature
	parts := strings.Split(tokenString, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid token format: expected at least 2 parts, got %d", len(parts))
	}

	// Decode the payload (no signature verification)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		logger.LogError("Error decoding payload:", err)
		return "", fmt.Errorf("failed to decode token payload: %w", err)
	}

	var claims map[string]interface{}
	err = json.Unmarshal(payload, &claims)
	if err != nil {
		logger.LogError("Error unmarshalling payload:", err)
		return "", fmt.Errorf("failed to unmarshal token claims: %w", err)
	}

	// Safe type assertion with error handling
	id, ok := claims["id"]
	if !ok {
		return "", fmt.Errorf("token claims missing 'id' field")
	}

	idStr, ok := id.(string)
	if !ok {
		return "", fmt.Errorf("token 'id' field is not a string, got %T", id)
	}

	if idStr == "" {
		return "", fmt.Errorf("token 'id' field is empty")
	}

	return idStr, nil
}
