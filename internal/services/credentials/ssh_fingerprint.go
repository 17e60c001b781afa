package credentials

import (
	"fmt"

	"golang.org/x/crypto/ssh"
)

// FingerprintPublicKey parses an authorized_keys-format public key and
// returns its SHA256 fingerprint, the value stored on a security_keys
// record and matched against on every SSH_CONNECT event.
func FingerprintPublicKey(authorizedKeyLine []byte) (string, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey(authorizedKeyLine)
	if err != nil {
		return "", fmt.Errorf("parse public key: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}
