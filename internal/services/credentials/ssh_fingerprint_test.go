package credentials

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/ssh"
)

func generateAuthorizedKeyLine(t *testing.T) []byte {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519.GenerateKey: %v", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("ssh.NewPublicKey: %v", err)
	}

	return ssh.MarshalAuthorizedKey(sshPub)
}

func TestFingerprintPublicKey(t *testing.T) {
	line := generateAuthorizedKeyLine(t)

	fingerprint, err := FingerprintPublicKey(line)
	if err != nil {
		t.Fatalf("FingerprintPublicKey: %v", err)
	}
	if fingerprint == "" {
		t.Fatal("expected a non-empty fingerprint")
	}

	again, err := FingerprintPublicKey(line)
	if err != nil {
		t.Fatalf("FingerprintPublicKey (second call): %v", err)
	}
	if fingerprint != again {
		t.Errorf("fingerprinting the same key twice gave different results: %q vs %q", fingerprint, again)
	}
}

func TestFingerprintPublicKey_DifferentKeysDiffer(t *testing.T) {
	a, err := FingerprintPublicKey(generateAuthorizedKeyLine(t))
	if err != nil {
		t.Fatalf("FingerprintPublicKey: %v", err)
	}
	b, err := FingerprintPublicKey(generateAuthorizedKeyLine(t))
	if err != nil {
		t.Fatalf("FingerprintPublicKey: %v", err)
	}

	if a == b {
		t.Error("expected two distinct generated keys to produce different fingerprints")
	}
}

func TestFingerprintPublicKey_InvalidInput(t *testing.T) {
	if _, err := FingerprintPublicKey([]byte("not a public key")); err == nil {
		t.Error("expected an error for malformed input")
	}
}
