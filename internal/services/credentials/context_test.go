package credentials

import (
	"context"
	"testing"
)

func TestWithCredentialContext_RoundTrip(t *testing.T) {
	ctx := WithCredentialContext(context.Background(), "token", "tok123", "github")

	info, ok := GetCredentialFromContext(ctx)
	if !ok {
		t.Fatal("expected credential info to be present")
	}
	if info.Type != "token" || info.ID != "tok123" || info.Service != "github" {
		t.Errorf("got %+v, want {token tok123 github}", info)
	}
}

func TestGetCredentialFromContext_Empty(t *testing.T) {
	if _, ok := GetCredentialFromContext(context.Background()); ok {
		t.Error("expected no credential info on a bare context")
	}
}

func TestGetCredentialFromContext_BlankCredentialID(t *testing.T) {
	ctx := WithCredentialContext(context.Background(), "token", "", "github")
	if _, ok := GetCredentialFromContext(ctx); ok {
		t.Error("expected ok=false when credential ID is blank")
	}
}
