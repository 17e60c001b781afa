package credentials

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/shashank-sharma/backend/internal/models"
)

// TokenSourceFromModel adapts a stored Token record into an oauth2.TokenSource,
// so a provider's oauth2.Config can refresh it transparently instead of every
// call site reading AccessToken/RefreshToken off the record by hand.
func TokenSourceFromModel(cfg *oauth2.Config, tok *models.Token) oauth2.TokenSource {
	base := &oauth2.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry.Time(),
	}
	return cfg.TokenSource(context.Background(), base)
}

// TrackedOAuthClient builds an *http.Client from a stored Token that both
// auto-refreshes via ts and reports every round-trip to tracker. Use this in
// place of oauth2.NewClient wherever an outbound call is charged against a
// credential's usage quota.
func TrackedOAuthClient(ctx context.Context, tracker UsageTracker, cfg *oauth2.Config, tok *models.Token) *http.Client {
	ts := TokenSourceFromModel(cfg, tok)
	return WrapOAuthClient(tracker, oauth2.NewClient(ctx, ts))
}

// RefreshedToken runs the oauth2 refresh flow eagerly and reports the new
// expiry, so callers persisting the Token record know when to write back.
func RefreshedToken(cfg *oauth2.Config, tok *models.Token) (*oauth2.Token, error) {
	ts := TokenSourceFromModel(cfg, tok)
	return ts.Token()
}
