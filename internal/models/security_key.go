package models

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

var _ core.Model = (*SecurityKey)(nil)

// SecurityKey represents an SSH/security key credential. Unlike the other
// credential types it is exercised outside of HTTP (SSH_CONNECT events
// recorded directly via TrackSSHConnection), so it tracks connections
// rather than request/response counts.
type SecurityKey struct {
	BaseModel

	User             string         `db:"user" json:"user"`
	Name             string         `db:"name" json:"name"`
	Fingerprint      string         `db:"fingerprint" json:"fingerprint"`
	IsActive         bool           `db:"is_active" json:"is_active"`
	TotalRequests    int            `db:"total_requests" json:"total_requests"`
	TotalConnections int            `db:"total_connections" json:"total_connections"`
	TotalTokensUsed  int            `db:"total_tokens_used" json:"total_tokens_used"`
	SuccessRate      float64        `db:"success_rate" json:"success_rate"`
	LastUsedAt       types.DateTime `db:"last_used_at" json:"last_used_at"`
}

func (m *SecurityKey) TableName() string {
	return "security_keys"
}
