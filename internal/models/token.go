package models

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

var _ core.Model = (*Token)(nil)

// Token represents a stored OAuth credential for an external service
// (calendar, mail, fold, ...). AccessToken and RefreshToken are encrypted
// at rest by the token encryption hooks.
type Token struct {
	BaseModel

	User         string         `db:"user" json:"user"`
	Provider     string         `db:"provider" json:"provider"`
	Account      string         `db:"account" json:"account"`
	AccessToken  string         `db:"access_token" json:"access_token"`
	RefreshToken string         `db:"refresh_token" json:"refresh_token"`
	Expiry       types.DateTime `db:"expiry" json:"expiry"`
	IsActive     bool           `db:"is_active" json:"is_active"`
}

func (m *Token) TableName() string {
	return "tokens"
}
