package query

import (
	"github.com/pocketbase/dbx"
)

// BaseFilter represents common filter fields used across multiple models
type BaseFilter struct {
	ID       string `json:"id,omitempty"`
	User     string `json:"user,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ToMap converts BaseFilter to map[string]interface{} for compatibility
func (f *BaseFilter) ToMap() map[string]interface{} {
	result := make(map[string]interface{})
	if f.ID != "" {
		result["id"] = f.ID
	}
	if f.User != "" {
		result["user"] = f.User
	}
	if f.IsActive != nil {
		result["is_active"] = *f.IsActive
	}
	return result
}

// ToHashExp converts BaseFilter to dbx.HashExp for query building
func (f *BaseFilter) ToHashExp() dbx.HashExp {
	return dbx.HashExp(f.ToMap())
}

// TokenFilter represents filter criteria for stored OAuth tokens
type TokenFilter struct {
	BaseFilter
	Provider string `json:"provider,omitempty"`
	Account  string `json:"account,omitempty"`
}

// ToMap converts TokenFilter to map[string]interface{}
func (f *TokenFilter) ToMap() map[string]interface{} {
	result := f.BaseFilter.ToMap()
	if f.Provider != "" {
		result["provider"] = f.Provider
	}
	if f.Account != "" {
		result["account"] = f.Account
	}
	return result
}
