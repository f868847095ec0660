package models

import (
	"time"

	"github.com/MGTheTrain/book-organiser/internal/domain/accounts"
	"gorm.io/datatypes"
)

// UserAccountModel is the GORM database model for user accounts
type UserAccountModel struct {
	ID                 string                      `gorm:"primaryKey;type:varchar(36)"`
	FullName           string                      `gorm:"not null;type:varchar(100)"`
	Email              string                      `gorm:"not null;uniqueIndex;type:varchar(255)"`
	PasswordHash       string                      `gorm:"not null;type:varchar(255)"`
	UserCategories     datatypes.JSONSlice[string] `gorm:"column:user_categories"`
	AcceptedAIFeatures bool                        `gorm:"column:accepted_ai_features;not null;default:false"`
	CreatedAt          time.Time                   `gorm:"not null"`
	UpdatedAt          time.Time                   `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserAccountModel) TableName() string {
	return "user_accounts"
}

// ToDomain converts GORM model to domain entity
func (m *UserAccountModel) ToDomain() *accounts.UserAccount {
	return &accounts.UserAccount{
		ID:                 m.ID,
		FullName:           m.FullName,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		UserCategories:     cloneStrings(m.UserCategories),
		AcceptedAIFeatures: m.AcceptedAIFeatures,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserAccountModel) FromDomain(u *accounts.UserAccount) {
	m.ID = u.ID
	m.FullName = u.FullName
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.UserCategories = datatypes.NewJSONSlice(cloneStrings(u.UserCategories))
	m.AcceptedAIFeatures = u.AcceptedAIFeatures
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

// cloneStrings copies a list so that the domain and model never share a
// backing array, and maps nil to an empty list so JSON columns hold "[]".
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
