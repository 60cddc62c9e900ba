package models

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  *string   `gorm:"check:chk_users_credential,password_hash IS NOT NULL OR (oauth_provider IS NOT NULL AND oauth_id IS NOT NULL)" json:"-"`
	FullName      string    `gorm:"not null" json:"full_name"`
	OAuthProvider *string   `gorm:"column:oauth_provider" json:"oauth_provider"`
	OAuthID       *string   `gorm:"column:oauth_id" json:"-"`
	IsAdmin       bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasCredential reports whether the user can sign in at all, either with a
// password or through an OAuth provider.
func (u *User) HasCredential() bool {
	return u.PasswordHash != nil || (u.OAuthProvider != nil && u.OAuthID != nil)
}
