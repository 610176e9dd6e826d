package models

import (
	"time"
)

// RefreshToken is one issued refresh token. Tokens are rotated: a refresh
// revokes the presented row and stores a replacement, so a replayed token
// fails the is_revoked check.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
