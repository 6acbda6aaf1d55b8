package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Username     string    `gorm:"size:50;not null" json:"username"`
	Avatar       string    `gorm:"size:512" json:"avatar"`
	// Token holds the live session token. It is set on login/refresh and
	// cleared on logout, which invalidates any outstanding JWT.
	Token    string `gorm:"size:512" json:"-"`
	Verified bool   `gorm:"not null;default:false" json:"verified"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
