package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns projects and tags. The Password field holds a bcrypt hash and is
// never serialized.
type User struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	Email    string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Password string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role     string    `json:"role" db:"role" gorm:"type:text;not null;default:'USER'"`
	Enabled  bool      `json:"enabled" db:"enabled" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "USER"
	}
	return nil
}
