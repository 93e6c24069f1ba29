package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Name     string    `json:"name"` // display name, mutable, never used as a join key
	Role     string    `gorm:"default:user" json:"role"`

	Timestamp
}
