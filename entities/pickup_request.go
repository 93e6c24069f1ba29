package entities

import (
	"github.com/google/uuid"
)

type PickupRequest struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID `gorm:"index" json:"user_id"`
	Address            string    `json:"address"`
	Category           string    `json:"category"`
	WeightKg           float64   `json:"weight_kg"`
	CalculatedPoints   int       `json:"calculated_points"` // fixed at creation, credited only on verification
	VerificationStatus string    `gorm:"index" json:"verification_status"` // "pending", "verified", "rejected"
	VerificationResult string    `gorm:"type:text" json:"verification_result,omitempty"`
	ImageURL           string    `json:"image_url"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
