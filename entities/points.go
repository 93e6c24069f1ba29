package entities

import (
	"time"

	"github.com/google/uuid"
)

type UserPoints struct {
	UserID      uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	TotalPoints int       `json:"total_points"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PointsEntry records a single settlement credit. The unique index on
// PickupRequestID guarantees a request is credited at most once, no matter
// how often settlement is retried.
type PointsEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	PickupRequestID uuid.UUID `gorm:"uniqueIndex" json:"pickup_request_id"`
	Amount          int       `json:"amount"`

	Timestamp
}
