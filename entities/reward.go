package entities

import (
	"github.com/google/uuid"
)

type Reward struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PointsCost  int       `json:"points_cost"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`

	Timestamp
}

type RewardRedemption struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	RewardID    uuid.UUID `json:"reward_id"`
	PointsSpent int       `json:"points_spent"`

	User   *User   `gorm:"foreignKey:UserID"`
	Reward *Reward `gorm:"foreignKey:RewardID"`
	Timestamp
}
