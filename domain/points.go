package domain

import (
	"time"
)

var (
	MessageSuccessGetUserPoints = "user points retrieved successfully"
	MessageFailedGetUserPoints  = "failed to retrieve user points"
)

type UserPointsResponse struct {
	UserID      string    `json:"user_id"`
	TotalPoints int       `json:"total_points"`
	UpdatedAt   time.Time `json:"updated_at"`
}
