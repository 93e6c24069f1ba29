package domain

var (
	MessageSuccessGetLeaderboard = "leaderboard retrieved successfully"
	MessageSuccessGetGlobalStats = "global impact stats retrieved successfully"

	MessageFailedGetLeaderboard = "failed to retrieve leaderboard"
	MessageFailedGetGlobalStats = "failed to retrieve global impact stats"
)

type (
	LeaderboardEntry struct {
		Rank        int    `json:"rank"`
		UserID      string `json:"user_id"`
		DisplayName string `json:"display_name"`
		TotalPoints int    `json:"total_points"`
	}

	GlobalStatsResponse struct {
		TotalVerifiedKg   float64 `json:"total_verified_kg"`
		TotalPickups      int64   `json:"total_pickups"`
		TotalParticipants int64   `json:"total_participants"`
	}
)
