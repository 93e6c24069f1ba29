package leaderboard

import (
	"context"

	"kyro-backend/domain"
	"kyro-backend/entities"

	"gorm.io/gorm"
)

type (
	LeaderboardRepository interface {
		TopUsers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
		GlobalStats(ctx context.Context) (domain.GlobalStatsResponse, error)
	}

	leaderboardRepository struct {
		db *gorm.DB
	}

	topUserRow struct {
		UserID      string
		DisplayName string
		TotalPoints int
	}
)

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{
		db: db,
	}
}

func (r *leaderboardRepository) TopUsers(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var rows []topUserRow
	if err := r.db.WithContext(ctx).
		Table("user_points").
		Select("user_points.user_id AS user_id, users.name AS display_name, user_points.total_points AS total_points").
		Joins("JOIN users ON users.id = user_points.user_id").
		Order("user_points.total_points DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			TotalPoints: row.TotalPoints,
		})
	}
	return entries, nil
}

func (r *leaderboardRepository) GlobalStats(ctx context.Context) (domain.GlobalStatsResponse, error) {
	var stats domain.GlobalStatsResponse

	var totalWeight float64
	if err := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("verification_status = ?", domain.VerificationStatusVerified).
		Select("COALESCE(SUM(weight_kg), 0)").
		Row().Scan(&totalWeight); err != nil {
		return stats, err
	}

	var totalPickups int64
	if err := r.db.WithContext(ctx).
		Model(&entities.PickupRequest{}).
		Where("verification_status = ?", domain.VerificationStatusVerified).
		Count(&totalPickups).Error; err != nil {
		return stats, err
	}

	var totalParticipants int64
	if err := r.db.WithContext(ctx).
		Model(&entities.UserPoints{}).
		Count(&totalParticipants).Error; err != nil {
		return stats, err
	}

	stats.TotalVerifiedKg = totalWeight
	stats.TotalPickups = totalPickups
	stats.TotalParticipants = totalParticipants
	return stats, nil
}
