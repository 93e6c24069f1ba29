package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"kyro-backend/domain"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 30 * time.Second

type (
	LeaderboardService interface {
		GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
		GetGlobalStats(ctx context.Context) (domain.GlobalStatsResponse, error)
	}

	leaderboardService struct {
		leaderboardRepository LeaderboardRepository
		cache                 *redis.Client // nil disables caching
	}
)

func NewLeaderboardService(leaderboardRepository LeaderboardRepository, cache *redis.Client) LeaderboardService {
	return &leaderboardService{
		leaderboardRepository: leaderboardRepository,
		cache:                 cache,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("kyro:leaderboard:top:%d", limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var entries []domain.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.leaderboardRepository.TopUsers(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				log.Printf("leaderboard cache write failed: %v", err)
			}
		}
	}

	return entries, nil
}

func (s *leaderboardService) GetGlobalStats(ctx context.Context) (domain.GlobalStatsResponse, error) {
	return s.leaderboardRepository.GlobalStats(ctx)
}
