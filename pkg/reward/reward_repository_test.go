package reward

import (
	"context"
	"errors"
	"testing"
	"time"

	"kyro-backend/domain"
	"kyro-backend/entities"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:reward_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entities.UserPoints{}, &entities.Reward{}, &entities.RewardRedemption{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedReward(t *testing.T, db *gorm.DB, cost int, active bool) *entities.Reward {
	t.Helper()
	now := time.Now()
	r := &entities.Reward{
		ID:          uuid.New(),
		Title:       "Eco Tote Bag",
		Description: "Recycled canvas tote",
		PointsCost:  cost,
		IsActive:    active,
		Timestamp:   entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed reward: %v", err)
	}
	return r
}

func seedBalance(t *testing.T, db *gorm.DB, points int) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	if err := db.Create(&entities.UserPoints{UserID: userID, TotalPoints: points, UpdatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed balance: %v", err)
	}
	return userID
}

func TestRedeemDebitsBalance(t *testing.T) {
	db := newTestDB(t)
	repo := NewRewardRepository(db)
	ctx := context.Background()

	reward := seedReward(t, db, 200, true)
	userID := seedBalance(t, db, 500)

	redemption, remaining, err := repo.Redeem(ctx, userID, reward)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if remaining != 300 {
		t.Fatalf("remaining = %d, want 300", remaining)
	}
	if redemption.PointsSpent != 200 || redemption.RewardID != reward.ID {
		t.Fatalf("redemption = %+v", redemption)
	}

	var up entities.UserPoints
	if err := db.Where("user_id = ?", userID).First(&up).Error; err != nil {
		t.Fatalf("load balance: %v", err)
	}
	if up.TotalPoints != 300 {
		t.Fatalf("stored balance = %d, want 300", up.TotalPoints)
	}
}

func TestRedeemInsufficientBalanceNoMutation(t *testing.T) {
	db := newTestDB(t)
	repo := NewRewardRepository(db)
	ctx := context.Background()

	reward := seedReward(t, db, 500, true)
	userID := seedBalance(t, db, 499)

	_, _, err := repo.Redeem(ctx, userID, reward)
	if !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	var up entities.UserPoints
	if err := db.Where("user_id = ?", userID).First(&up).Error; err != nil {
		t.Fatalf("load balance: %v", err)
	}
	if up.TotalPoints != 499 {
		t.Fatalf("balance mutated to %d", up.TotalPoints)
	}

	var count int64
	if err := db.Model(&entities.RewardRedemption{}).Count(&count).Error; err != nil {
		t.Fatalf("count redemptions: %v", err)
	}
	if count != 0 {
		t.Fatalf("redemptions recorded = %d, want 0", count)
	}
}

func TestRedeemUnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewRewardRepository(db)

	reward := seedReward(t, db, 100, true)
	_, _, err := repo.Redeem(context.Background(), uuid.New(), reward)
	if !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}
}

func TestGetActiveRewardsOrderedByCost(t *testing.T) {
	db := newTestDB(t)
	repo := NewRewardRepository(db)

	expensive := seedReward(t, db, 1800, true)
	cheap := seedReward(t, db, 200, true)
	seedReward(t, db, 50, false)

	rewards, err := repo.GetActiveRewards(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rewards) != 2 {
		t.Fatalf("len = %d, want 2 active", len(rewards))
	}
	if rewards[0].ID != cheap.ID || rewards[1].ID != expensive.ID {
		t.Fatal("rewards not ordered by cost ascending")
	}
}

func TestGetRewardByIDIgnoresInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewRewardRepository(db)

	inactive := seedReward(t, db, 100, false)
	_, err := repo.GetRewardByID(context.Background(), inactive.ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}
