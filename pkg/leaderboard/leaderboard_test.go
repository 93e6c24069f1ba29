package leaderboard

import (
	"context"
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
	dsn := "file:leaderboard_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.UserPoints{}, &entities.PickupRequest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedUserWithPoints(t *testing.T, db *gorm.DB, name string, points int) uuid.UUID {
	t.Helper()
	now := time.Now()
	user := &entities.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		Password: "hash",
		Name:     name,
		Role:     domain.RoleUser,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := db.Create(&entities.UserPoints{UserID: user.ID, TotalPoints: points, UpdatedAt: now}).Error; err != nil {
		t.Fatalf("seed points: %v", err)
	}
	return user.ID
}

func TestTopUsersRanking(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeaderboardRepository(db)

	seedUserWithPoints(t, db, "Ayu", 120)
	topID := seedUserWithPoints(t, db, "Bima", 900)
	seedUserWithPoints(t, db, "Citra", 450)

	entries, err := repo.TopUsers(context.Background(), 10)
	if err != nil {
		t.Fatalf("top users: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].UserID != topID.String() || entries[0].Rank != 1 || entries[0].TotalPoints != 900 {
		t.Fatalf("first entry = %+v", entries[0])
	}
	if entries[0].DisplayName != "Bima" {
		t.Fatalf("display name = %q, want Bima", entries[0].DisplayName)
	}
	if entries[1].TotalPoints != 450 || entries[2].TotalPoints != 120 {
		t.Fatal("entries not ordered by points descending")
	}
}

func TestTopUsersHonorsLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeaderboardRepository(db)

	for i := 0; i < 5; i++ {
		seedUserWithPoints(t, db, "User", (i+1)*10)
	}

	entries, err := repo.TopUsers(context.Background(), 2)
	if err != nil {
		t.Fatalf("top users: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
}

func TestGlobalStatsCountsVerifiedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewLeaderboardRepository(db)

	userID := seedUserWithPoints(t, db, "Ayu", 300)
	now := time.Now()
	pickups := []*entities.PickupRequest{
		{ID: uuid.New(), UserID: userID, Category: domain.CategoryLaptops, WeightKg: 10, CalculatedPoints: 300, VerificationStatus: domain.VerificationStatusVerified, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
		{ID: uuid.New(), UserID: userID, Category: domain.CategoryCables, WeightKg: 2.5, CalculatedPoints: 50, VerificationStatus: domain.VerificationStatusVerified, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
		{ID: uuid.New(), UserID: userID, Category: domain.CategoryTVs, WeightKg: 30, CalculatedPoints: 750, VerificationStatus: domain.VerificationStatusRejected, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
		{ID: uuid.New(), UserID: userID, Category: domain.CategoryBatteries, WeightKg: 1, CalculatedPoints: 40, VerificationStatus: domain.VerificationStatusPending, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
	}
	for _, p := range pickups {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed pickup: %v", err)
		}
	}

	stats, err := repo.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVerifiedKg != 12.5 {
		t.Fatalf("total kg = %v, want 12.5", stats.TotalVerifiedKg)
	}
	if stats.TotalPickups != 2 {
		t.Fatalf("total pickups = %d, want 2", stats.TotalPickups)
	}
	if stats.TotalParticipants != 1 {
		t.Fatalf("participants = %d, want 1", stats.TotalParticipants)
	}
}

func TestGetLeaderboardClampsLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewLeaderboardService(NewLeaderboardRepository(db), nil)

	for i := 0; i < 3; i++ {
		seedUserWithPoints(t, db, "User", (i+1)*100)
	}

	entries, err := svc.GetLeaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}

	// Oversized limits are capped rather than rejected.
	if _, err := svc.GetLeaderboard(context.Background(), 5000); err != nil {
		t.Fatalf("leaderboard with large limit: %v", err)
	}
}
