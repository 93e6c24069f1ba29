package pickup

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
	dsn := "file:pickup_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.PickupRequest{}, &entities.PointsEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func seedPickup(t *testing.T, db *gorm.DB, status string, createdAt time.Time) *entities.PickupRequest {
	t.Helper()
	p := &entities.PickupRequest{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		Address:            "12 Recycle Way",
		Category:           domain.CategoryLaptops,
		WeightKg:           10,
		CalculatedPoints:   300,
		VerificationStatus: status,
		ImageURL:           "https://bucket.s3.region.amazonaws.com/pickups/object.jpg",
		Timestamp:          entities.Timestamp{CreatedAt: createdAt, UpdatedAt: createdAt},
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed pickup: %v", err)
	}
	return p
}

func TestUpdateVerificationTransitionsPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewPickupRepository(db)
	ctx := context.Background()
	p := seedPickup(t, db, domain.VerificationStatusPending, time.Now())

	verdict := `{"isVerified":true,"detectedItems":["laptop"],"confidence":92,"reasoning":"ok"}`
	updated, err := repo.UpdateVerification(ctx, p.ID, domain.VerificationStatusVerified, verdict)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.VerificationStatus != domain.VerificationStatusVerified {
		t.Fatalf("status = %q, want verified", updated.VerificationStatus)
	}
	if updated.VerificationResult != verdict {
		t.Fatalf("verdict not stored: %q", updated.VerificationResult)
	}
}

func TestUpdateVerificationSameStatusIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPickupRepository(db)
	ctx := context.Background()
	p := seedPickup(t, db, domain.VerificationStatusPending, time.Now())

	if _, err := repo.UpdateVerification(ctx, p.ID, domain.VerificationStatusRejected, `{"isVerified":false}`); err != nil {
		t.Fatalf("first update: %v", err)
	}

	again, err := repo.UpdateVerification(ctx, p.ID, domain.VerificationStatusRejected, `{"isVerified":false}`)
	if err != nil {
		t.Fatalf("repeat update: %v", err)
	}
	if again.VerificationStatus != domain.VerificationStatusRejected {
		t.Fatalf("status = %q, want rejected", again.VerificationStatus)
	}
}

func TestUpdateVerificationRefusesTerminalFlip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPickupRepository(db)
	ctx := context.Background()
	p := seedPickup(t, db, domain.VerificationStatusVerified, time.Now())

	_, err := repo.UpdateVerification(ctx, p.ID, domain.VerificationStatusRejected, `{"isVerified":false}`)
	if !errors.Is(err, domain.ErrPickupAlreadySettled) {
		t.Fatalf("err = %v, want ErrPickupAlreadySettled", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.VerificationStatus != domain.VerificationStatusVerified {
		t.Fatalf("status mutated to %q", got.VerificationStatus)
	}
}

func TestUpdateVerificationUnknownID(t *testing.T) {
	repo := NewPickupRepository(newTestDB(t))

	_, err := repo.UpdateVerification(context.Background(), uuid.New(), domain.VerificationStatusVerified, "{}")
	if !errors.Is(err, domain.ErrPickupNotFound) {
		t.Fatalf("err = %v, want ErrPickupNotFound", err)
	}
}

func TestListVerifiedUncredited(t *testing.T) {
	db := newTestDB(t)
	repo := NewPickupRepository(db)
	ctx := context.Background()

	uncredited := seedPickup(t, db, domain.VerificationStatusVerified, time.Now())
	credited := seedPickup(t, db, domain.VerificationStatusVerified, time.Now())
	seedPickup(t, db, domain.VerificationStatusPending, time.Now())
	seedPickup(t, db, domain.VerificationStatusRejected, time.Now())

	entry := &entities.PointsEntry{
		ID:              uuid.New(),
		UserID:          credited.UserID,
		PickupRequestID: credited.ID,
		Amount:          credited.CalculatedPoints,
		Timestamp:       entities.Timestamp{CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	got, err := repo.ListVerifiedUncredited(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != uncredited.ID {
		t.Fatalf("got pickup %s, want %s", got[0].ID, uncredited.ID)
	}
}

func TestListStalePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewPickupRepository(db)
	ctx := context.Background()

	old := seedPickup(t, db, domain.VerificationStatusPending, time.Now().Add(-48*time.Hour))
	seedPickup(t, db, domain.VerificationStatusPending, time.Now())
	seedPickup(t, db, domain.VerificationStatusVerified, time.Now().Add(-48*time.Hour))

	got, err := repo.ListStalePending(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != old.ID {
		t.Fatalf("stale list = %d entries, want the 48h-old pending request", len(got))
	}
}

func TestGetByUserOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPickupRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	older := &entities.PickupRequest{
		ID: uuid.New(), UserID: userID, Category: domain.CategoryCables, WeightKg: 1,
		CalculatedPoints: 20, VerificationStatus: domain.VerificationStatusPending,
		Timestamp: entities.Timestamp{CreatedAt: time.Now().Add(-time.Hour), UpdatedAt: time.Now().Add(-time.Hour)},
	}
	newer := &entities.PickupRequest{
		ID: uuid.New(), UserID: userID, Category: domain.CategoryLaptops, WeightKg: 2,
		CalculatedPoints: 60, VerificationStatus: domain.VerificationStatusPending,
		Timestamp: entities.Timestamp{CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}
	for _, p := range []*entities.PickupRequest{older, newer} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	seedPickup(t, db, domain.VerificationStatusPending, time.Now()) // another user

	got, err := repo.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("get by user: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatal("history not ordered newest first")
	}
}
