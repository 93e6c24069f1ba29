package migration

import (
	"fmt"
	"log"
	"time"

	"kyro-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PickupRequest{}); err != nil {
		log.Fatalf("Error migrating pickup request database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserPoints{}); err != nil {
		log.Fatalf("Error migrating user points database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PointsEntry{}); err != nil {
		log.Fatalf("Error migrating points entry database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Reward{}); err != nil {
		log.Fatalf("Error migrating reward database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RewardRedemption{}); err != nil {
		log.Fatalf("Error migrating reward redemption database: %v", err)
		return err
	}

	if err := seedRewards(db); err != nil {
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

func seedRewards(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.Reward{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	rewards := []entities.Reward{
		{ID: uuid.New(), Title: "Eco Tote Bag", Description: "Recycled canvas tote", PointsCost: 200, IsActive: true, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
		{ID: uuid.New(), Title: "$5 Voucher", Description: "Partner store voucher", PointsCost: 500, IsActive: true, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
		{ID: uuid.New(), Title: "Plant a Tree", Description: "We plant a tree in your name", PointsCost: 750, IsActive: true, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
		{ID: uuid.New(), Title: "$20 Voucher", Description: "Partner store voucher", PointsCost: 1800, IsActive: true, Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now}},
	}
	return db.Create(&rewards).Error
}
