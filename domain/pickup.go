package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	VerificationStatusPending  = "pending"
	VerificationStatusVerified = "verified"
	VerificationStatusRejected = "rejected"

	CategorySmartphones     = "Smartphones & Tablets"
	CategoryLaptops         = "Laptops & Computers"
	CategoryTVs             = "TVs & Monitors"
	CategoryBatteries       = "Batteries & Power Banks"
	CategoryCables          = "Cables & Chargers"
	CategorySmallAppliances = "Other Small Appliances"
)

var EWasteCategories = []string{
	CategorySmartphones,
	CategoryLaptops,
	CategoryTVs,
	CategoryBatteries,
	CategoryCables,
	CategorySmallAppliances,
}

func IsValidCategory(category string) bool {
	for _, c := range EWasteCategories {
		if c == category {
			return true
		}
	}
	return false
}

var (
	MessageSuccessSchedulePickup   = "pickup request submitted successfully"
	MessageSuccessVerifyPickup     = "pickup verification completed"
	MessageSuccessGetPickupHistory = "pickup history retrieved successfully"

	MessageFailedSchedulePickup   = "failed to submit pickup request"
	MessageFailedVerifyPickup     = "failed to verify pickup request"
	MessageFailedGetPickupHistory = "failed to retrieve pickup history"

	ErrPickupNotFound       = errors.New("pickup request not found")
	ErrInvalidCategory      = errors.New("invalid e-waste category")
	ErrInvalidWeight        = errors.New("weight must be positive")
	ErrMissingImage         = errors.New("submission image is required")
	ErrInvalidImageFormat   = errors.New("invalid image format")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to pickup request")
	ErrImageUploadFailed    = errors.New("failed to upload submission image")
	ErrImageFetchFailed     = errors.New("failed to fetch submission image")
	ErrPickupAlreadySettled = errors.New("pickup request already settled with a different outcome")

	ErrVerifierNotConfigured   = errors.New("verification service not configured")
	ErrVerdictMalformed        = errors.New("malformed verification verdict")
	ErrVerificationUnavailable = errors.New("verification service unavailable")

	// ErrCreditPending marks the recoverable gap between a request persisted
	// as verified and its points landing in the ledger. The reconciler closes
	// it; callers should retry verification rather than resubmit.
	ErrCreditPending = errors.New("pickup verified but points credit is still pending")
)

type (
	VerificationVerdict struct {
		IsVerified    bool     `json:"isVerified"`
		DetectedItems []string `json:"detectedItems"`
		Confidence    float64  `json:"confidence"`
		Reasoning     string   `json:"reasoning"`
	}

	SchedulePickupRequest struct {
		Address  string                `json:"address" form:"address" validate:"required"`
		Category string                `json:"category" form:"category" validate:"required"`
		WeightKg float64               `json:"weight_kg" form:"weight_kg" validate:"required,gt=0"`
		Image    *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	SchedulePickupResponse struct {
		ID                 string    `json:"id"`
		Address            string    `json:"address"`
		Category           string    `json:"category"`
		WeightKg           float64   `json:"weight_kg"`
		CalculatedPoints   int       `json:"calculated_points"`
		VerificationStatus string    `json:"verification_status"`
		ImageURL           string    `json:"image_url"`
		CreatedAt          time.Time `json:"created_at"`
	}

	VerifyPickupResponse struct {
		ID                 string               `json:"id"`
		VerificationStatus string               `json:"verification_status"`
		CalculatedPoints   int                  `json:"calculated_points"`
		PointsAwarded      int                  `json:"points_awarded"`
		Verdict            *VerificationVerdict `json:"verdict,omitempty"`
	}

	PickupResponse struct {
		ID                 string               `json:"id"`
		Address            string               `json:"address"`
		Category           string               `json:"category"`
		WeightKg           float64              `json:"weight_kg"`
		CalculatedPoints   int                  `json:"calculated_points"`
		VerificationStatus string               `json:"verification_status"`
		Verdict            *VerificationVerdict `json:"verdict,omitempty"`
		ImageURL           string               `json:"image_url,omitempty"`
		CreatedAt          time.Time            `json:"created_at"`
	}
)
