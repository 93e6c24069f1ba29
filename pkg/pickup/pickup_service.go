package pickup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"kyro-backend/domain"
	"kyro-backend/entities"
	"kyro-backend/internal/utils/storage"
	"kyro-backend/pkg/points"
	"kyro-backend/pkg/verifier"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PickupService interface {
		SchedulePickup(ctx context.Context, req domain.SchedulePickupRequest, userID string) (domain.SchedulePickupResponse, error)
		VerifyPickup(ctx context.Context, pickupID string, userID string) (domain.VerifyPickupResponse, error)
		GetPickupHistory(ctx context.Context, userID string) ([]domain.PickupResponse, error)
		Reconcile(ctx context.Context) (int, error)
	}

	pickupService struct {
		pickupRepository PickupRepository
		pointsService    points.PointsService
		verifierService  verifier.VerifierService
		s3               storage.AwsS3
	}
)

func NewPickupService(
	pickupRepository PickupRepository,
	pointsService points.PointsService,
	verifierService verifier.VerifierService,
	s3 storage.AwsS3,
) PickupService {
	return &pickupService{
		pickupRepository: pickupRepository,
		pointsService:    pointsService,
		verifierService:  verifierService,
		s3:               s3,
	}
}

func (s *pickupService) SchedulePickup(ctx context.Context, req domain.SchedulePickupRequest, userID string) (domain.SchedulePickupResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SchedulePickupResponse{}, domain.ErrParseUUID
	}

	// Fail fast before any I/O.
	if !domain.IsValidCategory(req.Category) {
		return domain.SchedulePickupResponse{}, domain.ErrInvalidCategory
	}
	if req.WeightKg <= 0 {
		return domain.SchedulePickupResponse{}, domain.ErrInvalidWeight
	}
	if req.Image == nil {
		return domain.SchedulePickupResponse{}, domain.ErrMissingImage
	}

	pickupID := uuid.New()

	// The image lands before the record so a pending request always carries a
	// usable image reference; an upload failure aborts the whole submission.
	fileName := fmt.Sprintf("pickup-%s", pickupID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.Image, "pickups", storage.AllowImage...)
	if err != nil {
		return domain.SchedulePickupResponse{}, fmt.Errorf("%w: %v", domain.ErrImageUploadFailed, err)
	}

	pickup := &entities.PickupRequest{
		ID:                 pickupID,
		UserID:             userUUID,
		Address:            req.Address,
		Category:           req.Category,
		WeightKg:           req.WeightKg,
		CalculatedPoints:   points.CalculatePoints(req.Category, req.WeightKg),
		VerificationStatus: domain.VerificationStatusPending,
		ImageURL:           s.s3.GetPublicLinkKey(objectKey),
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.pickupRepository.Create(ctx, pickup); err != nil {
		return domain.SchedulePickupResponse{}, err
	}

	return domain.SchedulePickupResponse{
		ID:                 pickup.ID.String(),
		Address:            pickup.Address,
		Category:           pickup.Category,
		WeightKg:           pickup.WeightKg,
		CalculatedPoints:   pickup.CalculatedPoints,
		VerificationStatus: pickup.VerificationStatus,
		ImageURL:           pickup.ImageURL,
		CreatedAt:          pickup.CreatedAt,
	}, nil
}

func (s *pickupService) VerifyPickup(ctx context.Context, pickupID string, userID string) (domain.VerifyPickupResponse, error) {
	pickupUUID, err := uuid.Parse(pickupID)
	if err != nil {
		return domain.VerifyPickupResponse{}, domain.ErrParseUUID
	}

	pickup, err := s.pickupRepository.GetByID(ctx, pickupUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VerifyPickupResponse{}, domain.ErrPickupNotFound
		}
		return domain.VerifyPickupResponse{}, err
	}

	if pickup.UserID.String() != userID {
		return domain.VerifyPickupResponse{}, domain.ErrUnauthorizedAccess
	}

	// A request already settled is not re-classified; the verdict was
	// authoritative once. Retries only re-attempt the credit, which the
	// ledger applies at most once.
	if pickup.VerificationStatus != domain.VerificationStatusPending {
		return s.settle(ctx, pickup)
	}

	objectKey := s.s3.GetObjectKeyFromLink(pickup.ImageURL)
	image, mimeType, err := s.s3.GetFile(objectKey)
	if err != nil {
		return domain.VerifyPickupResponse{}, fmt.Errorf("%w: %v", domain.ErrImageFetchFailed, err)
	}

	// On verifier failure the request stays pending; the caller retries by id
	// without re-uploading or re-creating anything.
	verdict, err := s.verifierService.Verify(ctx, image, mimeType, pickup.Category)
	if err != nil {
		return domain.VerifyPickupResponse{}, err
	}

	status := domain.VerificationStatusRejected
	if verdict.IsVerified {
		status = domain.VerificationStatusVerified
	}

	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		return domain.VerifyPickupResponse{}, err
	}

	updated, err := s.pickupRepository.UpdateVerification(ctx, pickupUUID, status, string(verdictJSON))
	if err != nil {
		return domain.VerifyPickupResponse{}, err
	}

	return s.settle(ctx, updated)
}

// settle credits a verified request's points and builds the caller response.
// The status write has already happened; this step is safe to repeat.
func (s *pickupService) settle(ctx context.Context, pickup *entities.PickupRequest) (domain.VerifyPickupResponse, error) {
	resp := domain.VerifyPickupResponse{
		ID:                 pickup.ID.String(),
		VerificationStatus: pickup.VerificationStatus,
		CalculatedPoints:   pickup.CalculatedPoints,
		Verdict:            decodeVerdict(pickup.VerificationResult),
	}

	if pickup.VerificationStatus != domain.VerificationStatusVerified {
		return resp, nil
	}

	credited, err := s.pointsService.CreditForPickup(ctx, pickup.UserID, pickup.ID, pickup.CalculatedPoints)
	if err != nil {
		log.Printf("pickup %s verified but credit failed: %v", pickup.ID, err)
		return resp, fmt.Errorf("%w: %v", domain.ErrCreditPending, err)
	}
	if credited {
		resp.PointsAwarded = pickup.CalculatedPoints
	}
	return resp, nil
}

func (s *pickupService) GetPickupHistory(ctx context.Context, userID string) ([]domain.PickupResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	pickups, err := s.pickupRepository.GetByUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.PickupResponse, 0, len(pickups))
	for _, p := range pickups {
		response = append(response, domain.PickupResponse{
			ID:                 p.ID.String(),
			Address:            p.Address,
			Category:           p.Category,
			WeightKg:           p.WeightKg,
			CalculatedPoints:   p.CalculatedPoints,
			VerificationStatus: p.VerificationStatus,
			Verdict:            decodeVerdict(p.VerificationResult),
			ImageURL:           p.ImageURL,
			CreatedAt:          p.CreatedAt,
		})
	}
	return response, nil
}

// Reconcile closes the verified-but-uncredited gap left behind when a credit
// failed after the status write. The ledger's per-request guard makes the
// repair idempotent. It also surfaces stale pending requests for operators.
func (s *pickupService) Reconcile(ctx context.Context) (int, error) {
	uncredited, err := s.pickupRepository.ListVerifiedUncredited(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, p := range uncredited {
		credited, err := s.pointsService.CreditForPickup(ctx, p.UserID, p.ID, p.CalculatedPoints)
		if err != nil {
			log.Printf("reconcile: credit for pickup %s failed: %v", p.ID, err)
			continue
		}
		if credited {
			log.Printf("reconcile: credited %d points for pickup %s", p.CalculatedPoints, p.ID)
			repaired++
		}
	}

	stale, err := s.pickupRepository.ListStalePending(ctx, 24*time.Hour)
	if err != nil {
		return repaired, err
	}
	for _, p := range stale {
		log.Printf("reconcile: pickup %s pending since %s", p.ID, p.CreatedAt.Format(time.RFC3339))
	}

	return repaired, nil
}

func decodeVerdict(raw string) *domain.VerificationVerdict {
	if raw == "" {
		return nil
	}
	var verdict domain.VerificationVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil
	}
	return &verdict
}
