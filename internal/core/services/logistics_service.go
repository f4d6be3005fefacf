package services

import (
	"context"
	"errors"
	"log"
	"time"

	"medbridge/internal/adapters/persistence/models"
	"medbridge/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Logistics service errors
var (
	ErrAssignmentNotFound = errors.New("logistics entry not found")
	ErrNotReadyForPickup  = errors.New("medicine not ready for pickup")
	ErrNotPickedUp        = errors.New("medicine not picked up")
)

// LogisticsService handles pickup/delivery assignments. Medicine.status is
// the authoritative state track; the logistics entry records the
// volunteer's side and the pickup/delivery timestamps.
type LogisticsService struct {
	logisticsRepo repositories.LogisticsRepository
	medicineRepo  repositories.MedicineRepository
}

// NewLogisticsService creates a new logistics service
func NewLogisticsService(
	logisticsRepo repositories.LogisticsRepository,
	medicineRepo repositories.MedicineRepository,
) *LogisticsService {
	return &LogisticsService{
		logisticsRepo: logisticsRepo,
		medicineRepo:  medicineRepo,
	}
}

// ClaimPickup assigns a claimed medicine to the volunteer. The listing
// moves claimed -> picked_up through a conditional update, so a second
// pickup for the same medicine misses the precondition and fails.
func (s *LogisticsService) ClaimPickup(ctx context.Context, medicineID, volunteerID uint) (*models.LogisticsEntry, error) {
	ok, err := s.medicineRepo.TransitionStatus(ctx, medicineID,
		models.MedicineStatusClaimed, models.MedicineStatusPickedUp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotReadyForPickup
	}

	now := time.Now()
	entry := &models.LogisticsEntry{
		MedicineID:  medicineID,
		VolunteerID: volunteerID,
		PickupDate:  &now,
		Status:      models.LogisticsStatusPicked,
	}

	if err := s.logisticsRepo.Create(ctx, entry); err != nil {
		// Roll the listing back so it stays assignable; without this it
		// would sit picked_up with no volunteer attached.
		if _, rbErr := s.medicineRepo.TransitionStatus(ctx, medicineID,
			models.MedicineStatusPickedUp, models.MedicineStatusClaimed); rbErr != nil {
			log.Printf("⚠️ Failed to roll back pickup for medicine %d: %v", medicineID, rbErr)
		}
		return nil, err
	}

	log.Printf("✅ Pickup assigned: medicine=%d volunteer=%d", medicineID, volunteerID)
	return entry, nil
}

// MarkDelivered completes the assignment matching (medicine, volunteer).
// Fails with not-found when no such assignment exists; a different
// volunteer cannot deliver someone else's pickup.
func (s *LogisticsService) MarkDelivered(ctx context.Context, medicineID, volunteerID uint) (*models.LogisticsEntry, error) {
	entry, err := s.logisticsRepo.GetByMedicineAndVolunteer(ctx, medicineID, volunteerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	ok, err := s.medicineRepo.TransitionStatus(ctx, medicineID,
		models.MedicineStatusPickedUp, models.MedicineStatusDelivered)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotPickedUp
	}

	now := time.Now()
	entry.Status = models.LogisticsStatusDelivered
	entry.DeliveryDate = &now

	if err := s.logisticsRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	log.Printf("✅ Delivery completed: medicine=%d volunteer=%d", medicineID, volunteerID)
	return entry, nil
}

// ListMine lists the volunteer's assignments with medicines expanded
func (s *LogisticsService) ListMine(ctx context.Context, volunteerID uint) ([]*models.LogisticsResponse, error) {
	entries, err := s.logisticsRepo.ListByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LogisticsResponse, len(entries))
	for i, e := range entries {
		responses[i] = e.ToResponse()
	}
	return responses, nil
}
