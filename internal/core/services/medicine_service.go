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

// Medicine service errors
var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrNotPending       = errors.New("medicine not found or not pending")
	ErrNotClaimable     = errors.New("medicine not available for claim")
	ErrInvalidQuantity  = errors.New("quantity must be a positive number")
	ErrInvalidStatus    = errors.New("invalid medicine status")
)

// MedicineService handles medicine listing business logic
type MedicineService struct {
	medicineRepo repositories.MedicineRepository
	audit        *AuditService
}

// NewMedicineService creates a new medicine service
func NewMedicineService(medicineRepo repositories.MedicineRepository, audit *AuditService) *MedicineService {
	return &MedicineService{
		medicineRepo: medicineRepo,
		audit:        audit,
	}
}

// UploadInput represents a new donation listing
type UploadInput struct {
	Name       string
	ExpiryDate time.Time
	Quantity   int
	PhotoURL   string
}

// Upload creates a listing at status pending owned by the donor
func (s *MedicineService) Upload(ctx context.Context, donorID uint, input *UploadInput) (*models.Medicine, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	medicine := &models.Medicine{
		Name:       input.Name,
		ExpiryDate: input.ExpiryDate,
		Quantity:   input.Quantity,
		PhotoURL:   input.PhotoURL,
		DonorID:    donorID,
		Status:     models.MedicineStatusPending,
	}

	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		return nil, err
	}

	log.Printf("✅ Medicine uploaded: %s (id=%d, donor=%d)", medicine.Name, medicine.ID, donorID)
	return medicine, nil
}

// List lists listings by status, defaulting to approved when the caller
// omits one. Claimed listings are not visible under the approved filter.
func (s *MedicineService) List(ctx context.Context, status string) ([]*models.MedicineResponse, error) {
	if status == "" {
		status = models.MedicineStatusApproved
	}
	if !models.ValidMedicineStatus(status) {
		return nil, ErrInvalidStatus
	}

	medicines, err := s.medicineRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	return toResponses(medicines), nil
}

// ListMine lists all listings owned by the donor regardless of status
func (s *MedicineService) ListMine(ctx context.Context, donorID uint) ([]*models.MedicineResponse, error) {
	medicines, err := s.medicineRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	return toResponses(medicines), nil
}

// Approve moves a pending listing to approved. The precondition travels
// with the update, so two concurrent approvals cannot both succeed.
func (s *MedicineService) Approve(ctx context.Context, id uint) (*models.Medicine, error) {
	return s.resolve(ctx, id, models.MedicineStatusApproved)
}

// Reject moves a pending listing to rejected
func (s *MedicineService) Reject(ctx context.Context, id uint) (*models.Medicine, error) {
	return s.resolve(ctx, id, models.MedicineStatusRejected)
}

func (s *MedicineService) resolve(ctx context.Context, id uint, to string) (*models.Medicine, error) {
	ok, err := s.medicineRepo.TransitionStatus(ctx, id, models.MedicineStatusPending, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotPending
	}

	medicine, err := s.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Medicine %s: %s (id=%d)", to, medicine.Name, id)
	return medicine, nil
}

// Claim reserves an approved listing for the claimant. Fails unless the
// listing status is exactly approved at the time of the update.
func (s *MedicineService) Claim(ctx context.Context, id, claimantID uint) error {
	ok, err := s.medicineRepo.Claim(ctx, id, claimantID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotClaimable
	}

	log.Printf("✅ Medicine claimed: id=%d by user %d", id, claimantID)
	return nil
}

// AdminList lists all listings with donor and claimant summaries
func (s *MedicineService) AdminList(ctx context.Context, offset, limit int) ([]*models.MedicineResponse, int64, error) {
	medicines, total, err := s.medicineRepo.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(medicines), total, nil
}

// AdminUpdateInput represents an administrative field patch; nil fields
// are untouched
type AdminUpdateInput struct {
	Name       *string    `json:"name"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Quantity   *int       `json:"quantity"`
	Status     *string    `json:"status"`
	Verified   *bool      `json:"verified"`
	IsBlocked  *bool      `json:"is_blocked"`
}

// FieldChange is one before/after pair in an audit diff
type FieldChange struct {
	Before interface{} `json:"before"`
	After  interface{} `json:"after"`
}

// AdminUpdate patches arbitrary listing fields and records a changed-keys
// diff in the audit log. A patch that changes nothing produces no entry.
// This is the administrative override: it may touch terminal listings.
func (s *MedicineService) AdminUpdate(ctx context.Context, id, adminID uint, input *AdminUpdateInput) (*models.Medicine, error) {
	medicine, err := s.medicineRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMedicineNotFound
		}
		return nil, err
	}

	changes := map[string]FieldChange{}

	if input.Name != nil && *input.Name != "" && *input.Name != medicine.Name {
		changes["name"] = FieldChange{Before: medicine.Name, After: *input.Name}
		medicine.Name = *input.Name
	}
	if input.ExpiryDate != nil && !input.ExpiryDate.Equal(medicine.ExpiryDate) {
		changes["expiry_date"] = FieldChange{Before: medicine.ExpiryDate, After: *input.ExpiryDate}
		medicine.ExpiryDate = *input.ExpiryDate
	}
	if input.Quantity != nil && *input.Quantity != medicine.Quantity {
		if *input.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		changes["quantity"] = FieldChange{Before: medicine.Quantity, After: *input.Quantity}
		medicine.Quantity = *input.Quantity
	}
	if input.Status != nil && *input.Status != medicine.Status {
		if !models.ValidMedicineStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		changes["status"] = FieldChange{Before: medicine.Status, After: *input.Status}
		medicine.Status = *input.Status
	}
	if input.Verified != nil && *input.Verified != medicine.Verified {
		changes["verified"] = FieldChange{Before: medicine.Verified, After: *input.Verified}
		medicine.Verified = *input.Verified
	}
	if input.IsBlocked != nil && *input.IsBlocked != medicine.IsBlocked {
		changes["is_blocked"] = FieldChange{Before: medicine.IsBlocked, After: *input.IsBlocked}
		medicine.IsBlocked = *input.IsBlocked
	}

	if len(changes) == 0 {
		return medicine, nil
	}

	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		return nil, err
	}

	s.audit.Record(adminID, models.ActionUpdateMedicine, map[string]interface{}{
		"medicine_id": medicine.ID,
		"changes":     changes,
	})

	return medicine, nil
}

func toResponses(medicines []*models.Medicine) []*models.MedicineResponse {
	responses := make([]*models.MedicineResponse, len(medicines))
	for i, m := range medicines {
		responses[i] = m.ToResponse()
	}
	return responses
}
