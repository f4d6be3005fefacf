package repositories

import (
	"context"
	"time"

	"medbridge/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// medicineRepository implements MedicineRepository interface
type medicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository creates a new medicine repository
func NewMedicineRepository(db *gorm.DB) MedicineRepository {
	return &medicineRepository{db: db}
}

// Create creates a new medicine listing
func (r *medicineRepository) Create(ctx context.Context, medicine *models.Medicine) error {
	return r.db.WithContext(ctx).Create(medicine).Error
}

// GetByID gets a medicine by ID with donor and claimant loaded
func (r *medicineRepository) GetByID(ctx context.Context, id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("ClaimedBy").
		Where("id = ?", id).
		First(&medicine).Error
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

// Update updates a medicine
func (r *medicineRepository) Update(ctx context.Context, medicine *models.Medicine) error {
	return r.db.WithContext(ctx).Save(medicine).Error
}

// ListByStatus lists medicines with the given status, newest first,
// with donor summaries loaded
func (r *medicineRepository) ListByStatus(ctx context.Context, status string) ([]*models.Medicine, error) {
	var medicines []*models.Medicine
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&medicines).Error
	return medicines, err
}

// ListByDonor lists all medicines owned by a donor, newest first
func (r *medicineRepository) ListByDonor(ctx context.Context, donorID uint) ([]*models.Medicine, error) {
	var medicines []*models.Medicine
	err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&medicines).Error
	return medicines, err
}

// ListAll lists all medicines with pagination (admin view)
func (r *medicineRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.Medicine, int64, error) {
	var medicines []*models.Medicine
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Medicine{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("ClaimedBy").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&medicines).Error
	if err != nil {
		return nil, 0, err
	}

	return medicines, total, nil
}

// ListByDonorOrClaimant lists medicines where the user is donor or claimant
func (r *medicineRepository) ListByDonorOrClaimant(ctx context.Context, userID uint) ([]*models.Medicine, error) {
	var medicines []*models.Medicine
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Where("donor_id = ? OR claimed_by_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&medicines).Error
	return medicines, err
}

// TransitionStatus performs a conditional status update. The WHERE clause
// carries the precondition so concurrent transitions cannot both succeed.
func (r *medicineRepository) TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Medicine{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Claim atomically moves an approved listing to claimed and records the claimant
func (r *medicineRepository) Claim(ctx context.Context, id, claimantID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Medicine{}).
		Where("id = ? AND status = ?", id, models.MedicineStatusApproved).
		Updates(map[string]interface{}{
			"status":        models.MedicineStatusClaimed,
			"claimed_by_id": claimantID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RejectExpired rejects pending/approved listings whose expiry date passed
func (r *medicineRepository) RejectExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Medicine{}).
		Where("status IN ? AND expiry_date < ?",
			[]string{models.MedicineStatusPending, models.MedicineStatusApproved},
			time.Now()).
		Update("status", models.MedicineStatusRejected)
	return result.RowsAffected, result.Error
}

// CountByDonor counts listings owned by a donor
func (r *medicineRepository) CountByDonor(ctx context.Context, donorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medicine{}).
		Where("donor_id = ?", donorID).Count(&count).Error
	return count, err
}

// CountClaimedBy counts listings currently claimed by a user
func (r *medicineRepository) CountClaimedBy(ctx context.Context, claimantID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medicine{}).
		Where("claimed_by_id = ? AND status = ?", claimantID, models.MedicineStatusClaimed).
		Count(&count).Error
	return count, err
}

// CountPendingByDonor counts pending listings owned by a donor
func (r *medicineRepository) CountPendingByDonor(ctx context.Context, donorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medicine{}).
		Where("donor_id = ? AND status = ?", donorID, models.MedicineStatusPending).
		Count(&count).Error
	return count, err
}

// CountByStatus counts listings with the given status
func (r *medicineRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Medicine{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

// ListRecent lists the most recently created listings
func (r *medicineRepository) ListRecent(ctx context.Context, limit int) ([]*models.Medicine, error) {
	var medicines []*models.Medicine
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Order("created_at DESC").
		Limit(limit).
		Find(&medicines).Error
	return medicines, err
}
