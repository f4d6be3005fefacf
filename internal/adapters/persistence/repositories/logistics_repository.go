package repositories

import (
	"context"

	"medbridge/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// logisticsRepository implements LogisticsRepository interface
type logisticsRepository struct {
	db *gorm.DB
}

// NewLogisticsRepository creates a new logistics repository
func NewLogisticsRepository(db *gorm.DB) LogisticsRepository {
	return &logisticsRepository{db: db}
}

// Create creates a new logistics entry
func (r *logisticsRepository) Create(ctx context.Context, entry *models.LogisticsEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByMedicineAndVolunteer finds the entry matching both references
func (r *logisticsRepository) GetByMedicineAndVolunteer(ctx context.Context, medicineID, volunteerID uint) (*models.LogisticsEntry, error) {
	var entry models.LogisticsEntry
	err := r.db.WithContext(ctx).
		Where("medicine_id = ? AND volunteer_id = ?", medicineID, volunteerID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update updates a logistics entry
func (r *logisticsRepository) Update(ctx context.Context, entry *models.LogisticsEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// ListByVolunteer lists all entries for a volunteer with medicines expanded
func (r *logisticsRepository) ListByVolunteer(ctx context.Context, volunteerID uint) ([]*models.LogisticsEntry, error) {
	var entries []*models.LogisticsEntry
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Preload("Medicine.Donor").
		Where("volunteer_id = ?", volunteerID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
