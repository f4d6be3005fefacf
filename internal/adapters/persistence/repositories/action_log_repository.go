package repositories

import (
	"context"

	"medbridge/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// actionLogRepository implements ActionLogRepository interface
type actionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository creates a new action log repository
func NewActionLogRepository(db *gorm.DB) ActionLogRepository {
	return &actionLogRepository{db: db}
}

// Create appends an action log entry
func (r *actionLogRepository) Create(ctx context.Context, entry *models.ActionLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List lists entries newest first with the acting user loaded
func (r *actionLogRepository) List(ctx context.Context, offset, limit int) ([]*models.ActionLog, int64, error) {
	var entries []*models.ActionLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.ActionLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
