package repositories

import (
	"context"

	"medbridge/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, role, sort string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// MedicineRepository defines medicine repository interface
type MedicineRepository interface {
	Create(ctx context.Context, medicine *models.Medicine) error
	GetByID(ctx context.Context, id uint) (*models.Medicine, error)
	Update(ctx context.Context, medicine *models.Medicine) error
	ListByStatus(ctx context.Context, status string) ([]*models.Medicine, error)
	ListByDonor(ctx context.Context, donorID uint) ([]*models.Medicine, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Medicine, int64, error)
	ListByDonorOrClaimant(ctx context.Context, userID uint) ([]*models.Medicine, error)

	// TransitionStatus performs a conditional status update: the row moves
	// from "from" to "to" only if its status still equals "from". Returns
	// false when the precondition no longer holds.
	TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error)

	// Claim atomically moves an approved listing to claimed, recording the
	// claimant. Returns false when the listing is absent or not approved.
	Claim(ctx context.Context, id, claimantID uint) (bool, error)

	// RejectExpired moves pending/approved listings past their expiry date
	// to rejected. Returns the number of affected rows.
	RejectExpired(ctx context.Context) (int64, error)

	CountByDonor(ctx context.Context, donorID uint) (int64, error)
	CountClaimedBy(ctx context.Context, claimantID uint) (int64, error)
	CountPendingByDonor(ctx context.Context, donorID uint) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Medicine, error)
}

// LogisticsRepository defines logistics repository interface
type LogisticsRepository interface {
	Create(ctx context.Context, entry *models.LogisticsEntry) error
	GetByMedicineAndVolunteer(ctx context.Context, medicineID, volunteerID uint) (*models.LogisticsEntry, error)
	Update(ctx context.Context, entry *models.LogisticsEntry) error
	ListByVolunteer(ctx context.Context, volunteerID uint) ([]*models.LogisticsEntry, error)
}

// ActionLogRepository defines action log repository interface.
// Append and read only; no update or delete.
type ActionLogRepository interface {
	Create(ctx context.Context, entry *models.ActionLog) error
	List(ctx context.Context, offset, limit int) ([]*models.ActionLog, int64, error)
}
