package services

import (
	"context"
	"testing"
	"time"

	"medbridge/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMedicineExpiring(t *testing.T, repo *fakeMedicineRepo, status string, expiry time.Time) *models.Medicine {
	t.Helper()
	m := &models.Medicine{
		Name:       "Aspirin",
		ExpiryDate: expiry,
		Quantity:   10,
		DonorID:    1,
		Status:     status,
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestSweepExpired_RejectsOnlyExpiredOpenListings(t *testing.T) {
	repo := newFakeMedicineRepo()
	svc := NewCronService(repo)

	past := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(1, 0, 0)

	expiredPending := seedMedicineExpiring(t, repo, models.MedicineStatusPending, past)
	expiredApproved := seedMedicineExpiring(t, repo, models.MedicineStatusApproved, past)
	expiredClaimed := seedMedicineExpiring(t, repo, models.MedicineStatusClaimed, past)
	freshApproved := seedMedicineExpiring(t, repo, models.MedicineStatusApproved, future)

	svc.sweepExpired()

	for _, tc := range []struct {
		name string
		id   uint
		want string
	}{
		{"expired pending rejected", expiredPending.ID, models.MedicineStatusRejected},
		{"expired approved rejected", expiredApproved.ID, models.MedicineStatusRejected},
		{"claimed untouched", expiredClaimed.ID, models.MedicineStatusClaimed},
		{"unexpired untouched", freshApproved.ID, models.MedicineStatusApproved},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m, err := repo.GetByID(context.Background(), tc.id)
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.Status)
		})
	}
}

func TestSweepExpired_Idempotent(t *testing.T) {
	repo := newFakeMedicineRepo()
	svc := NewCronService(repo)

	m := seedMedicineExpiring(t, repo, models.MedicineStatusPending, time.Now().AddDate(0, 0, -7))

	svc.sweepExpired()
	svc.sweepExpired()

	stored, err := repo.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MedicineStatusRejected, stored.Status)
}
