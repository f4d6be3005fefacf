package services

import (
	"context"
	"testing"

	"medbridge/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNGODashboard_CountsAndUnion(t *testing.T) {
	medicines := newFakeMedicineRepo()
	users := newFakeUserRepo()
	svc := NewDashboardService(medicines, users)

	// Listings donated by user 1
	seedMedicine(t, medicines, 1, models.MedicineStatusPending)
	seedMedicine(t, medicines, 1, models.MedicineStatusApproved)

	// Listing donated by someone else, claimed by user 1
	claimed := seedMedicine(t, medicines, 2, models.MedicineStatusApproved)
	ok, err := medicines.Claim(context.Background(), claimed.ID, 1)
	require.NoError(t, err)
	require.True(t, ok)

	// Unrelated listing
	seedMedicine(t, medicines, 3, models.MedicineStatusApproved)

	data, err := svc.GetNGODashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.TotalDonatedMedicines)
	assert.Equal(t, int64(1), data.TotalClaimedMedicines)
	assert.Equal(t, int64(1), data.PendingRequests)
	assert.Len(t, data.Medicines, 3)
}

func TestAdminDashboard_Counts(t *testing.T) {
	medicines := newFakeMedicineRepo()
	users := newFakeUserRepo()
	svc := NewDashboardService(medicines, users)

	seedUser(t, users, "d1@example.com", "supersecret", models.RoleDonor)
	seedUser(t, users, "d2@example.com", "supersecret", models.RoleDonor)
	seedUser(t, users, "n1@example.com", "supersecret", models.RoleNGO)
	seedUser(t, users, "v1@example.com", "supersecret", models.RoleVolunteer)
	seedUser(t, users, "a1@example.com", "supersecret", models.RoleAdmin)

	seedMedicine(t, medicines, 1, models.MedicineStatusPending)
	seedMedicine(t, medicines, 1, models.MedicineStatusApproved)
	seedMedicine(t, medicines, 2, models.MedicineStatusDelivered)
	seedMedicine(t, medicines, 2, models.MedicineStatusRejected)

	data, err := svc.GetAdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.TotalDonors)
	assert.Equal(t, int64(1), data.TotalNGOs)
	assert.Equal(t, int64(1), data.TotalVolunteers)
	assert.Equal(t, int64(1), data.PendingMedicines)
	assert.Equal(t, int64(1), data.ApprovedMedicines)
	assert.Equal(t, int64(0), data.ClaimedMedicines)
	assert.Equal(t, int64(1), data.DeliveredMedicines)
	assert.Equal(t, int64(1), data.RejectedMedicines)
	assert.Len(t, data.RecentMedicines, 4)
}
