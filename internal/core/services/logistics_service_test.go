package services

import (
	"context"
	"errors"
	"testing"

	"medbridge/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogisticsService(t *testing.T) (*LogisticsService, *fakeLogisticsRepo, *fakeMedicineRepo) {
	t.Helper()
	logistics := newFakeLogisticsRepo()
	medicines := newFakeMedicineRepo()
	return NewLogisticsService(logistics, medicines), logistics, medicines
}

func TestClaimPickup_TransitionsMedicine(t *testing.T) {
	svc, _, medicines := newLogisticsService(t)
	m := seedMedicine(t, medicines, 1, models.MedicineStatusClaimed)

	entry, err := svc.ClaimPickup(context.Background(), m.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, models.LogisticsStatusPicked, entry.Status)
	assert.Equal(t, uint(5), entry.VolunteerID)
	require.NotNil(t, entry.PickupDate)
	assert.Nil(t, entry.DeliveryDate)

	stored, err := medicines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MedicineStatusPickedUp, stored.Status)
}

func TestClaimPickup_RequiresClaimedStatus(t *testing.T) {
	svc, logistics, medicines := newLogisticsService(t)
	approved := seedMedicine(t, medicines, 1, models.MedicineStatusApproved)

	_, err := svc.ClaimPickup(context.Background(), approved.ID, 5)
	assert.ErrorIs(t, err, ErrNotReadyForPickup)

	_, err = svc.ClaimPickup(context.Background(), 999, 5)
	assert.ErrorIs(t, err, ErrNotReadyForPickup)

	entries, err := logistics.ListByVolunteer(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClaimPickup_SecondVolunteerLoses(t *testing.T) {
	svc, _, medicines := newLogisticsService(t)
	m := seedMedicine(t, medicines, 1, models.MedicineStatusClaimed)

	_, err := svc.ClaimPickup(context.Background(), m.ID, 5)
	require.NoError(t, err)

	_, err = svc.ClaimPickup(context.Background(), m.ID, 6)
	assert.ErrorIs(t, err, ErrNotReadyForPickup)
}

func TestClaimPickup_EntryFailureRollsBackMedicine(t *testing.T) {
	svc, logistics, medicines := newLogisticsService(t)
	m := seedMedicine(t, medicines, 1, models.MedicineStatusClaimed)
	logistics.createErr = errors.New("db down")

	_, err := svc.ClaimPickup(context.Background(), m.ID, 5)
	require.Error(t, err)

	stored, err := medicines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MedicineStatusClaimed, stored.Status)

	// A later pickup must still be able to win
	logistics.createErr = nil
	entry, err := svc.ClaimPickup(context.Background(), m.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, uint(6), entry.VolunteerID)
}

func TestMarkDelivered_CompletesAssignment(t *testing.T) {
	svc, _, medicines := newLogisticsService(t)
	m := seedMedicine(t, medicines, 1, models.MedicineStatusClaimed)

	_, err := svc.ClaimPickup(context.Background(), m.ID, 5)
	require.NoError(t, err)

	entry, err := svc.MarkDelivered(context.Background(), m.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, models.LogisticsStatusDelivered, entry.Status)
	require.NotNil(t, entry.DeliveryDate)

	stored, err := medicines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MedicineStatusDelivered, stored.Status)
}

func TestMarkDelivered_OtherVolunteerNotFound(t *testing.T) {
	svc, _, medicines := newLogisticsService(t)
	m := seedMedicine(t, medicines, 1, models.MedicineStatusClaimed)

	_, err := svc.ClaimPickup(context.Background(), m.ID, 5)
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), m.ID, 6)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	stored, err := medicines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MedicineStatusPickedUp, stored.Status)
}

func TestMarkDelivered_Twice(t *testing.T) {
	svc, _, medicines := newLogisticsService(t)
	m := seedMedicine(t, medicines, 1, models.MedicineStatusClaimed)

	_, err := svc.ClaimPickup(context.Background(), m.ID, 5)
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), m.ID, 5)
	require.NoError(t, err)

	_, err = svc.MarkDelivered(context.Background(), m.ID, 5)
	assert.ErrorIs(t, err, ErrNotPickedUp)
}

func TestLogisticsListMine(t *testing.T) {
	svc, _, medicines := newLogisticsService(t)
	first := seedMedicine(t, medicines, 1, models.MedicineStatusClaimed)
	second := seedMedicine(t, medicines, 2, models.MedicineStatusClaimed)

	_, err := svc.ClaimPickup(context.Background(), first.ID, 5)
	require.NoError(t, err)
	_, err = svc.ClaimPickup(context.Background(), second.ID, 6)
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].MedicineID)
}
