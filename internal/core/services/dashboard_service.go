package services

import (
	"context"

	"medbridge/internal/adapters/persistence/models"
	"medbridge/internal/adapters/persistence/repositories"
)

// DashboardService builds read-only aggregate views. Purely derived; no
// independent state.
type DashboardService struct {
	medicineRepo repositories.MedicineRepository
	userRepo     repositories.UserRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	medicineRepo repositories.MedicineRepository,
	userRepo repositories.UserRepository,
) *DashboardService {
	return &DashboardService{
		medicineRepo: medicineRepo,
		userRepo:     userRepo,
	}
}

// ============================================================
// NGO Dashboard
// ============================================================

// NGODashboardData represents the NGO aggregate view
type NGODashboardData struct {
	TotalDonatedMedicines int64                      `json:"total_donated_medicines"`
	TotalClaimedMedicines int64                      `json:"total_claimed_medicines"`
	PendingRequests       int64                      `json:"pending_requests"`
	Medicines             []*models.MedicineResponse `json:"medicines"`
}

// GetNGODashboard returns counts plus the union of listings where the
// caller is donor or claimant
func (s *DashboardService) GetNGODashboard(ctx context.Context, userID uint) (*NGODashboardData, error) {
	data := &NGODashboardData{}
	var err error

	if data.TotalDonatedMedicines, err = s.medicineRepo.CountByDonor(ctx, userID); err != nil {
		return nil, err
	}
	if data.TotalClaimedMedicines, err = s.medicineRepo.CountClaimedBy(ctx, userID); err != nil {
		return nil, err
	}
	if data.PendingRequests, err = s.medicineRepo.CountPendingByDonor(ctx, userID); err != nil {
		return nil, err
	}

	medicines, err := s.medicineRepo.ListByDonorOrClaimant(ctx, userID)
	if err != nil {
		return nil, err
	}
	data.Medicines = toResponses(medicines)

	return data, nil
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents the admin aggregate view
type AdminDashboardData struct {
	// User statistics
	TotalDonors     int64 `json:"total_donors"`
	TotalNGOs       int64 `json:"total_ngos"`
	TotalVolunteers int64 `json:"total_volunteers"`

	// Medicine statistics
	PendingMedicines   int64 `json:"pending_medicines"`
	ApprovedMedicines  int64 `json:"approved_medicines"`
	ClaimedMedicines   int64 `json:"claimed_medicines"`
	DeliveredMedicines int64 `json:"delivered_medicines"`
	RejectedMedicines  int64 `json:"rejected_medicines"`

	// Recent activity
	RecentMedicines []*models.MedicineResponse `json:"recent_medicines"`
}

// GetAdminDashboard returns system-wide counts and recent listings
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}
	var err error

	if data.TotalDonors, err = s.userRepo.CountByRole(ctx, models.RoleDonor); err != nil {
		return nil, err
	}
	if data.TotalNGOs, err = s.userRepo.CountByRole(ctx, models.RoleNGO); err != nil {
		return nil, err
	}
	if data.TotalVolunteers, err = s.userRepo.CountByRole(ctx, models.RoleVolunteer); err != nil {
		return nil, err
	}

	statusCounts := []struct {
		status string
		dest   *int64
	}{
		{models.MedicineStatusPending, &data.PendingMedicines},
		{models.MedicineStatusApproved, &data.ApprovedMedicines},
		{models.MedicineStatusClaimed, &data.ClaimedMedicines},
		{models.MedicineStatusDelivered, &data.DeliveredMedicines},
		{models.MedicineStatusRejected, &data.RejectedMedicines},
	}
	for _, sc := range statusCounts {
		if *sc.dest, err = s.medicineRepo.CountByStatus(ctx, sc.status); err != nil {
			return nil, err
		}
	}

	recent, err := s.medicineRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}
	data.RecentMedicines = toResponses(recent)

	return data, nil
}
