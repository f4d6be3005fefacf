package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"medbridge/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes shared by the service tests. They mirror the
// SQL-backed implementations closely enough for transition semantics:
// TransitionStatus and Claim only succeed when the stored status matches
// the precondition.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, role, _ string, offset, limit int) ([]*models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.User
	for _, u := range f.users {
		if role == "" || u.Role == role {
			cp := *u
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeMedicineRepo struct {
	mu        sync.Mutex
	medicines map[uint]*models.Medicine
	nextID    uint
}

func newFakeMedicineRepo() *fakeMedicineRepo {
	return &fakeMedicineRepo{medicines: map[uint]*models.Medicine{}, nextID: 1}
}

func (f *fakeMedicineRepo) Create(_ context.Context, medicine *models.Medicine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	medicine.ID = f.nextID
	f.nextID++
	medicine.CreatedAt = time.Now()
	cp := *medicine
	f.medicines[medicine.ID] = &cp
	return nil
}

func (f *fakeMedicineRepo) GetByID(_ context.Context, id uint) (*models.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMedicineRepo) Update(_ context.Context, medicine *models.Medicine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *medicine
	f.medicines[medicine.ID] = &cp
	return nil
}

func (f *fakeMedicineRepo) ListByStatus(_ context.Context, status string) ([]*models.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Medicine
	for _, m := range f.medicines {
		if m.Status == status {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMedicineRepo) ListByDonor(_ context.Context, donorID uint) ([]*models.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Medicine
	for _, m := range f.medicines {
		if m.DonorID == donorID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMedicineRepo) ListAll(_ context.Context, offset, limit int) ([]*models.Medicine, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.Medicine
	for _, m := range f.medicines {
		cp := *m
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeMedicineRepo) ListByDonorOrClaimant(_ context.Context, userID uint) ([]*models.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Medicine
	for _, m := range f.medicines {
		if m.DonorID == userID || (m.ClaimedByID != nil && *m.ClaimedByID == userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMedicineRepo) TransitionStatus(_ context.Context, id uint, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.medicines[id]
	if !ok || m.Status != from {
		return false, nil
	}
	m.Status = to
	return true, nil
}

func (f *fakeMedicineRepo) Claim(_ context.Context, id, claimantID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.medicines[id]
	if !ok || m.Status != models.MedicineStatusApproved {
		return false, nil
	}
	m.Status = models.MedicineStatusClaimed
	m.ClaimedByID = &claimantID
	return true, nil
}

func (f *fakeMedicineRepo) RejectExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	now := time.Now()
	for _, m := range f.medicines {
		if (m.Status == models.MedicineStatusPending || m.Status == models.MedicineStatusApproved) &&
			m.ExpiryDate.Before(now) {
			m.Status = models.MedicineStatusRejected
			n++
		}
	}
	return n, nil
}

func (f *fakeMedicineRepo) CountByDonor(_ context.Context, donorID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.medicines {
		if m.DonorID == donorID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMedicineRepo) CountClaimedBy(_ context.Context, claimantID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.medicines {
		if m.ClaimedByID != nil && *m.ClaimedByID == claimantID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMedicineRepo) CountPendingByDonor(_ context.Context, donorID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.medicines {
		if m.DonorID == donorID && m.Status == models.MedicineStatusPending {
			n++
		}
	}
	return n, nil
}

func (f *fakeMedicineRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.medicines {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeMedicineRepo) ListRecent(_ context.Context, limit int) ([]*models.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.Medicine
	for _, m := range f.medicines {
		cp := *m
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeLogisticsRepo struct {
	mu      sync.Mutex
	entries map[uint]*models.LogisticsEntry
	nextID  uint

	createErr error
}

func newFakeLogisticsRepo() *fakeLogisticsRepo {
	return &fakeLogisticsRepo{entries: map[uint]*models.LogisticsEntry{}, nextID: 1}
}

func (f *fakeLogisticsRepo) Create(_ context.Context, entry *models.LogisticsEntry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = f.nextID
	f.nextID++
	entry.CreatedAt = time.Now()
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeLogisticsRepo) GetByMedicineAndVolunteer(_ context.Context, medicineID, volunteerID uint) (*models.LogisticsEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.MedicineID == medicineID && e.VolunteerID == volunteerID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLogisticsRepo) Update(_ context.Context, entry *models.LogisticsEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeLogisticsRepo) ListByVolunteer(_ context.Context, volunteerID uint) ([]*models.LogisticsEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.LogisticsEntry
	for _, e := range f.entries {
		if e.VolunteerID == volunteerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeActionLogRepo struct {
	mu      sync.Mutex
	entries []*models.ActionLog

	createErr error
}

func newFakeActionLogRepo() *fakeActionLogRepo {
	return &fakeActionLogRepo{}
}

func (f *fakeActionLogRepo) Create(_ context.Context, entry *models.ActionLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *entry
	cp.ID = uint(len(f.entries) + 1)
	cp.CreatedAt = time.Now()
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeActionLogRepo) List(_ context.Context, offset, limit int) ([]*models.ActionLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := int64(len(f.entries))
	out := make([]*models.ActionLog, len(f.entries))
	for i, e := range f.entries {
		cp := *e
		out[len(f.entries)-1-i] = &cp
	}
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeActionLogRepo) all() []*models.ActionLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.ActionLog, len(f.entries))
	copy(out, f.entries)
	return out
}
