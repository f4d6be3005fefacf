package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User roles
const (
	RoleDonor     = "donor"
	RoleNGO       = "ngo"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleNGO, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'donor';index" json:"role"`
	Contact   string         `gorm:"size:100" json:"contact"`
	Verified  bool           `gorm:"default:false" json:"verified"`
	IsBlocked bool           `gorm:"default:false" json:"is_blocked"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Contact   string    `json:"contact,omitempty"`
	Verified  bool      `json:"verified"`
	IsBlocked bool      `json:"is_blocked"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Contact:   u.Contact,
		Verified:  u.Verified,
		IsBlocked: u.IsBlocked,
		CreatedAt: u.CreatedAt,
	}
}

// UserSummary is the donor/claimant view embedded in medicine responses.
// Never carries the credential.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// ============================================================
// Medicines
// ============================================================

// Medicine statuses
const (
	MedicineStatusPending   = "pending"
	MedicineStatusApproved  = "approved"
	MedicineStatusClaimed   = "claimed"
	MedicineStatusPickedUp  = "picked_up"
	MedicineStatusDelivered = "delivered"
	MedicineStatusRejected  = "rejected"
)

// ValidMedicineStatus reports whether status is one of the known statuses.
func ValidMedicineStatus(status string) bool {
	switch status {
	case MedicineStatusPending, MedicineStatusApproved, MedicineStatusClaimed,
		MedicineStatusPickedUp, MedicineStatusDelivered, MedicineStatusRejected:
		return true
	}
	return false
}

// Medicine represents medicines table (one donation listing)
type Medicine struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	ExpiryDate  time.Time      `gorm:"type:date;not null" json:"expiry_date"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	PhotoURL    string         `gorm:"size:255" json:"photo_url"`
	DonorID     uint           `gorm:"not null;index" json:"donor_id"`
	Status      string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ClaimedByID *uint          `gorm:"index" json:"claimed_by_id"`
	Verified    bool           `gorm:"default:false" json:"verified"`
	IsBlocked   bool           `gorm:"default:false" json:"is_blocked"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Donor     *User `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	ClaimedBy *User `gorm:"foreignKey:ClaimedByID" json:"claimed_by,omitempty"`
}

func (Medicine) TableName() string {
	return "medicines"
}

// IsTerminal reports whether the listing is in a terminal status.
func (m *Medicine) IsTerminal() bool {
	return m.Status == MedicineStatusRejected || m.Status == MedicineStatusDelivered
}

// MedicineResponse DTO
type MedicineResponse struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	ExpiryDate time.Time    `json:"expiry_date"`
	Quantity   int          `json:"quantity"`
	PhotoURL   string       `json:"photo_url,omitempty"`
	Status     string       `json:"status"`
	Verified   bool         `json:"verified"`
	IsBlocked  bool         `json:"is_blocked"`
	Donor      *UserSummary `json:"donor,omitempty"`
	ClaimedBy  *UserSummary `json:"claimed_by,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (m *Medicine) ToResponse() *MedicineResponse {
	resp := &MedicineResponse{
		ID:         m.ID,
		Name:       m.Name,
		ExpiryDate: m.ExpiryDate,
		Quantity:   m.Quantity,
		PhotoURL:   m.PhotoURL,
		Status:     m.Status,
		Verified:   m.Verified,
		IsBlocked:  m.IsBlocked,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}

	if m.Donor != nil {
		resp.Donor = m.Donor.ToSummary()
	}
	if m.ClaimedBy != nil {
		resp.ClaimedBy = m.ClaimedBy.ToSummary()
	}

	return resp
}

// ============================================================
// Logistics
// ============================================================

// Logistics entry statuses
const (
	LogisticsStatusPending   = "pending"
	LogisticsStatusPicked    = "picked"
	LogisticsStatusDelivered = "delivered"
)

// LogisticsEntry represents logistics_entries table (one pickup/delivery
// assignment). The paired medicine's status is authoritative; the entry
// tracks the volunteer's side of the assignment.
type LogisticsEntry struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	MedicineID   uint       `gorm:"not null;index" json:"medicine_id"`
	VolunteerID  uint       `gorm:"not null;index" json:"volunteer_id"`
	PickupDate   *time.Time `json:"pickup_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Status       string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Medicine  *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`
	Volunteer *User     `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
}

func (LogisticsEntry) TableName() string {
	return "logistics_entries"
}

// LogisticsResponse DTO
type LogisticsResponse struct {
	ID           uint              `json:"id"`
	MedicineID   uint              `json:"medicine_id"`
	VolunteerID  uint              `json:"volunteer_id"`
	PickupDate   *time.Time        `json:"pickup_date"`
	DeliveryDate *time.Time        `json:"delivery_date"`
	Status       string            `json:"status"`
	Medicine     *MedicineResponse `json:"medicine,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (e *LogisticsEntry) ToResponse() *LogisticsResponse {
	resp := &LogisticsResponse{
		ID:           e.ID,
		MedicineID:   e.MedicineID,
		VolunteerID:  e.VolunteerID,
		PickupDate:   e.PickupDate,
		DeliveryDate: e.DeliveryDate,
		Status:       e.Status,
		CreatedAt:    e.CreatedAt,
	}

	if e.Medicine != nil {
		resp.Medicine = e.Medicine.ToResponse()
	}

	return resp
}

// ============================================================
// Action log
// ============================================================

// Audit action labels
const (
	ActionUpdateUser     = "update_user"
	ActionBlockUser      = "block_user"
	ActionUpdateMedicine = "update_medicine"
)

// ActionLog represents action_logs table. Append-only; rows are never
// updated or deleted.
type ActionLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ActionLog) TableName() string {
	return "action_logs"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Medicine{},
		&LogisticsEntry{},
		&ActionLog{},
	)
}
