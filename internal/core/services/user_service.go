package services

import (
	"context"
	"errors"

	"medbridge/internal/adapters/persistence/models"
	"medbridge/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// User management errors
var (
	ErrBlockUnchanged      = errors.New("user already in requested block state")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// UserService handles administrative user management
type UserService struct {
	userRepo repositories.UserRepository
	audit    *AuditService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, audit *AuditService) *UserService {
	return &UserService{
		userRepo: userRepo,
		audit:    audit,
	}
}

// ListUsers lists users filtered by role and sorted, credential excluded
func (s *UserService) ListUsers(ctx context.Context, role, sort string, offset, limit int) ([]*models.UserResponse, int64, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, 0, ErrInvalidRole
	}

	users, total, err := s.userRepo.List(ctx, role, sort, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, total, nil
}

// AdminUpdateUserInput represents an administrative user patch; nil fields
// are untouched
type AdminUpdateUserInput struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	Verified  *bool   `json:"verified"`
	IsBlocked *bool   `json:"is_blocked"`
}

// UpdateUser patches user fields and records a changed-keys diff in the
// audit log. A patch that changes nothing produces no entry.
func (s *UserService) UpdateUser(ctx context.Context, id, adminID uint, input *AdminUpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if id == adminID && input.Role != nil && *input.Role != user.Role {
		return nil, ErrCannotChangeOwnRole
	}

	changes := map[string]FieldChange{}

	if input.Name != nil && *input.Name != "" && *input.Name != user.Name {
		changes["name"] = FieldChange{Before: user.Name, After: *input.Name}
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != "" && *input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		changes["email"] = FieldChange{Before: user.Email, After: *input.Email}
		user.Email = *input.Email
	}
	if input.Role != nil && *input.Role != user.Role {
		if !models.ValidRole(*input.Role) {
			return nil, ErrInvalidRole
		}
		changes["role"] = FieldChange{Before: user.Role, After: *input.Role}
		user.Role = *input.Role
	}
	if input.Verified != nil && *input.Verified != user.Verified {
		changes["verified"] = FieldChange{Before: user.Verified, After: *input.Verified}
		user.Verified = *input.Verified
	}
	if input.IsBlocked != nil && *input.IsBlocked != user.IsBlocked {
		changes["is_blocked"] = FieldChange{Before: user.IsBlocked, After: *input.IsBlocked}
		user.IsBlocked = *input.IsBlocked
	}

	if len(changes) == 0 {
		return user.ToResponse(), nil
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(adminID, models.ActionUpdateUser, map[string]interface{}{
		"user_id": user.ID,
		"changes": changes,
	})

	return user.ToResponse(), nil
}

// SetBlocked blocks or unblocks a user. Setting the current state again is
// rejected and leaves no audit entry.
func (s *UserService) SetBlocked(ctx context.Context, id, adminID uint, isBlocked bool) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.IsBlocked == isBlocked {
		return nil, ErrBlockUnchanged
	}

	user.IsBlocked = isBlocked
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(adminID, models.ActionBlockUser, map[string]interface{}{
		"blocked_user_id": user.ID,
		"is_blocked":      isBlocked,
	})

	return user.ToResponse(), nil
}
