package services

import (
	"context"
	"errors"
	"log"

	"medbridge/internal/adapters/persistence/models"
	"medbridge/internal/adapters/persistence/repositories"
	"medbridge/internal/config"
	"medbridge/internal/pkg/jwt"
	"medbridge/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserBlocked        = errors.New("user account is blocked")
	ErrInvalidRole        = errors.New("invalid role")
	ErrWeakPassword       = errors.New("password too short")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Contact  string `json:"contact"`
}

// Register registers a new user
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) error {
	// Self-service registration never creates admins
	role := input.Role
	if role == "" {
		role = models.RoleDonor
	}
	if !models.ValidRole(role) || role == models.RoleAdmin {
		return ErrInvalidRole
	}

	if !password.Validate(input.Password) {
		return ErrWeakPassword
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     role,
		Contact:  input.Contact,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.Role)
	return nil
}

// Login authenticates a user and issues a bearer token.
// The same error is returned for an unknown email and a wrong password
// so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(plaintext, user.Password) {
		return "", ErrInvalidCredentials
	}

	if user.IsBlocked {
		return "", ErrUserBlocked
	}

	token, err := jwt.Generate(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.TokenDays)
	if err != nil {
		return "", err
	}

	log.Printf("✅ User logged in: %s", user.Email)
	return token, nil
}

// GetProfile returns the caller's own profile sans credential
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfileInput represents profile update input; nil fields are untouched
type UpdateProfileInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Contact  *string `json:"contact"`
	Password *string `json:"password"`
}

// UpdateProfile updates the caller's mutable self-service fields.
// A password change re-hashes; updates to other fields leave the stored
// credential untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
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
		user.Email = *input.Email
	}

	if input.Contact != nil {
		user.Contact = *input.Contact
	}

	if input.Password != nil && *input.Password != "" {
		if !password.Validate(*input.Password) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}
