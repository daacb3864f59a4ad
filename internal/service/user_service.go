package service

import (
	"context"
	"strings"

	"plume/internal/models"
	"plume/internal/repository"
	"plume/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account business logic: signup, login, and profile
// updates.
type UserService struct {
	userRepo repository.UserRepository
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID uint
	Bio    *string
	Avatar *string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account. The identifier may be
// a username or an email address.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile updates the caller's own bio and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		user.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Avatar != nil {
		user.Avatar = strings.TrimSpace(*in.Avatar)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
