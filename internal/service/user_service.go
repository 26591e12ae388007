package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type UserRepository interface {
	Insert(ctx context.Context, u *model.User) error
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Save(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
}

type WelcomeMailer interface {
	SendWelcome(ctx context.Context, to, name, password string) error
}

type UserService struct {
	repo   UserRepository
	mailer WelcomeMailer
	log    zerolog.Logger
}

func NewUserService(repo UserRepository, mailer WelcomeMailer, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, mailer: mailer, log: log}
}

type CreateUserInput struct {
	Email    string         `json:"email"`
	Name     string         `json:"name"`
	Phone    string         `json:"phone"`
	Role     model.UserRole `json:"role"`
	Password string         `json:"password"`
}

// Create registers a new account. The email must be unused; the welcome
// email is best-effort and never fails the call.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateRequired(map[string]string{
		"email":    email,
		"name":     input.Name,
		"password": input.Password,
	}); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a user with email %s already exists", ErrDuplicate, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleTechnician
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, user.Email, user.Name, input.Password); err != nil {
			s.log.Warn().Err(err).Str("email", user.Email).Msg("welcome email failed")
		}
	}
	return user, nil
}

type UpdateUserInput struct {
	Email    *string         `json:"email"`
	Name     *string         `json:"name"`
	Phone    *string         `json:"phone"`
	Role     *model.UserRole `json:"role"`
	Password *string         `json:"password"`
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
		}
		if email != user.Email {
			existing, err := s.repo.GetByEmail(ctx, email)
			if err == nil && existing.ID != id {
				return nil, fmt.Errorf("%w: a user with email %s already exists", ErrDuplicate, email)
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, mapNotFound(err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// ResetPassword lets a signed-in user change their own password. The current
// password must match before the new one is stored.
func (s *UserService) ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if err := validateRequired(map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}); err != nil {
		return err
	}

	user, err := s.Authenticate(ctx, email, currentPassword)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return fmt.Errorf("%w: mot de passe actuel incorrect", ErrValidation)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return mapNotFound(s.repo.Save(ctx, user))
}

// Authenticate checks credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
	}
	return user, nil
}
