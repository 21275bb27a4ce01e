package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Signup creates an account with role "user". The password is stored as a bcrypt hash.
func (s *UserService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}

	status := domain.UserActive
	switch domain.UserStatus(in.Status) {
	case "", domain.UserActive:
	case domain.UserFraud:
		status = domain.UserFraud
	default:
		return nil, fmt.Errorf("%w: invalid status", domain.ErrInvalidInput)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		Address:      in.Address,
		PasswordHash: string(hash),
		PhotoURL:     in.PhotoURL,
		Status:       status,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	// The unique email index still guards concurrent signups.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// RoleOf never fails for an unknown email; it reports found=false instead.
func (s *UserService) RoleOf(ctx context.Context, email string) (domain.Role, bool, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return user.Role, true, nil
}

// MarkFraud flags the user. Flagging an already flagged user succeeds.
func (s *UserService) MarkFraud(ctx context.Context, id string) error {
	if err := s.repo.MarkFraud(ctx, id); err != nil {
		return err
	}
	s.log.Warn().Str("user_id", id).Msg("user flagged as fraud")
	return nil
}

// normalizeEmail is applied to every email before it is stored or matched,
// since the store compares emails exactly.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
