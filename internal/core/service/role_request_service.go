package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/pkg/metrics"
)

// maxChefIDAttempts bounds regeneration when a chef id collides with an existing one.
const maxChefIDAttempts = 5

// RoleRequestService implements submission and review of role upgrades.
type RoleRequestService struct {
	repo      ports.RoleRequestRepository
	newChefID func() string
	now       func() time.Time
	log       zerolog.Logger
}

func NewRoleRequestService(repo ports.RoleRequestRepository, log zerolog.Logger) *RoleRequestService {
	return &RoleRequestService{
		repo:      repo,
		newChefID: domain.NewChefID,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

// Submit stores a new pending request. Unknown request types are rejected
// before anything is written.
func (s *RoleRequestService) Submit(ctx context.Context, in ports.SubmitRoleRequestInput) (*domain.RoleRequest, error) {
	rt := domain.RequestType(in.RequestType)
	if !rt.Valid() {
		return nil, fmt.Errorf("%w: invalid request type", domain.ErrInvalidInput)
	}

	req := &domain.RoleRequest{
		UserID:        in.UserID,
		UserName:      in.UserName,
		UserEmail:     normalizeEmail(in.UserEmail),
		RequestType:   rt,
		RequestStatus: domain.RequestPending,
		RequestTime:   s.now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("submit role request: %w", err)
	}

	metrics.RoleRequestsTotal.WithLabelValues(string(rt), string(domain.RequestPending)).Inc()
	s.log.Info().
		Str("request_id", req.ID).
		Str("user_email", req.UserEmail).
		Str("request_type", string(rt)).
		Msg("role request submitted")
	return req, nil
}

func (s *RoleRequestService) List(ctx context.Context) ([]*domain.RoleRequest, error) {
	return s.repo.ListNewestFirst(ctx)
}

// Approve grants the requested role. The request type and target user come from
// the stored request; caller-supplied values only serve as a consistency check.
func (s *RoleRequestService) Approve(ctx context.Context, in ports.ApproveRoleRequestInput) (*domain.RoleGrant, error) {
	req, err := s.repo.FindByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if !req.RequestStatus.CanTransitionTo(domain.RequestApproved) {
		return nil, domain.ErrRequestNotPending
	}
	if in.RequestType != "" && domain.RequestType(in.RequestType) != req.RequestType {
		return nil, fmt.Errorf("%w: request type does not match the stored request", domain.ErrInvalidInput)
	}
	if in.UserEmail != "" && !strings.EqualFold(in.UserEmail, req.UserEmail) {
		return nil, fmt.Errorf("%w: user email does not match the stored request", domain.ErrInvalidInput)
	}

	var grant domain.RoleGrant
	for attempt := 1; ; attempt++ {
		grant, err = domain.GrantFor(req.RequestType, s.newChefID)
		if err != nil {
			return nil, err
		}
		err = s.repo.Approve(ctx, req.ID, normalizeEmail(req.UserEmail), grant)
		if !errors.Is(err, domain.ErrDuplicateChef) || attempt == maxChefIDAttempts {
			break
		}
		s.log.Warn().Str("chef_id", grant.ChefID).Int("attempt", attempt).Msg("chef id collision, regenerating")
	}
	if err != nil {
		return nil, fmt.Errorf("approve role request: %w", err)
	}

	metrics.RoleRequestsTotal.WithLabelValues(string(req.RequestType), string(domain.RequestApproved)).Inc()
	s.log.Info().
		Str("request_id", req.ID).
		Str("user_email", req.UserEmail).
		Str("role", string(grant.Role)).
		Str("chef_id", grant.ChefID).
		Msg("role request approved")
	return &grant, nil
}

// Reject marks a pending request rejected without touching the user.
func (s *RoleRequestService) Reject(ctx context.Context, requestID string) error {
	req, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.RequestStatus.CanTransitionTo(domain.RequestRejected) {
		return domain.ErrRequestNotPending
	}
	if err := s.repo.Reject(ctx, req.ID); err != nil {
		return fmt.Errorf("reject role request: %w", err)
	}

	metrics.RoleRequestsTotal.WithLabelValues(string(req.RequestType), string(domain.RequestRejected)).Inc()
	s.log.Info().Str("request_id", req.ID).Str("user_email", req.UserEmail).Msg("role request rejected")
	return nil
}
