package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/pkg/metrics"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	// maxPage keeps (page-1)*limit from overflowing.
	maxPage = math.MaxInt / maxLimit
)

type MealService struct {
	repo   ports.MealRepository
	logger zerolog.Logger
}

func NewMealService(repo ports.MealRepository, logger zerolog.Logger) *MealService {
	return &MealService{repo: repo, logger: logger}
}

// List returns one page of the catalogue sorted by price.
func (s *MealService) List(ctx context.Context, in ports.ListMealsInput) (*ports.ListMealsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.repo.List(ctx, ports.MealFilter{
		Area:     strings.TrimSpace(in.Area),
		Search:   strings.TrimSpace(in.Search),
		PriceAsc: in.Sort != "desc",
		Skip:     int64(page-1) * int64(limit),
		Limit:    int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	if items == nil {
		items = []*domain.Meal{}
	}

	metrics.MealListingsTotal.Inc()
	return &ports.ListMealsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *MealService) Get(ctx context.Context, id string) (*domain.Meal, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MealService) Create(ctx context.Context, m *domain.Meal) (*domain.Meal, error) {
	if m.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	m.CreatedAt = time.Now().UTC()
	if m.Ingredients == nil {
		m.Ingredients = []string{}
	}
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error().Err(err).Msg("failed to create meal")
		return nil, err
	}
	s.logger.Info().Str("meal_id", m.ID).Str("chef_id", m.ChefID).Msg("meal created")
	return m, nil
}

func (s *MealService) ListByChef(ctx context.Context, email string) ([]*domain.Meal, error) {
	return s.repo.ListByChefEmail(ctx, email)
}

func (s *MealService) Update(ctx context.Context, id string, patch domain.MealPatch) error {
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *MealService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("meal_id", id).Msg("meal deleted")
	return nil
}

// normalizePage applies defaults to non-positive values and caps the limit.
func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page > maxPage {
		page = maxPage
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
