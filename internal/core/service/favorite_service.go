package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

type FavoriteService struct {
	repo ports.FavoriteRepository
	log  zerolog.Logger
}

func NewFavoriteService(repo ports.FavoriteRepository, log zerolog.Logger) *FavoriteService {
	return &FavoriteService{repo: repo, log: log}
}

// Add saves a meal for a user. Saving the same meal twice yields domain.ErrAlreadyFavorite.
func (s *FavoriteService) Add(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error) {
	f.AddedTime = time.Now().UTC()
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Debug().Str("user_email", f.UserEmail).Str("meal_id", f.MealID).Msg("favorite added")
	return f, nil
}

func (s *FavoriteService) ForUser(ctx context.Context, email string) ([]*domain.Favorite, error) {
	return s.repo.ListByUser(ctx, email)
}

func (s *FavoriteService) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
