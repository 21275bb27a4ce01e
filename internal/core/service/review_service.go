package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

// latestReviews is how many reviews the home page shows.
const latestReviews = 3

type ReviewService struct {
	repo    ports.ReviewRepository
	ratings ports.RatingQueue
	log     zerolog.Logger
}

// NewReviewService wires the review use cases. ratings may be nil, in which
// case meal ratings are not refreshed.
func NewReviewService(repo ports.ReviewRepository, ratings ports.RatingQueue, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, ratings: ratings, log: log}
}

func (s *ReviewService) Add(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	if err := validRating(r.Rating); err != nil {
		return nil, err
	}
	r.Date = time.Now().UTC()
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info().Str("review_id", r.ID).Str("food_id", r.FoodID).Int("rating", r.Rating).Msg("review added")
	s.refreshRating(r.FoodID)
	return r, nil
}

func (s *ReviewService) ForFood(ctx context.Context, foodID string) ([]*domain.Review, error) {
	return s.repo.ListByFood(ctx, foodID)
}

func (s *ReviewService) ByReviewer(ctx context.Context, email string) ([]*domain.Review, error) {
	return s.repo.ListByReviewer(ctx, email)
}

func (s *ReviewService) Latest(ctx context.Context) ([]*domain.Review, error) {
	return s.repo.Latest(ctx, latestReviews)
}

func (s *ReviewService) Update(ctx context.Context, id string, rating int, comment string) error {
	if err := validRating(rating); err != nil {
		return err
	}
	r, err := s.repo.Update(ctx, id, rating, comment)
	if err != nil {
		return err
	}
	s.refreshRating(r.FoodID)
	return nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	r, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.refreshRating(r.FoodID)
	return nil
}

func (s *ReviewService) refreshRating(foodID string) {
	if s.ratings == nil || foodID == "" {
		return
	}
	s.ratings.Enqueue(foodID)
}

func validRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	return nil
}
