package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

// RatingService derives a meal's rating from its reviews.
type RatingService struct {
	reviews ports.ReviewRepository
	meals   ports.MealRepository
	log     zerolog.Logger
}

func NewRatingService(reviews ports.ReviewRepository, meals ports.MealRepository, log zerolog.Logger) *RatingService {
	return &RatingService{reviews: reviews, meals: meals, log: log}
}

// Recalculate stores the mean review rating, rounded to one decimal, on the
// meal. A meal without reviews gets 0. Reviews may reference meals that no
// longer exist; that is logged and not treated as a failure.
func (s *RatingService) Recalculate(ctx context.Context, foodID string) error {
	avg, count, err := s.reviews.AverageRating(ctx, foodID)
	if err != nil {
		return fmt.Errorf("recalculate rating: %w", err)
	}
	rating := roundRating(avg)
	if count == 0 {
		rating = 0
	}

	if err := s.meals.SetRating(ctx, foodID, rating); err != nil {
		if errors.Is(err, domain.ErrMealNotFound) {
			s.log.Debug().Str("food_id", foodID).Msg("rating skipped, meal not found")
			return nil
		}
		return fmt.Errorf("recalculate rating: %w", err)
	}

	s.log.Debug().Str("food_id", foodID).Float64("rating", rating).Int64("reviews", count).Msg("meal rating updated")
	return nil
}

func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
