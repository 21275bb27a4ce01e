package ports

import (
	"context"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
)

// MealFilter carries the query parameters for the meal catalogue.
type MealFilter struct {
	Area     string // optional: case-insensitive substring on deliveryArea
	Search   string // optional: case-insensitive substring on foodName
	PriceAsc bool
	Skip     int64
	Limit    int64
}

// MealRepository persists meals.
type MealRepository interface {
	Create(ctx context.Context, m *domain.Meal) error
	FindByID(ctx context.Context, id string) (*domain.Meal, error)
	// List returns a page of meals matching filter and the total match count.
	List(ctx context.Context, filter MealFilter) ([]*domain.Meal, int64, error)
	ListByChefEmail(ctx context.Context, email string) ([]*domain.Meal, error)
	Update(ctx context.Context, id string, patch domain.MealPatch) error
	// SetRating overwrites the derived average rating.
	SetRating(ctx context.Context, id string, rating float64) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository persists marketplace accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// MarkFraud sets status=fraud. Returns domain.ErrUserNotFound when no user matches.
	MarkFraud(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository persists meal reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	ListByFood(ctx context.Context, foodID string) ([]*domain.Review, error)
	ListByReviewer(ctx context.Context, email string) ([]*domain.Review, error)
	Latest(ctx context.Context, n int64) ([]*domain.Review, error)
	// Update and Delete return the affected review so callers know its meal.
	Update(ctx context.Context, id string, rating int, comment string) (*domain.Review, error)
	Delete(ctx context.Context, id string) (*domain.Review, error)
	// AverageRating returns the mean rating of a meal's reviews and how many there are.
	AverageRating(ctx context.Context, foodID string) (float64, int64, error)
}

// FavoriteRepository persists favorites.
type FavoriteRepository interface {
	// Create returns domain.ErrAlreadyFavorite when the user already saved the meal.
	Create(ctx context.Context, f *domain.Favorite) error
	ListByUser(ctx context.Context, email string) ([]*domain.Favorite, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, email string) ([]*domain.Order, error)
	ListByChef(ctx context.Context, chefID string) ([]*domain.Order, error)
	// UpdateStatus moves an order from one status to another. It fails with
	// domain.ErrInvalidTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
	MarkPaid(ctx context.Context, id string, info map[string]any) error
	CountByStatus(ctx context.Context, status domain.OrderStatus) (int64, error)
	CountPaid(ctx context.Context) (int64, error)
}

// RoleRequestRepository persists role requests and applies decisions.
type RoleRequestRepository interface {
	Create(ctx context.Context, r *domain.RoleRequest) error
	FindByID(ctx context.Context, id string) (*domain.RoleRequest, error)
	// ListNewestFirst returns every request sorted by requestTime descending.
	ListNewestFirst(ctx context.Context) ([]*domain.RoleRequest, error)
	// Approve grants the role to the user with userEmail and marks the pending
	// request approved as one atomic unit. Either both writes happen or neither.
	Approve(ctx context.Context, requestID, userEmail string, grant domain.RoleGrant) error
	// Reject marks a pending request rejected.
	Reject(ctx context.Context, requestID string) error
}
