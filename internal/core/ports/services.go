package ports

import (
	"context"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
)

// SubmitRoleRequestInput is the DTO for a new role request.
type SubmitRoleRequestInput struct {
	UserID      string
	UserName    string
	UserEmail   string
	RequestType string
}

// ApproveRoleRequestInput identifies the request being approved. RequestType and
// UserEmail are optional echoes of the stored request; when set they must match it.
type ApproveRoleRequestInput struct {
	RequestID   string
	RequestType string
	UserEmail   string
}

// RoleRequestService implements the role-upgrade workflow.
type RoleRequestService interface {
	Submit(ctx context.Context, in SubmitRoleRequestInput) (*domain.RoleRequest, error)
	List(ctx context.Context) ([]*domain.RoleRequest, error)
	Approve(ctx context.Context, in ApproveRoleRequestInput) (*domain.RoleGrant, error)
	Reject(ctx context.Context, requestID string) error
}

// SignupInput is the DTO for account creation.
type SignupInput struct {
	Name     string
	Email    string
	Address  string
	Password string
	PhotoURL string
	Status   string
}

// UserService manages accounts and their status/role queries.
type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// RoleOf returns the stored role and whether the user exists. A missing
	// user is not an error.
	RoleOf(ctx context.Context, email string) (domain.Role, bool, error)
	MarkFraud(ctx context.Context, id string) error
}

// ListMealsInput carries the raw catalogue query.
type ListMealsInput struct {
	Page   int
	Limit  int
	Sort   string // "asc" (default) or "desc", by price
	Area   string
	Search string
}

// ListMealsResult is one page of the catalogue.
type ListMealsResult struct {
	Items      []*domain.Meal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MealService manages the meal catalogue.
type MealService interface {
	List(ctx context.Context, in ListMealsInput) (*ListMealsResult, error)
	Get(ctx context.Context, id string) (*domain.Meal, error)
	Create(ctx context.Context, m *domain.Meal) (*domain.Meal, error)
	ListByChef(ctx context.Context, email string) ([]*domain.Meal, error)
	Update(ctx context.Context, id string, patch domain.MealPatch) error
	Delete(ctx context.Context, id string) error
}

// ReviewService manages meal reviews.
type ReviewService interface {
	Add(ctx context.Context, r *domain.Review) (*domain.Review, error)
	ForFood(ctx context.Context, foodID string) ([]*domain.Review, error)
	ByReviewer(ctx context.Context, email string) ([]*domain.Review, error)
	Latest(ctx context.Context) ([]*domain.Review, error)
	Update(ctx context.Context, id string, rating int, comment string) error
	Delete(ctx context.Context, id string) error
}

// RatingService keeps a meal's stored rating in line with its reviews.
type RatingService interface {
	Recalculate(ctx context.Context, foodID string) error
}

// RatingQueue accepts meals whose rating needs recomputing. Enqueue must not
// block the request path for long.
type RatingQueue interface {
	Enqueue(foodID string)
}

// FavoriteService manages saved meals.
type FavoriteService interface {
	Add(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error)
	ForUser(ctx context.Context, email string) ([]*domain.Favorite, error)
	Remove(ctx context.Context, id string) error
}

// OrderService manages orders.
type OrderService interface {
	Place(ctx context.Context, o *domain.Order) (*domain.Order, error)
	ForUser(ctx context.Context, email string) ([]*domain.Order, error)
	ForChef(ctx context.Context, chefID string) ([]*domain.Order, error)
	ChangeStatus(ctx context.Context, id string, next domain.OrderStatus) error
	MarkPaid(ctx context.Context, id string, info map[string]any) error
}

// CreatePaymentIntentInput is the DTO for a payment-intent request.
type CreatePaymentIntentInput struct {
	Amount         int64
	IdempotencyKey string
}

// PaymentService creates payment intents.
type PaymentService interface {
	CreateIntent(ctx context.Context, in CreatePaymentIntentInput) (clientSecret string, err error)
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	Users           int64 `json:"users"`
	Chefs           int64 `json:"chefs"`
	Meals           int64 `json:"meals"`
	PendingOrders   int64 `json:"pendingOrders"`
	DeliveredOrders int64 `json:"deliveredOrders"`
	PaidOrders      int64 `json:"paidOrders"`
}

// StatsService aggregates platform counts.
type StatsService interface {
	Platform(ctx context.Context) (*PlatformStats, error)
}
