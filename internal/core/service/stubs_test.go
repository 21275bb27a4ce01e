package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user + role request store. Approve mirrors the transactional Mongo
// implementation: both writes happen or neither does.
// ---------------------------------------------------------------------------

type stubStore struct {
	seq       int
	users     map[string]*domain.User // keyed by id
	requests  map[string]*domain.RoleRequest
	createErr error
	approveFn func(grant domain.RoleGrant) error // optional fault injection
}

func newStubStore() *stubStore {
	return &stubStore{
		users:    make(map[string]*domain.User),
		requests: make(map[string]*domain.RoleRequest),
	}
}

func (s *stubStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

func (s *stubStore) addUser(email string, role domain.Role) *domain.User {
	u := &domain.User{ID: s.nextID("u"), Name: "User", Email: email, Role: role, Status: domain.UserActive}
	s.users[u.ID] = u
	return u
}

func (s *stubStore) userByEmail(email string) *domain.User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// --- ports.RoleRequestRepository ---

func (s *stubStore) Create(_ context.Context, r *domain.RoleRequest) error {
	if s.createErr != nil {
		return s.createErr
	}
	r.ID = s.nextID("rr")
	clone := *r
	s.requests[r.ID] = &clone
	return nil
}

func (s *stubStore) FindByID(_ context.Context, id string) (*domain.RoleRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrRoleRequestNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *stubStore) ListNewestFirst(_ context.Context) ([]*domain.RoleRequest, error) {
	out := make([]*domain.RoleRequest, 0, len(s.requests))
	for _, r := range s.requests {
		clone := *r
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestTime.After(out[j].RequestTime) })
	return out, nil
}

func (s *stubStore) Approve(_ context.Context, requestID, userEmail string, grant domain.RoleGrant) error {
	if s.approveFn != nil {
		if err := s.approveFn(grant); err != nil {
			return err
		}
	}
	r, ok := s.requests[requestID]
	if !ok {
		return domain.ErrRoleRequestNotFound
	}
	if r.RequestStatus != domain.RequestPending {
		return domain.ErrRequestNotPending
	}
	u := s.userByEmail(userEmail)
	if u == nil {
		return domain.ErrUserNotFound
	}
	u.Role = grant.Role
	if grant.ChefID != "" {
		u.ChefID = grant.ChefID
	}
	r.RequestStatus = domain.RequestApproved
	return nil
}

func (s *stubStore) Reject(_ context.Context, requestID string) error {
	r, ok := s.requests[requestID]
	if !ok {
		return domain.ErrRoleRequestNotFound
	}
	if r.RequestStatus != domain.RequestPending {
		return domain.ErrRequestNotPending
	}
	r.RequestStatus = domain.RequestRejected
	return nil
}

// stubUsers adapts stubStore to ports.UserRepository; the method sets overlap
// on Create so the two views are split.
type stubUsers struct{ *stubStore }

func (s stubUsers) Create(_ context.Context, u *domain.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if s.userByEmail(u.Email) != nil {
		return domain.ErrUserExists
	}
	u.ID = s.nextID("u")
	clone := *u
	s.users[u.ID] = &clone
	return nil
}

func (s stubUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u := s.userByEmail(email)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s stubUsers) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (s stubUsers) MarkFraud(_ context.Context, id string) error {
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = domain.UserFraud
	return nil
}

func (s stubUsers) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (s stubUsers) Count(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

// ---------------------------------------------------------------------------
// Meals
// ---------------------------------------------------------------------------

type stubMealRepo struct {
	meals      []*domain.Meal
	lastFilter ports.MealFilter
	listErr    error
}

func (r *stubMealRepo) Create(_ context.Context, m *domain.Meal) error {
	m.ID = fmt.Sprintf("m%d", len(r.meals)+1)
	clone := *m
	r.meals = append(r.meals, &clone)
	return nil
}

func (r *stubMealRepo) FindByID(_ context.Context, id string) (*domain.Meal, error) {
	for _, m := range r.meals {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrMealNotFound
}

// List applies the same filters the Mongo repository would use.
func (r *stubMealRepo) List(_ context.Context, f ports.MealFilter) ([]*domain.Meal, int64, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var matched []*domain.Meal
	for _, m := range r.meals {
		if f.Area != "" && !strings.Contains(strings.ToLower(m.DeliveryArea), strings.ToLower(f.Area)) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(m.FoodName), strings.ToLower(f.Search)) {
			continue
		}
		clone := *m
		matched = append(matched, &clone)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if f.PriceAsc {
			return matched[i].Price < matched[j].Price
		}
		return matched[i].Price > matched[j].Price
	})
	total := int64(len(matched))
	if f.Skip >= total {
		return nil, total, nil
	}
	end := f.Skip + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Skip:end], total, nil
}

func (r *stubMealRepo) ListByChefEmail(_ context.Context, email string) ([]*domain.Meal, error) {
	var out []*domain.Meal
	for _, m := range r.meals {
		if m.UserEmail == email {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMealRepo) Update(_ context.Context, id string, p domain.MealPatch) error {
	for _, m := range r.meals {
		if m.ID == id {
			if p.Price != nil {
				m.Price = *p.Price
			}
			if p.FoodName != nil {
				m.FoodName = *p.FoodName
			}
			return nil
		}
	}
	return domain.ErrMealNotFound
}

func (r *stubMealRepo) SetRating(_ context.Context, id string, rating float64) error {
	for _, m := range r.meals {
		if m.ID == id {
			m.Rating = rating
			return nil
		}
	}
	return domain.ErrMealNotFound
}

func (r *stubMealRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.meals {
		if m.ID == id {
			r.meals = append(r.meals[:i], r.meals[i+1:]...)
			return nil
		}
	}
	return domain.ErrMealNotFound
}

func (r *stubMealRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.meals)), nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders map[string]*domain.Order
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.seq++
	o.ID = fmt.Sprintf("o%d", r.seq)
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, email string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListByChef(_ context.Context, chefID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.ChefID == chefID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.OrderStatus != from {
		return domain.ErrInvalidTransition
	}
	o.OrderStatus = to
	return nil
}

func (r *stubOrderRepo) MarkPaid(_ context.Context, id string, info map[string]any) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.PaymentStatus = domain.PaymentPaid
	o.PaymentInfo = info
	return nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context, status domain.OrderStatus) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.OrderStatus == status {
			n++
		}
	}
	return n, nil
}

func (r *stubOrderRepo) CountPaid(_ context.Context) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.PaymentStatus == domain.PaymentPaid {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

type stubReviewRepo struct {
	reviews []*domain.Review
	avgErr  error
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	rv.ID = fmt.Sprintf("r%d", len(r.reviews)+1)
	clone := *rv
	r.reviews = append(r.reviews, &clone)
	return nil
}

func (r *stubReviewRepo) ListByFood(_ context.Context, foodID string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rv := range r.reviews {
		if rv.FoodID == foodID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) ListByReviewer(_ context.Context, email string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rv := range r.reviews {
		if rv.ReviewerEmail == email {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) Latest(_ context.Context, n int64) ([]*domain.Review, error) {
	out := make([]*domain.Review, 0, n)
	for i := len(r.reviews) - 1; i >= 0 && int64(len(out)) < n; i-- {
		out = append(out, r.reviews[i])
	}
	return out, nil
}

func (r *stubReviewRepo) Update(_ context.Context, id string, rating int, comment string) (*domain.Review, error) {
	for _, rv := range r.reviews {
		if rv.ID == id {
			rv.Rating, rv.Comment = rating, comment
			clone := *rv
			return &clone, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) (*domain.Review, error) {
	for i, rv := range r.reviews {
		if rv.ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return rv, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) AverageRating(_ context.Context, foodID string) (float64, int64, error) {
	if r.avgErr != nil {
		return 0, 0, r.avgErr
	}
	var sum, n int64
	for _, rv := range r.reviews {
		if rv.FoodID == foodID {
			sum += int64(rv.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

// recordingQueue captures enqueued meal ids instead of running workers.
type recordingQueue struct{ ids []string }

func (q *recordingQueue) Enqueue(foodID string) { q.ids = append(q.ids, foodID) }

// ---------------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------------

type stubGateway struct {
	calls   int
	lastKey string
	err     error
}

func (g *stubGateway) CreateIntent(_ context.Context, amount int64, currency, key string) (*ports.PaymentIntent, error) {
	g.calls++
	g.lastKey = key
	if g.err != nil {
		return nil, g.err
	}
	return &ports.PaymentIntent{
		ID:           fmt.Sprintf("pi_%d", g.calls),
		ClientSecret: fmt.Sprintf("pi_%d_secret_%s_%d", g.calls, currency, amount),
	}, nil
}

type stubKeys struct {
	values map[string]string
	getErr error
}

func newStubKeys() *stubKeys { return &stubKeys{values: make(map[string]string)} }

func (k *stubKeys) Get(_ context.Context, scope, key string) (string, bool, error) {
	if k.getErr != nil {
		return "", false, k.getErr
	}
	v, ok := k.values[scope+":"+key]
	return v, ok, nil
}

func (k *stubKeys) Put(_ context.Context, scope, key, value string, _ time.Duration) error {
	k.values[scope+":"+key] = value
	return nil
}

var errBoom = errors.New("boom")
