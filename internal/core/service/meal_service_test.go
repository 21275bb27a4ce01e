package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

func seedMeals(repo *stubMealRepo, n int) {
	for i := 1; i <= n; i++ {
		_ = repo.Create(context.Background(), &domain.Meal{
			FoodName:     "Meal",
			Price:        float64(i),
			DeliveryArea: "Dhaka",
		})
	}
}

func TestMealService_List_Defaults(t *testing.T) {
	repo := &stubMealRepo{}
	seedMeals(repo, 25)
	svc := NewMealService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListMealsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 1 || res.Limit != 10 {
		t.Errorf("expected page 1 limit 10, got %d/%d", res.Page, res.Limit)
	}
	if res.Total != 25 || res.TotalPages != 3 {
		t.Errorf("expected total 25 in 3 pages, got %d in %d", res.Total, res.TotalPages)
	}
	if len(res.Items) != 10 {
		t.Errorf("expected 10 items, got %d", len(res.Items))
	}
	if !repo.lastFilter.PriceAsc {
		t.Error("default sort must be ascending by price")
	}
}

func TestMealService_List_Pagination(t *testing.T) {
	cases := []struct {
		name        string
		in          ports.ListMealsInput
		wantSkip    int64
		wantLimit   int64
		wantItems   int
		wantPages   int
		wantPriceHi bool
	}{
		{"third page", ports.ListMealsInput{Page: 3, Limit: 10}, 20, 10, 5, 3, false},
		{"limit capped", ports.ListMealsInput{Page: 1, Limit: 1000}, 0, 100, 25, 1, false},
		{"negative page", ports.ListMealsInput{Page: -4, Limit: 5}, 0, 5, 5, 5, false},
		{"past the end", ports.ListMealsInput{Page: 9, Limit: 10}, 80, 10, 0, 3, false},
		{"desc", ports.ListMealsInput{Sort: "desc"}, 0, 10, 10, 3, true},
		{"huge page", ports.ListMealsInput{Page: math.MaxInt, Limit: 10}, int64(maxPage-1) * 10, 10, 0, 3, false},
		{"huge page max limit", ports.ListMealsInput{Page: math.MaxInt / 5, Limit: 100}, int64(maxPage-1) * 100, 100, 0, 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubMealRepo{}
			seedMeals(repo, 25)
			svc := NewMealService(repo, discardLogger)

			res, err := svc.List(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastFilter.Skip != tc.wantSkip || repo.lastFilter.Limit != tc.wantLimit {
				t.Errorf("expected skip/limit %d/%d, got %d/%d", tc.wantSkip, tc.wantLimit, repo.lastFilter.Skip, repo.lastFilter.Limit)
			}
			if len(res.Items) != tc.wantItems {
				t.Errorf("expected %d items, got %d", tc.wantItems, len(res.Items))
			}
			if res.TotalPages != tc.wantPages {
				t.Errorf("expected %d pages, got %d", tc.wantPages, res.TotalPages)
			}
			if res.Items == nil {
				t.Error("items must be an empty slice, not nil")
			}
			if tc.wantPriceHi && res.Items[0].Price != 25 {
				t.Errorf("desc sort must start with the most expensive meal, got %v", res.Items[0].Price)
			}
		})
	}
}

func TestMealService_List_Filters(t *testing.T) {
	repo := &stubMealRepo{}
	_ = repo.Create(context.Background(), &domain.Meal{FoodName: "Chicken Biryani", DeliveryArea: "Dhanmondi"})
	_ = repo.Create(context.Background(), &domain.Meal{FoodName: "Beef Tehari", DeliveryArea: "Mirpur"})
	svc := NewMealService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListMealsInput{Search: " biryani ", Area: "DHAN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Search != "biryani" {
		t.Errorf("search must be trimmed, got %q", repo.lastFilter.Search)
	}
	if res.Total != 1 || res.Items[0].FoodName != "Chicken Biryani" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMealService_List_Empty(t *testing.T) {
	svc := NewMealService(&stubMealRepo{}, discardLogger)

	res, err := svc.List(context.Background(), ports.ListMealsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 || res.TotalPages != 0 || len(res.Items) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMealService_List_RepoError(t *testing.T) {
	svc := NewMealService(&stubMealRepo{listErr: errBoom}, discardLogger)

	if _, err := svc.List(context.Background(), ports.ListMealsInput{}); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestMealService_Create(t *testing.T) {
	repo := &stubMealRepo{}
	svc := NewMealService(repo, discardLogger)

	m, err := svc.Create(context.Background(), &domain.Meal{FoodName: "Khichuri", Price: 8, ChefID: "chef-1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CreatedAt.IsZero() {
		t.Error("createdAt must be set")
	}
	if m.Ingredients == nil {
		t.Error("ingredients must default to an empty list")
	}

	if _, err := svc.Create(context.Background(), &domain.Meal{Price: -1}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative price, got %v", err)
	}
}

func TestMealService_Update(t *testing.T) {
	repo := &stubMealRepo{}
	seedMeals(repo, 1)
	svc := NewMealService(repo, discardLogger)

	if err := svc.Update(context.Background(), "m1", domain.MealPatch{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty patch, got %v", err)
	}
	price := 12.0
	if err := svc.Update(context.Background(), "m1", domain.MealPatch{Price: &price}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.meals[0].Price != 12 {
		t.Fatalf("expected price 12, got %v", repo.meals[0].Price)
	}
	if err := svc.Update(context.Background(), "missing", domain.MealPatch{Price: &price}); !errors.Is(err, domain.ErrMealNotFound) {
		t.Fatalf("expected ErrMealNotFound, got %v", err)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{99, 100, 1},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
