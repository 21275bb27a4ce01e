package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/domain"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return out
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

// --- role requests ---

type stubRoleRequests struct {
	submitFn  func(in ports.SubmitRoleRequestInput) (*domain.RoleRequest, error)
	approveFn func(in ports.ApproveRoleRequestInput) (*domain.RoleGrant, error)
}

func (s *stubRoleRequests) Submit(_ context.Context, in ports.SubmitRoleRequestInput) (*domain.RoleRequest, error) {
	return s.submitFn(in)
}
func (s *stubRoleRequests) List(context.Context) ([]*domain.RoleRequest, error) { return nil, nil }
func (s *stubRoleRequests) Approve(_ context.Context, in ports.ApproveRoleRequestInput) (*domain.RoleGrant, error) {
	return s.approveFn(in)
}
func (s *stubRoleRequests) Reject(context.Context, string) error { return nil }

func TestRoleRequestHandler_SubmitInvalidType(t *testing.T) {
	h := NewRoleRequestHandler(&stubRoleRequests{
		submitFn: func(ports.SubmitRoleRequestInput) (*domain.RoleRequest, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})
	c, _ := newContext(http.MethodPost, "/role-requests", `{"userEmail":"a@example.com","requestType":"owner"}`)

	err := h.Submit(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(err.Error(), "requestType must be one of: chef admin") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRoleRequestHandler_Accept(t *testing.T) {
	h := NewRoleRequestHandler(&stubRoleRequests{
		approveFn: func(in ports.ApproveRoleRequestInput) (*domain.RoleGrant, error) {
			if in.RequestID != "req-1" || in.RequestType != "chef" || in.UserEmail != "" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &domain.RoleGrant{Role: domain.RoleChef, ChefID: "chef-4821"}, nil
		},
	})
	c, rec := newContext(http.MethodPatch, "/role-requests/req-1/accept", `{"requestType":"chef"}`)
	c.SetParamNames("id")
	c.SetParamValues("req-1")

	if err := h.Accept(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := decode(t, rec)
	if body["success"] != true || body["role"] != "chef" || body["chefId"] != "chef-4821" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRoleRequestHandler_AcceptWithoutBody(t *testing.T) {
	h := NewRoleRequestHandler(&stubRoleRequests{
		approveFn: func(in ports.ApproveRoleRequestInput) (*domain.RoleGrant, error) {
			return &domain.RoleGrant{Role: domain.RoleAdmin}, nil
		},
	})
	c, rec := newContext(http.MethodPatch, "/role-requests/req-2/accept", "")
	c.SetParamNames("id")
	c.SetParamValues("req-2")

	if err := h.Accept(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := decode(t, rec)
	if body["role"] != "admin" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["chefId"]; ok {
		t.Fatal("admin grant must not carry a chefId")
	}
}

func TestRoleRequestHandler_AcceptPropagatesDomainError(t *testing.T) {
	h := NewRoleRequestHandler(&stubRoleRequests{
		approveFn: func(ports.ApproveRoleRequestInput) (*domain.RoleGrant, error) {
			return nil, domain.ErrRequestNotPending
		},
	})
	c, _ := newContext(http.MethodPatch, "/role-requests/x/accept", "")

	if err := h.Accept(c); !errors.Is(err, domain.ErrRequestNotPending) {
		t.Fatalf("expected ErrRequestNotPending, got %v", err)
	}
}

// --- meals ---

type stubMeals struct {
	ports.MealService
	listFn func(in ports.ListMealsInput) (*ports.ListMealsResult, error)
}

func (s *stubMeals) List(_ context.Context, in ports.ListMealsInput) (*ports.ListMealsResult, error) {
	return s.listFn(in)
}

func TestMealHandler_List(t *testing.T) {
	h := NewMealHandler(&stubMeals{
		listFn: func(in ports.ListMealsInput) (*ports.ListMealsResult, error) {
			if in.Page != 2 || in.Limit != 5 || in.Sort != "desc" || in.Area != "Dhaka" || in.Search != "curry" {
				t.Fatalf("unexpected input %+v", in)
			}
			return &ports.ListMealsResult{Total: 11, Page: 2, Limit: 5, TotalPages: 3}, nil
		},
	})
	c, rec := newContext(http.MethodGet, "/meals?page=2&limit=5&sort=desc&area=Dhaka&search=curry", "")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	body := decode(t, rec)
	if body["total"] != float64(11) || body["totalPages"] != float64(3) || body["page"] != float64(2) || body["limit"] != float64(5) {
		t.Fatalf("unexpected paging fields %v", body)
	}
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty data array, got %v", body["data"])
	}
}

func TestMealHandler_ListBadPage(t *testing.T) {
	h := NewMealHandler(&stubMeals{})
	c, _ := newContext(http.MethodGet, "/meals?page=two", "")

	if code := httpCode(t, h.List(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

// --- payments ---

type stubPayments struct {
	got ports.CreatePaymentIntentInput
}

func (s *stubPayments) CreateIntent(_ context.Context, in ports.CreatePaymentIntentInput) (string, error) {
	s.got = in
	return "pi_1_secret_x", nil
}

func TestPaymentHandler_CreateIntent(t *testing.T) {
	stub := &stubPayments{}
	h := NewPaymentHandler(stub)
	c, rec := newContext(http.MethodPost, "/create-payment-intent", `{"amount":1999}`)
	c.Request().Header.Set("Idempotency-Key", "checkout-7")

	if err := h.CreateIntent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.got.Amount != 1999 || stub.got.IdempotencyKey != "checkout-7" {
		t.Fatalf("unexpected input %+v", stub.got)
	}
	if body := decode(t, rec); body["clientSecret"] != "pi_1_secret_x" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestPaymentHandler_RejectsNonPositiveAmount(t *testing.T) {
	h := NewPaymentHandler(&stubPayments{})
	c, _ := newContext(http.MethodPost, "/create-payment-intent", `{"amount":0}`)

	if code := httpCode(t, h.CreateIntent(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

// --- orders ---

type stubOrders struct {
	ports.OrderService
	changeFn func(id string, next domain.OrderStatus) error
}

func (s *stubOrders) ChangeStatus(_ context.Context, id string, next domain.OrderStatus) error {
	return s.changeFn(id, next)
}

func TestOrderHandler_ChangeStatus(t *testing.T) {
	var gotID string
	var gotNext domain.OrderStatus
	h := NewOrderHandler(&stubOrders{changeFn: func(id string, next domain.OrderStatus) error {
		gotID, gotNext = id, next
		return nil
	}})
	c, rec := newContext(http.MethodPatch, "/orders/o1/status", `{"orderStatus":"accepted"}`)
	c.SetParamNames("id")
	c.SetParamValues("o1")

	if err := h.ChangeStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != "o1" || gotNext != domain.OrderAccepted {
		t.Fatalf("unexpected call id=%s next=%s", gotID, gotNext)
	}
	if body := decode(t, rec); body["success"] != true {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestOrderHandler_ChangeStatusUnknownStatus(t *testing.T) {
	h := NewOrderHandler(&stubOrders{changeFn: func(string, domain.OrderStatus) error {
		t.Fatal("service must not be called")
		return nil
	}})
	c, _ := newContext(http.MethodPatch, "/orders/o1/status", `{"orderStatus":"shipped"}`)

	if code := httpCode(t, h.ChangeStatus(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

// --- users ---

type stubUsers struct {
	ports.UserService
	role  domain.Role
	found bool
}

func (s *stubUsers) RoleOf(context.Context, string) (domain.Role, bool, error) {
	return s.role, s.found, nil
}

func TestUserHandler_Role(t *testing.T) {
	tests := []struct {
		name    string
		stub    *stubUsers
		success bool
		role    any
	}{
		{"known chef", &stubUsers{role: domain.RoleChef, found: true}, true, "chef"},
		{"unknown", &stubUsers{}, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/users/role/x@example.com", "")
			if err := NewUserHandler(tt.stub).Role(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			body := decode(t, rec)
			role, present := body["role"]
			if !present || body["success"] != tt.success || role != tt.role {
				t.Fatalf("unexpected body %v", body)
			}
		})
	}
}

func TestUserHandler_SignupValidation(t *testing.T) {
	h := NewUserHandler(&stubUsers{})
	c, _ := newContext(http.MethodPost, "/users", `{"name":"Rina","email":"not-an-email","password":"secret1"}`)

	err := h.Signup(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("unexpected message %v", err)
	}
}
