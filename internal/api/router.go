package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Anzumul-Jubayer/local-chef-bazaar-server/docs"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/api/handler"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/api/middleware"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/ports"
)

// Deps is everything the HTTP layer needs. It is assembled once in main.
type Deps struct {
	RoleRequests ports.RoleRequestService
	Users        ports.UserService
	Meals        ports.MealService
	Reviews      ports.ReviewService
	Favorites    ports.FavoriteService
	Orders       ports.OrderService
	Payments     ports.PaymentService
	Stats        ports.StatsService

	// Readiness checks keyed by dependency name, e.g. "mongodb".
	Readiness map[string]handler.Check

	// Registry receives the HTTP metrics and serves /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "localchef",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	roleRequests := handler.NewRoleRequestHandler(d.RoleRequests)
	users := handler.NewUserHandler(d.Users)
	meals := handler.NewMealHandler(d.Meals)
	reviews := handler.NewReviewHandler(d.Reviews)
	favorites := handler.NewFavoriteHandler(d.Favorites)
	orders := handler.NewOrderHandler(d.Orders)
	payments := handler.NewPaymentHandler(d.Payments)
	stats := handler.NewStatsHandler(d.Stats)

	// --- Role workflow ---
	e.POST("/role-requests", roleRequests.Submit)
	e.GET("/role-requests", roleRequests.List)
	e.PATCH("/role-requests/:id/accept", roleRequests.Accept)
	e.PATCH("/role-requests/:id/reject", roleRequests.Reject)

	// --- Users ---
	e.POST("/users", users.Signup)
	e.GET("/users", users.List)
	e.GET("/users/role/:email", users.Role)
	e.GET("/users/:email", users.Get)
	e.PATCH("/users/:id/fraud", users.MarkFraud)

	// --- Meals ---
	e.GET("/meals", meals.List)
	e.POST("/meals", meals.Create)
	e.GET("/meals/chef/:email", meals.ListByChef)
	e.PATCH("/meals/:id", meals.Update)
	e.DELETE("/meals/:id", meals.Delete)
	e.GET("/meal-details/:id", meals.Get)

	// --- Reviews ---
	e.POST("/reviews", reviews.Create)
	e.GET("/reviews", reviews.Latest)
	e.GET("/reviews/user/:email", reviews.ByReviewer)
	e.GET("/reviews/:id", reviews.ForFood)
	e.PUT("/reviews/:id", reviews.Update)
	e.DELETE("/reviews/:id", reviews.Delete)

	// --- Favorites ---
	e.POST("/favorites", favorites.Add)
	e.GET("/favorites/:email", favorites.ForUser)
	e.DELETE("/favorites/:id", favorites.Remove)

	// --- Orders ---
	e.POST("/orders", orders.Place)
	e.GET("/orders/user/:email", orders.ForUser)
	e.GET("/orders/chef/:chefId", orders.ForChef)
	e.PATCH("/orders/:id/status", orders.ChangeStatus)
	e.PATCH("/orders/:id/payment", orders.MarkPaid)

	// --- Payments & stats ---
	e.POST("/create-payment-intent", payments.CreateIntent)
	e.GET("/stats", stats.Platform)

	// --- Ops (health probes, metrics, docs) ---
	health := handler.NewHealthHandler()
	readiness := handler.NewReadinessHandler(d.Readiness)

	e.GET("/", health.Banner)
	e.GET("/health", health.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readiness.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
