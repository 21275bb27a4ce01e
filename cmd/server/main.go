// Command server runs the Local Chef HTTP API.
//
//	@title			Local Chef API
//	@version		1.0
//	@description	Marketplace backend connecting home chefs, customers and admins.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/api"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/api/handler"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/core/service"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/infrastructure/db/mongo"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/infrastructure/db/redis"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/infrastructure/payment/stripe"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/infrastructure/queue"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/internal/pkg/config"
	"github.com/Anzumul-Jubayer/local-chef-bazaar-server/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "local-chef-api",
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	if cfg.Payment.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is not set, payment intents will fail")
	}

	// --- Repositories ---
	meals := mongo.NewMealRepository(db)
	users := mongo.NewUserRepository(db)
	reviews := mongo.NewReviewRepository(db)
	favorites := mongo.NewFavoriteRepository(db)
	orders := mongo.NewOrderRepository(db)
	roleRequests := mongo.NewRoleRequestRepository(db)

	// --- Background workers ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	ratings := queue.NewRatingDispatcher(
		cfg.RatingWorkers,
		service.NewRatingService(reviews, meals, logger.Component("ratings")),
		logger.Component("rating_queue"),
	)
	ratings.Start(workerCtx)
	defer func() {
		cancelWorkers()
		ratings.Wait()
	}()

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		RoleRequests: service.NewRoleRequestService(roleRequests, logger.Component("role_requests")),
		Users:        service.NewUserService(users, logger.Component("users")),
		Meals:        service.NewMealService(meals, logger.Component("meals")),
		Reviews:      service.NewReviewService(reviews, ratings, logger.Component("reviews")),
		Favorites:    service.NewFavoriteService(favorites, logger.Component("favorites")),
		Orders:       service.NewOrderService(orders, logger.Component("orders")),
		Payments: service.NewPaymentService(
			stripe.NewGateway(cfg.Payment.StripeSecretKey),
			redis.NewIdempotencyStore(rdb),
			cfg.Payment.IdempotencyTTL,
			logger.Component("payments"),
		),
		Stats: service.NewStatsService(users, meals, orders),
		Readiness: map[string]handler.Check{
			"mongodb": mongo.Ping(client),
			"redis":   redis.Ping(rdb),
		},
		Logger: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
