// @title                       Products API
// @version                     1.0
// @description                 User registration, JWT login and owner-scoped product management.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/99minutos/products-api/internal/api"
	"github.com/99minutos/products-api/internal/api/handler"
	"github.com/99minutos/products-api/internal/core/service"
	mongostore "github.com/99minutos/products-api/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/products-api/internal/infrastructure/db/redis"
	"github.com/99minutos/products-api/internal/infrastructure/queue"
	"github.com/99minutos/products-api/internal/infrastructure/security"
	"github.com/99minutos/products-api/internal/infrastructure/token"
	"github.com/99minutos/products-api/internal/pkg/config"
	"github.com/99minutos/products-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{Service: "products-api"})
		boot.Fatal().Err(err).Msg("config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "products-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.ConnectionURI(),
		Database: cfg.Mongo.Database,
		Username: cfg.Mongo.Username,
		Password: cfg.Mongo.Password,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongostore.NewUserRepository(db)
	products := mongostore.NewProductRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, products); err != nil {
		return err
	}

	// --- Background audit writer ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	audits := queue.NewAuditDispatcher(cfg.Products.AuditWorkers, mongostore.NewAuditRepository(db), logger.Component("audit"))
	audits.Start(workerCtx)
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := audits.Shutdown(drainCtx); err != nil {
			log.Warn().Err(err).Msg("audit queue not fully drained")
		}
		cancelWorkers()
	}()

	// --- Services ---
	tokens, err := token.NewJWTSigner(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(users, security.NewHasher(security.DefaultCost), tokens, logger.Component("auth"))
	gate := service.NewPriceGate(cfg.Products.PriceFloor, cfg.Products.ValidationDelay, audits, logger.Component("validation"))
	productService := service.NewProductService(
		products,
		gate,
		redisstore.NewIdempotencyStore(rdb, cfg.Products.IdempotencyTTL),
		logger.Component("products"),
	)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		ProductService: productService,
		Tokens:         tokens,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		Log: logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
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
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
