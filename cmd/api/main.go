package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/BadhanCB/outfitex-backend/internal/api/http"
	"github.com/BadhanCB/outfitex-backend/internal/api/http/handlers"
	"github.com/BadhanCB/outfitex-backend/internal/auth"
	"github.com/BadhanCB/outfitex-backend/internal/cache"
	"github.com/BadhanCB/outfitex-backend/internal/config"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
	"github.com/BadhanCB/outfitex-backend/internal/events"
	"github.com/BadhanCB/outfitex-backend/internal/media"
	"github.com/BadhanCB/outfitex-backend/internal/observability"
	"github.com/BadhanCB/outfitex-backend/internal/persistence"
	"github.com/BadhanCB/outfitex-backend/internal/repository"
	"github.com/BadhanCB/outfitex-backend/internal/service"
	"github.com/BadhanCB/outfitex-backend/internal/slug"
	"github.com/BadhanCB/outfitex-backend/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	storageTimeout := cfg.Storage.Timeout()

	stores := make([]repository.PrincipalRepository, 0, 3)
	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin} {
		store, err := repository.NewPrincipalRepository(pool, role, storageTimeout)
		if err != nil {
			logger.Fatal("failed to build principal store", zap.String("role", string(role)), zap.Error(err))
		}
		stores = append(stores, store)
	}
	directory := repository.NewPrincipalDirectory(stores...)
	sellers, _ := directory.Store(domain.RoleSeller)

	productRepo := repository.NewProductRepository(pool, storageTimeout)
	orderRepo := repository.NewOrderRepository(pool, storageTimeout)

	dispatcher := events.NewInMemoryDispatcher()
	transcoder := media.NewTranscoder(cfg.Media.ImageWidth, cfg.Media.JPEGQuality)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	authService := service.NewAuthService(service.AuthDependencies{
		Directory:  directory,
		Hasher:     auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:     tokens,
		Slugs:      slug.NewGenerator(slug.CollisionCheckerFunc(sellers.SlugExists)),
		Images:     transcoder,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	catalogService := service.NewCatalogService(productRepo, cache.NewCatalogCache(redis.Client, cfg.Catalog.CacheTTL()), logger)
	productService := service.NewProductService(service.ProductDependencies{
		Products:   productRepo,
		Slugs:      slug.NewGenerator(slug.CollisionCheckerFunc(productRepo.SlugExists)),
		Images:     transcoder,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		Products:   productRepo,
		Orders:     orderRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	worker.StartActivityLog(service.NewActivityLog(logger), dispatcher)
	worker.StartCacheInvalidation(catalogService, dispatcher)

	verifier := auth.NewVerifier(tokens, directory)
	metrics := observability.NewMetrics("outfitex")

	maxUpload := int64(cfg.Media.MaxUploadBytes)
	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.Media.MaxUploadBytes + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Products: handlers.NewProductHandler(productService, maxUpload),
		Auth:     handlers.NewAuthHandler(authService, maxUpload),
		Orders:   handlers.NewOrderHandler(orderService),
		Guard:    auth.NewMiddleware(verifier, logger),
		Metrics:  metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
