package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/savinduamalka/agni-storefront/internal/application/auth"
	"github.com/savinduamalka/agni-storefront/internal/application/cart"
	"github.com/savinduamalka/agni-storefront/internal/application/catalog"
	"github.com/savinduamalka/agni-storefront/internal/application/engagement"
	"github.com/savinduamalka/agni-storefront/internal/application/notify"
	"github.com/savinduamalka/agni-storefront/internal/application/session"
	"github.com/savinduamalka/agni-storefront/internal/application/wishlist"
	"github.com/savinduamalka/agni-storefront/internal/domain/repository"
	"github.com/savinduamalka/agni-storefront/internal/infrastructure/backend"
	"github.com/savinduamalka/agni-storefront/internal/infrastructure/metrics"
	"github.com/savinduamalka/agni-storefront/internal/infrastructure/postgres"
	"github.com/savinduamalka/agni-storefront/internal/infrastructure/storage"
	httpRouter "github.com/savinduamalka/agni-storefront/internal/interfaces/http"
	"github.com/savinduamalka/agni-storefront/pkg/config"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
	"github.com/savinduamalka/agni-storefront/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Setup(cfg.App.Name, cfg.Tracing.Stdout, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing")
	}

	store, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento de sesión")
	}
	defer closeStore()

	reg := metrics.NewRegistry()
	client := backend.NewClient(cfg.Backend,
		backend.WithMetrics(metrics.NewBackend(reg)),
		backend.WithLogger(log),
	)

	notices := notify.NewCenter(0, 0, log)
	sess := session.New(store, log)
	if err := sess.Init(ctx); err != nil {
		log.Error().Err(err).Msg("restaurar sesión")
	}

	cartProxy := cart.NewProxy(backend.NewCartAPI(client), sess, notices, log)
	wishlistProxy := wishlist.NewProxy(backend.NewWishlistAPI(client), sess, notices, log)
	authUC := auth.NewUseCase(backend.NewAuthAPI(client), sess, store, notices, log, cartProxy, wishlistProxy)
	catalogSvc := catalog.NewService(backend.NewCatalogAPI(client), log)
	engagementSvc := engagement.NewService(backend.NewEngagementAPI(client), notices, log)

	if sess.Authenticated() {
		if err := cartProxy.Load(ctx); err != nil {
			log.Warn().Err(err).Msg("carga inicial del carrito")
		}
		if err := wishlistProxy.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("carga inicial de la wishlist")
		}
	}

	// Cambios de sesión (locales o de otra instancia) recargan carrito y wishlist.
	go func() {
		if err := sess.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("seguimiento del token guardado")
		}
	}()
	cartChanges, stopCart := sess.Subscribe()
	defer stopCart()
	go cartProxy.Watch(ctx, cartChanges)
	wishlistChanges, stopWishlist := sess.Subscribe()
	defer stopWishlist()
	go wishlistProxy.Watch(ctx, wishlistChanges)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Agni Storefront API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:    sess,
		AuthUC:     authUC,
		Cart:       cartProxy,
		Wishlist:   wishlistProxy,
		Catalog:    catalogSvc,
		Engagement: engagementSvc,
		Notices:    notices,
		Gatherer:   reg,
		AppName:    cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de tracing")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre el driver configurado. El cierre devuelto libera también el pool de Postgres.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Storage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		s := storage.NewMemory()
		return s, func() { _ = s.Close() }, nil
	case config.StorageRedis:
		s, err := storage.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.Namespace, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		s, err := postgres.NewStorageRepository(ctx, pool, cfg.App.Name, log)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, func() { _ = s.Close(); pool.Close() }, nil
	default:
		s, err := storage.OpenBolt(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
}
