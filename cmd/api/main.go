package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
	"github.com/jhoicas/ppf-inventory/internal/infrastructure/cache"
	infrafs "github.com/jhoicas/ppf-inventory/internal/infrastructure/firestore"
	"github.com/jhoicas/ppf-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/ppf-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/ppf-inventory/internal/infrastructure/telemetry"
	httpRouter "github.com/jhoicas/ppf-inventory/internal/interfaces/http"
	"github.com/jhoicas/ppf-inventory/pkg/config"
	"github.com/jhoicas/ppf-inventory/pkg/logger"
)

const version = "1.0.0"

// stores puertos de persistencia del driver elegido.
type stores struct {
	items      repository.InventoryItemRepository
	categories repository.CategoryRepository
	txRunner   inventory.TxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, cfg.Telemetry, version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("apagar trazas")
		}
	}()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer st.close()

	// Caché opcional de stock bajo; sin REDIS_ADDR queda deshabilitada.
	var lowStockCache inventory.LowStockCache
	if cfg.Redis.Enabled() {
		rc, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible; caché de stock bajo deshabilitada")
		} else {
			defer rc.Close()
			lowStockCache = cache.NewLowStockCache(rc.Redis, time.Duration(cfg.Redis.LowStockTTL)*time.Second)
		}
	}

	stockUC := inventory.NewStockUseCase(st.items, lowStockCache, tp.Tracer, log)
	lowStockUC := inventory.NewLowStockUseCase(st.items, lowStockCache, tp.Tracer, log)
	registry := inventory.NewCategoryRegistry(st.items, st.categories, log)
	saleUC := inventory.NewRecordSaleUseCase(st.txRunner, lowStockCache, tp.Tracer, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (docs/ lo genera `swag init -g cmd/api/main.go`).
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "PPF Inventory API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Stock:    stockUC,
		LowStock: lowStockUC,
		Registry: registry,
		Sales:    saleUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			items:      postgres.NewItemRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			txRunner:   postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil

	case config.StoreDriverFirestore:
		cw, err := infrafs.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return &stores{
			items:      infrafs.NewItemRepositoryFS(cw.Client),
			categories: infrafs.NewCategoryRepositoryFS(cw.Client),
			txRunner:   infrafs.NewTxRunner(cw.Client),
			close:      func() { _ = cw.Close() },
		}, nil

	default:
		mem := memory.NewStore()
		return &stores{
			items:      mem.Items(),
			categories: mem.Categories(),
			txRunner:   mem.TxRunner(),
			close:      func() {},
		}, nil
	}
}
