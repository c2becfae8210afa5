package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/application/permission"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/cache"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-ventas-api/internal/interfaces/http"
	"github.com/jhoicas/pos-ventas-api/pkg/config"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// run devuelve el error en vez de terminar el proceso: así sus defer cierran pool y Redis.
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("aplicación finalizada con error")
		os.Exit(1)
	}
	log.Info().Msg("aplicación detenida")
}

func run(cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuración: %w", err)
	}
	loc, err := cfg.Sales.Location()
	if err != nil {
		return fmt.Errorf("zona horaria de ventas: %w", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	// Caché de permisos opcional: sin REDIS_URL se consulta siempre la base.
	var permCache permission.Cache
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible; permisos sin caché")
		} else {
			defer client.Close()
			permCache = cache.NewPermissionCache(client, cfg.Redis.PermissionTTL)
		}
	}

	txRunner := postgres.NewTxRunner(pool, cfg.DB.TxTimeout)
	saleRepo := postgres.NewSaleRepository(pool)
	permRepo := postgres.NewPermissionRepository(pool)

	resolver := permission.NewResolver(permRepo, permCache, log.Named("permissions"))
	ledger := inventory.NewLedger()
	salesLog := log.Named("sales")
	recordSaleUC := sales.NewRecordSaleUseCase(txRunner, ledger, salesLog)
	applyPaymentUC := sales.NewApplyPaymentUseCase(txRunner, salesLog)
	queryUC := sales.NewQueryUseCase(saleRepo, loc)
	historyUC := sales.NewHistoryUseCase(
		saleRepo,
		postgres.NewDebtPaymentRepository(pool),
		postgres.NewInventoryMovementRepository(pool),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.DB.TxTimeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Ventas API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordSale:   recordSaleUC,
		ApplyPayment: applyPaymentUC,
		SalesQuery:   queryUC,
		SalesHistory: historyUC,
		Permissions:  resolver,
		DB:           pool,
		ServiceName:  cfg.App.Name,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log.Named("http"),
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-quit:
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}
