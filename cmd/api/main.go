package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// stores repositorios y runners de transacción del driver elegido.
type stores struct {
	clients  repository.ClientRepository
	products repository.ProductRepository
	invoices repository.InvoiceRepository
	users    repository.UserRepository
	billing  billing.BillingTxRunner
	stock    catalog.StockTxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if cfg.Auth.AdminRegistrationKey == "" {
		log.Warn().Msg("ADMIN_REGISTRATION_KEY vacío: el registro de usuarios queda cerrado")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	m := metrics.New()

	clientUC := catalog.NewClientUseCase(st.clients, log)
	productUC := catalog.NewProductUseCase(st.products, st.stock, log)
	invoiceUC := billing.NewInvoiceUseCase(st.billing, st.invoices, billing.Config{
		InvoicePrefix:      cfg.Billing.InvoicePrefix,
		CurrencySymbol:     cfg.Billing.CurrencySymbol,
		AllowPriceOverride: cfg.Billing.AllowPriceOverride,
	}, log, m)
	pdfUC := billing.NewPDFUseCase(invoiceUC, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), m)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.AdminRegistrationKey, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturación API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", m.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ClientUC:  clientUC,
		ProductUC: productUC,
		InvoiceUC: invoiceUC,
		PDFUC:     pdfUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
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

// openStores abre PostgreSQL (aplicando migraciones si DB_MIGRATE) o el store en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == config.StoreMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			clients:  s.Clients(),
			products: s.Products(),
			invoices: s.Invoices(),
			users:    s.Users(),
			billing:  s,
			stock:    s,
			close:    func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &stores{
		clients:  postgres.NewClientRepository(pool),
		products: postgres.NewProductRepository(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		users:    postgres.NewUserRepository(pool),
		billing:  txRunner,
		stock:    txRunner,
		close:    pool.Close,
	}, nil
}
