package postgres_test

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// openTestPool conecta a TEST_DATABASE_URL, aplica migraciones y vacía las tablas.
// Sin la variable el test se salta.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omiten los tests de PostgreSQL")
	}

	require.NoError(t, postgres.Migrate(dsn))
	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(),
		`TRUNCATE invoice_items, invoices, products, clients, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	_, err = pool.Exec(context.Background(), `ALTER SEQUENCE invoices_number_seq RESTART WITH 1000`)
	require.NoError(t, err)
	return pool
}

func seedCatalog(t *testing.T, pool *pgxpool.Pool, stock int64) (*entity.Client, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	c := &entity.Client{TaxID: "10987654321", Name: "Juan Pérez", Address: "Av. Siempre Viva 742", Phone: "987654321"}
	require.NoError(t, postgres.NewClientRepository(pool).Create(ctx, c))
	p := &entity.Product{Name: "Laptop HP", Price: decimal.RequireFromString("750.00"), Stock: stock}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, p))
	return c, p
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestClientRepo_RUCDuplicadoEsConflicto(t *testing.T) {
	pool := openTestPool(t)
	seedCatalog(t, pool, 0)

	err := postgres.NewClientRepository(pool).Create(context.Background(),
		&entity.Client{TaxID: "10987654321", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicateTaxID)
}

func TestProductRepo_NombreDuplicadoSinMayusculas(t *testing.T) {
	pool := openTestPool(t)
	seedCatalog(t, pool, 0)

	err := postgres.NewProductRepository(pool).Create(context.Background(),
		&entity.Product{Name: "LAPTOP hp", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
}

func TestProductRepo_DecrementoCondicional(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	_, p := seedCatalog(t, pool, 2)
	repo := postgres.NewProductRepository(pool)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 2))
	assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 1), domain.ErrInsufficientStock)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock)
}

func TestTxRunner_RollbackDeshaceEscrituras(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	_, p := seedCatalog(t, pool, 5)

	err := postgres.NewTxRunner(pool).RunStock(ctx, func(products repository.ProductRepository) error {
		require.NoError(t, products.SetStock(ctx, p.ID, 50))
		return domain.ErrInvalidStock
	})
	require.ErrorIs(t, err, domain.ErrInvalidStock)

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
}

func TestPool_SesionEnUTC(t *testing.T) {
	pool := openTestPool(t)

	var tz string
	require.NoError(t, pool.QueryRow(context.Background(), `SHOW TimeZone`).Scan(&tz))
	assert.Equal(t, "UTC", tz)
}

func TestAdjustStock_ValorFueraDeRangoSeSaltaEnPostgres(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	_, p := seedCatalog(t, pool, 5)
	otro := &entity.Product{Name: "Monitor LG", Price: decimal.RequireFromString("150.00"), Stock: 1}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, otro))

	uc := catalog.NewProductUseCase(postgres.NewProductRepository(pool), postgres.NewTxRunner(pool), logger.Nop())
	res, err := uc.AdjustStock(ctx, dto.StockAdjustmentRequest{Stock: map[string]string{
		strconv.FormatInt(p.ID, 10):    "3000000000",
		strconv.FormatInt(otro.ID, 10): "9",
	}})
	require.NoError(t, err)
	assert.Len(t, res.Applied, 1)
	assert.Len(t, res.Warnings, 1)

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, otro.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de facturas sobre PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

func newInvoiceUseCase(pool *pgxpool.Pool) *billing.InvoiceUseCase {
	return billing.NewInvoiceUseCase(postgres.NewTxRunner(pool), postgres.NewInvoiceRepository(pool),
		billing.Config{InvoicePrefix: "FACT", CurrencySymbol: "S/."}, logger.Nop(), nil)
}

func TestInvoiceFlow_CrearBuscarEliminar(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	c, p := seedCatalog(t, pool, 10)
	uc := newInvoiceUseCase(pool)

	created, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		ClientID: c.ID, Items: []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2250.00", created.Total.StringFixed(2))

	view, err := uc.GetInvoice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", view.Client.Name)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Laptop HP", view.Items[0].ProductName)

	list, err := uc.SearchInvoices(ctx, dto.InvoiceSearchQuery{Client: "juan"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	list, err = uc.SearchInvoices(ctx, dto.InvoiceSearchQuery{Number: "1000"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.DeleteInvoice(ctx, created.ID))
	assert.ErrorIs(t, uc.DeleteInvoice(ctx, created.ID), domain.ErrInvoiceNotFound)

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Stock, "eliminar no repone stock")
}

func TestInvoiceFlow_FacturasConcurrentesNoSobrevenden(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	c, p := seedCatalog(t, pool, 5)
	uc := newInvoiceUseCase(pool)

	const workers = 4
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		okRuns int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{
				ClientID: c.ID, Items: []dto.InvoiceItemRequest{{ProductID: p.ID, Quantity: 2}},
			})
			if err == nil {
				mu.Lock()
				okRuns++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, okRuns, "con stock 5 sólo caben dos facturas de 2 unidades")
	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Stock)
}

func TestInvoiceFlow_OrdenInversoDeLineasSinDeadlock(t *testing.T) {
	ctx := context.Background()
	pool := openTestPool(t)
	c, laptop := seedCatalog(t, pool, 100)
	mouse := &entity.Product{Name: "Mouse Inalámbrico", Price: decimal.RequireFromString("99.99"), Stock: 100}
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, mouse))
	uc := newInvoiceUseCase(pool)

	orders := [][]dto.InvoiceItemRequest{
		{{ProductID: laptop.ID, Quantity: 1}, {ProductID: mouse.ID, Quantity: 1}},
		{{ProductID: mouse.ID, Quantity: 1}, {ProductID: laptop.ID, Quantity: 1}},
	}
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(items []dto.InvoiceItemRequest) {
			defer wg.Done()
			_, err := uc.CreateInvoice(ctx, dto.CreateInvoiceRequest{ClientID: c.ID, Items: items})
			errs <- err
		}(orders[i%2])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, mouse.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(80), got.Stock)
}
