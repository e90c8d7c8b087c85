package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/memory"
)

func newProduct(t *testing.T, s *memory.Store, name string, stock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: name, Price: decimal.RequireFromString("10.00"), Stock: stock}
	require.NoError(t, s.Products().Create(context.Background(), p))
	return p
}

func TestRunBilling_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(t, s, "Monitor LG", 5)

	boom := errors.New("falla simulada")
	err := s.RunBilling(ctx, func(_ repository.ClientRepository, products repository.ProductRepository, _ repository.InvoiceRepository) error {
		require.NoError(t, products.DecrementStock(ctx, p.ID, 3))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock, "el descuento se deshace con el rollback")
}

func TestRunBilling_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(t, s, "Monitor LG", 5)

	err := s.RunBilling(ctx, func(_ repository.ClientRepository, products repository.ProductRepository, _ repository.InvoiceRepository) error {
		return products.DecrementStock(ctx, p.ID, 3)
	})
	require.NoError(t, err)

	got, _ := s.Products().GetByID(ctx, p.ID)
	assert.Equal(t, int64(2), got.Stock)
}

func TestNextNumber_NoRetrocedeConRollback(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	var drawn int64
	_ = s.RunBilling(ctx, func(_ repository.ClientRepository, _ repository.ProductRepository, invoices repository.InvoiceRepository) error {
		n, err := invoices.NextNumber(ctx)
		require.NoError(t, err)
		drawn = n
		return errors.New("rollback")
	})
	assert.Equal(t, int64(1000), drawn)

	next, err := s.Invoices().NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), next)
}

func TestDecrementStock_NoBajaDeCero(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(t, s, "Tablet Apple", 2)

	err := s.Products().DecrementStock(ctx, p.ID, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := s.Products().GetByID(ctx, p.ID)
	assert.Equal(t, int64(2), got.Stock)
}

func TestProductCreate_NombreDuplicadoSinMayusculas(t *testing.T) {
	s := memory.NewStore()
	newProduct(t, s, "Mouse Inalámbrico", 1)

	err := s.Products().Create(context.Background(), &entity.Product{Name: "mouse inalámbrico", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
}

func TestGetByID_DevuelveCopia(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := newProduct(t, s, "Cámara Nikon", 4)

	got, _ := s.Products().GetByID(ctx, p.ID)
	got.Stock = 99

	again, _ := s.Products().GetByID(ctx, p.ID)
	assert.Equal(t, int64(4), again.Stock)
}
