package catalog_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/invoice"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterClient_RUCValido(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewClientUseCase(store.Clients(), logger.Nop())

	c, err := uc.RegisterClient(context.Background(), dto.CreateClientRequest{
		TaxID: "20123456789", Name: "  Juan Pérez ", Address: "Av. Siempre Viva 742", Phone: "987654321",
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "Juan Pérez", c.Name)
}

func TestRegisterClient_RUCInvalido(t *testing.T) {
	store := memory.NewStore()
	uc := catalog.NewClientUseCase(store.Clients(), logger.Nop())

	for _, taxID := range []string{"2012345678", "201234567890", "20A23456789", ""} {
		_, err := uc.RegisterClient(context.Background(), dto.CreateClientRequest{TaxID: taxID, Name: "Cliente"})
		require.ErrorIs(t, err, domain.ErrInvalidTaxID, "RUC %q", taxID)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	}
	list, err := uc.ListClients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegisterClient_RUCDuplicado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := catalog.NewClientUseCase(store.Clients(), logger.Nop())

	_, err := uc.RegisterClient(ctx, dto.CreateClientRequest{TaxID: "20123456789", Name: "Juan Pérez"})
	require.NoError(t, err)

	_, err = uc.RegisterClient(ctx, dto.CreateClientRequest{TaxID: "20123456789", Name: "Otro"})
	require.ErrorIs(t, err, domain.ErrDuplicateTaxID)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestRegisterClient_NombreRequerido(t *testing.T) {
	uc := catalog.NewClientUseCase(memory.NewStore().Clients(), logger.Nop())

	_, err := uc.RegisterClient(context.Background(), dto.CreateClientRequest{TaxID: "20123456789", Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListClients_OrdenadosPorNombre(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewClientUseCase(memory.NewStore().Clients(), logger.Nop())
	for i, name := range []string{"Sofía Torres", "Ana López", "Miguel Díaz"} {
		_, err := uc.RegisterClient(ctx, dto.CreateClientRequest{TaxID: "2012345678" + string(rune('0'+i)), Name: name})
		require.NoError(t, err)
	}

	list, err := uc.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Ana López", list[0].Name)
	assert.Equal(t, "Sofía Torres", list[2].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func newProducts() (*memory.Store, *catalog.ProductUseCase) {
	store := memory.NewStore()
	return store, catalog.NewProductUseCase(store.Products(), store, logger.Nop())
}

func TestCreateProduct_Validaciones(t *testing.T) {
	ctx := context.Background()
	_, uc := newProducts()

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Laptop HP", Price: decimal.RequireFromString("750.004"), Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "750.00", p.Price.StringFixed(2))

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "LAPTOP hp", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Gratis", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Negativo", Price: decimal.NewFromInt(1), Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Casi cero", Price: decimal.RequireFromString("0.004")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice, "redondeado a 2 decimales queda en cero")
}

func TestCreateProduct_FueraDeRangoDeColumnas(t *testing.T) {
	ctx := context.Background()
	_, uc := newProducts()

	_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Servidor", Price: decimal.RequireFromString("100000000")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Tornillo", Price: decimal.NewFromInt(1), Stock: invoice.MaxStock + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetProduct_NoExiste(t *testing.T) {
	_, uc := newProducts()

	_, err := uc.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdjustStock_EntradasInvalidasSoloGeneranAviso(t *testing.T) {
	ctx := context.Background()
	_, uc := newProducts()
	a, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Monitor LG", Price: decimal.NewFromInt(150), Stock: 1})
	require.NoError(t, err)
	b, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Tablet Apple", Price: decimal.NewFromInt(799), Stock: 1})
	require.NoError(t, err)
	c, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Cámara Nikon", Price: decimal.NewFromInt(450), Stock: 1})
	require.NoError(t, err)

	res, err := uc.AdjustStock(ctx, dto.StockAdjustmentRequest{Stock: map[string]string{
		idKey(a.ID): "5",
		idKey(b.ID): "-3",
		idKey(c.ID): "abc",
		"9999":      "4",
		"x":         "1",
	}})
	require.NoError(t, err)

	require.Len(t, res.Applied, 1)
	assert.Equal(t, dto.StockAppliedEntry{ProductID: a.ID, Stock: 5}, res.Applied[0])
	assert.Len(t, res.Warnings, 4)

	codes := map[string]string{}
	for _, w := range res.Warnings {
		codes[w.Key] = w.Code
	}
	assert.Equal(t, "INVALID_STOCK", codes[idKey(b.ID)])
	assert.Equal(t, "INVALID_STOCK", codes[idKey(c.ID)])
	assert.Equal(t, "PRODUCT_NOT_FOUND", codes["9999"])
	assert.Equal(t, "VALIDATION", codes["x"])

	got, err := uc.GetProduct(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Stock)
	got, err = uc.GetProduct(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Stock, "la entrada negativa no se aplica")
}

func TestAdjustStock_ValorFueraDeRangoNoAbortaElLote(t *testing.T) {
	ctx := context.Background()
	_, uc := newProducts()
	a, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Monitor LG", Price: decimal.NewFromInt(150), Stock: 1})
	require.NoError(t, err)
	b, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Tablet Apple", Price: decimal.NewFromInt(799), Stock: 1})
	require.NoError(t, err)

	res, err := uc.AdjustStock(ctx, dto.StockAdjustmentRequest{Stock: map[string]string{
		idKey(a.ID): "3000000000",
		idKey(b.ID): "8",
	}})
	require.NoError(t, err)

	assert.Equal(t, []dto.StockAppliedEntry{{ProductID: b.ID, Stock: 8}}, res.Applied)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, idKey(a.ID), res.Warnings[0].Key)
	assert.Equal(t, "INVALID_STOCK", res.Warnings[0].Code)

	got, err := uc.GetProduct(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Stock)
}

func TestAdjustStock_LoteVacio(t *testing.T) {
	_, uc := newProducts()

	res, err := uc.AdjustStock(context.Background(), dto.StockAdjustmentRequest{})
	require.NoError(t, err)
	assert.Empty(t, res.Applied)
	assert.Empty(t, res.Warnings)
}

func idKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
