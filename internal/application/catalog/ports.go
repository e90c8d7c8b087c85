package catalog

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// StockTxRunner ejecuta el ajuste de stock en lote dentro de una transacción.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}
