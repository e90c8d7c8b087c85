package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ catalog.StockTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run abre la transacción, ejecuta fn y hace Commit; cualquier salida sin Commit
// devuelve la conexión con Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling ejecuta fn con repos de clientes, productos y facturas atados a la misma tx.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewClientRepository(tx), NewProductRepository(tx), NewInvoiceRepository(tx))
	})
}

// RunStock ejecuta fn con el repo de productos atado a la tx (ajuste de stock en lote).
func (r *TxRunner) RunStock(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx))
	})
}
