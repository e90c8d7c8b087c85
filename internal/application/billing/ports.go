package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// Si fn devuelve error se hace rollback de todo lo escrito en ella.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator renderiza la misma factura que devuelve la vista de detalle.
type InvoicePDFGenerator interface {
	Generate(doc *dto.InvoiceResponse) ([]byte, error)
}

// OperationRecorder recibe el resultado de cada operación del flujo de facturas.
// kind vacío significa éxito.
type OperationRecorder interface {
	ObserveInvoiceOperation(operation string, kind domain.Kind, elapsed time.Duration)
}

// Config reglas de facturación configurables.
type Config struct {
	InvoicePrefix      string
	CurrencySymbol     string
	AllowPriceOverride bool
}

// Operaciones del flujo (etiqueta de métricas y logs).
const (
	OpCreate = "create"
	OpEdit   = "edit"
	OpDelete = "delete"
	OpGet    = "get"
	OpSearch = "search"
	OpPDF    = "pdf"
)
