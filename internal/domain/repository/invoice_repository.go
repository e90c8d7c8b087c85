package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// InvoiceFilter criterios ya validados para la búsqueda de facturas.
// Los campos vacíos no filtran.
type InvoiceFilter struct {
	NumberSuffix string // 4 dígitos, coincide con el final del número
	ClientName   string // subcadena sin distinguir mayúsculas
	DateText     string // subcadena de la fecha formateada "YYYY-MM-DD HH:MM:SS"
	Limit        int
	Offset       int
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// NextNumber toma el siguiente valor de la secuencia; no se devuelve en rollback.
	NextNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	GetView(ctx context.Context, id int64) (*entity.InvoiceView, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID int64) ([]*entity.InvoiceItemView, error)
	UpdateHeader(ctx context.Context, invoice *entity.Invoice) error
	// DeleteItems y Delete devuelven las filas afectadas.
	DeleteItems(ctx context.Context, invoiceID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Search(ctx context.Context, filter InvoiceFilter) ([]*entity.InvoiceSummary, error)
}
