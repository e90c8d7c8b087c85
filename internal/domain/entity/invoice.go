package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice cabecera de factura. Number tiene la forma PREFIJO-<secuencia>.
type Invoice struct {
	ID       int64
	Number   string
	Date     time.Time
	ClientID int64
	Total    decimal.Decimal
}

// InvoiceSummary fila de listado/búsqueda: cabecera con el nombre del cliente.
type InvoiceSummary struct {
	ID         int64
	Number     string
	Date       time.Time
	ClientID   int64
	ClientName string
	Total      decimal.Decimal
}

// InvoiceView cabecera con los datos del cliente que se muestran en el detalle y en el PDF.
type InvoiceView struct {
	Invoice
	ClientName    string
	ClientTaxID   string
	ClientAddress string
	ClientPhone   string
}
