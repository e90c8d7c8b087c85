package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// Las líneas con product_id 0 o cantidad 0 se ignoran (casillas vacías del formulario).
type CreateInvoiceRequest struct {
	ClientID int64                `json:"client_id"`
	Items    []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de factura (producto y cantidad).
type InvoiceItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
type UpdateInvoiceRequest struct {
	ClientID int64                      `json:"client_id"`
	Items    []UpdateInvoiceItemRequest `json:"items"`
}

// UpdateInvoiceItemRequest línea en la edición. UnitPrice sólo se respeta si
// BILLING_ALLOW_PRICE_OVERRIDE está activo; si no, manda el precio de catálogo.
type UpdateInvoiceItemRequest struct {
	ProductID int64            `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoiceCreatedResponse resultado de crear una factura.
type InvoiceCreatedResponse struct {
	ID     int64           `json:"id"`
	Number string          `json:"number"`
	Total  decimal.Decimal `json:"total"`
}

// InvoiceResponse factura completa (vista de detalle y fuente del PDF).
type InvoiceResponse struct {
	ID        int64                 `json:"id"`
	Number    string                `json:"number"`
	Date      time.Time             `json:"date"`
	DateText  string                `json:"date_text"`
	Client    InvoiceClientResponse `json:"client"`
	Items     []InvoiceItemResponse `json:"items"`
	Total     decimal.Decimal       `json:"total"`
	TotalText string                `json:"total_text"`
	Currency  string                `json:"currency"`
}

// InvoiceClientResponse datos del cliente en la factura.
type InvoiceClientResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// InvoiceItemResponse línea con el nombre del producto y los montos ya formateados.
type InvoiceItemResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitPriceText string          `json:"unit_price_text"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	SubtotalText  string          `json:"subtotal_text"`
}

// InvoiceSummaryResponse fila del listado / búsqueda.
type InvoiceSummaryResponse struct {
	ID         int64           `json:"id"`
	Number     string          `json:"number"`
	Date       time.Time       `json:"date"`
	ClientID   int64           `json:"client_id"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
}

// InvoiceListResponse resultado de GET /api/invoices.
type InvoiceListResponse struct {
	Items []InvoiceSummaryResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// InvoiceSearchQuery query string de GET /api/invoices (filtros estructurados o criterio/valor).
type InvoiceSearchQuery struct {
	Number   string `query:"number"`
	Client   string `query:"client"`
	Date     string `query:"date"`
	Criterio string `query:"criterio"`
	Valor    string `query:"valor"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}
