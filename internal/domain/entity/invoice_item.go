package entity

import "github.com/shopspring/decimal"

// InvoiceItem línea de factura. Subtotal = round(Quantity × UnitPrice, 2).
type InvoiceItem struct {
	ID        int64
	InvoiceID int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// InvoiceItemView línea con el nombre del producto.
type InvoiceItemView struct {
	InvoiceItem
	ProductName string
}
