package invoice

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain"
)

// Precisión de las columnas NUMERIC(10,2) de precios y NUMERIC(12,2) de importes.
var (
	MaxPrice  = decimal.RequireFromString("99999999.99")
	MaxAmount = decimal.RequireFromString("9999999999.99")
)

// ValidPrice indica si el precio, ya redondeado a 2 decimales, es positivo y cabe en la columna.
func ValidPrice(price decimal.Decimal) bool {
	return price.IsPositive() && price.LessThanOrEqual(MaxPrice)
}

// Line línea valorizada lista para persistir.
type Line struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// NewLine calcula el subtotal de la línea con el precio dado.
func NewLine(productID, quantity int64, unitPrice decimal.Decimal) Line {
	return Line{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  Subtotal(unitPrice, quantity),
	}
}

// Subtotal = round(precio × cantidad, 2).
func Subtotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(2)
}

// Total suma los subtotales de las líneas.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// CheckAmounts rechaza subtotales o totales que no caben en la columna de importes.
func CheckAmounts(lines []Line) error {
	for _, l := range lines {
		if l.Subtotal.GreaterThan(MaxAmount) {
			return domain.ErrInvalidInput.WithDetail("subtotal del producto %d fuera de rango", l.ProductID)
		}
	}
	if Total(lines).GreaterThan(MaxAmount) {
		return domain.ErrInvalidInput.WithDetail("total fuera de rango")
	}
	return nil
}

// StockDemand cantidad total pedida de un producto.
type StockDemand struct {
	ProductID int64
	Quantity  int64
}

// StockDemands agrupa las cantidades por producto y las ordena por ID, el orden
// en que se toman los bloqueos de fila al descontar stock.
func StockDemands(lines []Line) []StockDemand {
	byProduct := make(map[int64]int64, len(lines))
	for _, l := range lines {
		byProduct[l.ProductID] += l.Quantity
	}
	out := make([]StockDemand, 0, len(byProduct))
	for id, qty := range byProduct {
		out = append(out, StockDemand{ProductID: id, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
