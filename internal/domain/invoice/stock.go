package invoice

import (
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/facturacion-api/internal/domain"
)

// MaxStock y MaxQuantity son el rango de las columnas INTEGER de stock y cantidad.
const (
	MaxStock    int64 = math.MaxInt32
	MaxQuantity int64 = math.MaxInt32
)

// ParseStockValue interpreta el valor crudo de un campo de stock.
// Sólo acepta enteros entre 0 y MaxStock; cualquier otra cosa es domain.ErrInvalidStock.
func ParseStockValue(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 || v > MaxStock {
		return 0, domain.ErrInvalidStock.WithDetail("%q", raw)
	}
	return v, nil
}

// ParseID interpreta un identificador numérico positivo (claves del formulario de stock, params de ruta).
func ParseID(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0, domain.ErrInvalidInput.WithDetail("id %q inválido", raw)
	}
	return v, nil
}

// ValidStock indica si un stock cabe en la columna.
func ValidStock(v int64) bool {
	return v >= 0 && v <= MaxStock
}
