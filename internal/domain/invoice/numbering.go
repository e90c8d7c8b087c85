// Package invoice contiene las reglas puras de facturación: numeración,
// cálculo de subtotales y totales, validación de filtros y de valores de stock.
package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPrefix prefijo de numeración cuando la configuración no define otro.
const DefaultPrefix = "FACT"

// DateLayout formato textual de la fecha de factura (vista, PDF y filtro por fecha).
const DateLayout = "2006-01-02 15:04:05"

// SessionTimeZone zona en la que PostgreSQL renderiza fechas para el filtro; la vista usa la misma.
const SessionTimeZone = "UTC"

// FormatDate texto de la fecha en UTC, igual al que compara el filtro por fecha.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatNumber construye el número visible de la factura: PREFIJO-<secuencia>.
func FormatNumber(prefix string, seq int64) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s-%d", prefix, seq)
}

// FormatMoney redondea a 2 decimales y antepone el símbolo de moneda (ej. "S/.12.50").
func FormatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + amount.Round(2).StringFixed(2)
}
