package invoice

import (
	"regexp"
	"strings"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"golang.org/x/text/unicode/norm"
)

// Paginación del listado de facturas.
const (
	DefaultLimit = 50
	MaxLimit     = 200
	maxDateLen   = 19
)

// Valores aceptados en el formulario criterio/valor.
const (
	CriterioNumero  = "numero"
	CriterioFecha   = "fecha"
	CriterioCliente = "cliente"
)

var (
	numberPattern = regexp.MustCompile(`^[0-9]{4}$`)
	clientPattern = regexp.MustCompile(`^[\p{L} ]+$`)
	datePattern   = regexp.MustCompile(`^[0-9:/ -]+$`)
)

// FilterInput filtros tal como llegan del cliente HTTP.
type FilterInput struct {
	Number   string
	Client   string
	Date     string
	Criterio string
	Valor    string
	Limit    int
	Offset   int
}

// ParseFilter valida los filtros y los convierte en un repository.InvoiceFilter.
// Cualquier valor inválido devuelve domain.ErrInvalidFilter sin llegar al repositorio.
func ParseFilter(in FilterInput) (repository.InvoiceFilter, error) {
	number := strings.TrimSpace(in.Number)
	client := strings.TrimSpace(in.Client)
	date := strings.TrimSpace(in.Date)

	if criterio := strings.ToLower(strings.TrimSpace(in.Criterio)); criterio != "" {
		valor := strings.TrimSpace(in.Valor)
		var target *string
		switch criterio {
		case CriterioNumero:
			target = &number
		case CriterioFecha:
			target = &date
		case CriterioCliente:
			target = &client
		default:
			return repository.InvoiceFilter{}, domain.ErrInvalidFilter.WithDetail("criterio %q no soportado", in.Criterio)
		}
		if *target != "" && *target != valor {
			return repository.InvoiceFilter{}, domain.ErrInvalidFilter.WithDetail("criterio %q duplicado", criterio)
		}
		*target = valor
	}

	f := repository.InvoiceFilter{Limit: in.Limit, Offset: in.Offset}

	if number != "" {
		if !numberPattern.MatchString(number) {
			return repository.InvoiceFilter{}, domain.ErrInvalidFilter.WithDetail("el número debe tener 4 dígitos")
		}
		f.NumberSuffix = number
	}
	if client != "" {
		client = norm.NFC.String(client)
		if !clientPattern.MatchString(client) {
			return repository.InvoiceFilter{}, domain.ErrInvalidFilter.WithDetail("el cliente sólo admite letras y espacios")
		}
		f.ClientName = client
	}
	if date != "" {
		if len(date) > maxDateLen || !datePattern.MatchString(date) {
			return repository.InvoiceFilter{}, domain.ErrInvalidFilter.WithDetail("fecha con formato inválido")
		}
		f.DateText = date
	}

	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f, nil
}
