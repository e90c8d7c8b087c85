package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de dominio; la capa HTTP lo traduce a un status.
type Kind string

const (
	KindNotFound       Kind = "NOT_FOUND"
	KindValidation     Kind = "VALIDATION"
	KindConflict       Kind = "CONFLICT"
	KindBusinessRule   Kind = "BUSINESS_RULE"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindInfrastructure Kind = "INFRASTRUCTURE"
)

// Error es un error de dominio con código estable y mensaje para el usuario.
// Dos errores con el mismo Code son equivalentes para errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Code, así un error con detalle sigue coincidiendo con su centinela.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail devuelve una copia con el mensaje ampliado (ej. el id del producto).
func (e *Error) WithDetail(format string, args ...any) *Error {
	cp := *e
	cp.Message = e.Message + ": " + fmt.Sprintf(format, args...)
	return &cp
}

// Wrap devuelve una copia que envuelve la causa original.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput   = newError(KindValidation, "VALIDATION", "entrada inválida")
	ErrInvalidTaxID   = newError(KindValidation, "INVALID_TAX_ID", "el RUC debe tener exactamente 11 dígitos")
	ErrInvalidFilter  = newError(KindValidation, "INVALID_FILTER", "filtro de búsqueda inválido")
	ErrInvalidStock   = newError(KindValidation, "INVALID_STOCK", "el stock debe ser un entero entre 0 y 2147483647")
	ErrInvalidPrice   = newError(KindValidation, "INVALID_PRICE", "el precio debe ser mayor que cero y menor que 100000000")
	ErrInvalidRequest = newError(KindValidation, "INVALID_BODY", "cuerpo inválido")

	ErrClientNotFound  = newError(KindNotFound, "CLIENT_NOT_FOUND", "cliente no encontrado")
	ErrProductNotFound = newError(KindNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado")
	ErrInvoiceNotFound = newError(KindNotFound, "INVOICE_NOT_FOUND", "factura no encontrada")

	ErrDuplicateTaxID   = newError(KindConflict, "DUPLICATE_TAX_ID", "ya existe un cliente con ese RUC")
	ErrDuplicateProduct = newError(KindConflict, "DUPLICATE_PRODUCT", "ya existe un producto con ese nombre")
	ErrDuplicateUser    = newError(KindConflict, "DUPLICATE_USER", "el usuario o email ya está registrado")
	ErrDuplicateNumber  = newError(KindConflict, "DUPLICATE_NUMBER", "número de factura duplicado")

	ErrInsufficientStock = newError(KindBusinessRule, "INSUFFICIENT_STOCK", "stock insuficiente")
	ErrEmptyInvoice      = newError(KindBusinessRule, "EMPTY_INVOICE", "la factura debe tener al menos un producto")

	ErrUnauthorized    = newError(KindUnauthorized, "UNAUTHORIZED", "no autorizado")
	ErrBadCredentials  = newError(KindUnauthorized, "BAD_CREDENTIALS", "usuario o contraseña incorrectos")
	ErrInvalidAdminKey = newError(KindUnauthorized, "INVALID_ADMIN_KEY", "clave secreta de administrador incorrecta")
)

// KindOf devuelve la categoría del error. Todo lo que no es error de dominio
// se considera de infraestructura.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInfrastructure
}
