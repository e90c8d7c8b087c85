package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeOutOfRange      = "22003"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// isCheckViolation detecta CHECK constraints (ej. stock >= 0).
func isCheckViolation(err error) bool {
	return pgErrorCode(err) == codeCheckViolation
}

// isOutOfRange detecta valores que no caben en la columna (numeric_value_out_of_range).
func isOutOfRange(err error) bool {
	return pgErrorCode(err) == codeOutOfRange
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
