package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMigrateURL_EsquemaPgx5(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/facturacion?sslmode=disable",
		migrateURL("postgres://u:p@db:5432/facturacion?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/facturacion", migrateURL("postgresql://u@db/facturacion"))
	assert.Equal(t, "pgx5://ya/adaptado", migrateURL("pgx5://ya/adaptado"))
}

func TestMigraciones_Embebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2, "al menos un par up/down")
}

func TestPgErrorCode_AtraviesaWrap(t *testing.T) {
	err := fmt.Errorf("insert client: %w", &pgconn.PgError{Code: codeUniqueViolation})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isCheckViolation(err))
	assert.False(t, isOutOfRange(err))
	assert.Empty(t, pgErrorCode(fmt.Errorf("otro")))

	rango := fmt.Errorf("update stock: %w", &pgconn.PgError{Code: codeOutOfRange})
	assert.True(t, isOutOfRange(rango))
}
