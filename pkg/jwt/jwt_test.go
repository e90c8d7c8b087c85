package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/facturacion-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, "operador", "facturacion-test", 5)
	require.NoError(t, err)

	id, username, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "operador", username)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, "operador", "facturacion-test", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 7, "operador", "facturacion-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 7, "operador", "facturacion-test", 5)
	assert.Error(t, err)
}
