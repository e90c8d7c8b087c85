package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

const (
	testSecret   = "secreto-auth-test"
	testAdminKey = "clave-admin"
)

func newAuth() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 5, Issuer: "test"}, testAdminKey, logger.Nop())
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{Username: "operador", Email: "operador@example.com", Password: "password123", AdminKey: testAdminKey}
}

func TestRegisterUser_ClaveAdminIncorrecta(t *testing.T) {
	uc := newAuth()
	in := registerReq()
	in.AdminKey = "otra"

	_, err := uc.RegisterUser(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidAdminKey)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))
}

func TestRegisterUser_RegistroCerradoSinClave(t *testing.T) {
	uc := auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 5}, "", logger.Nop())
	in := registerReq()
	in.AdminKey = ""

	_, err := uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidAdminKey)
}

func TestRegisterUser_PasswordCorto(t *testing.T) {
	uc := newAuth()
	in := registerReq()
	in.Password = "corto"

	_, err := uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_Duplicado(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.RegisterUser(ctx, registerReq())
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, registerReq())
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	user, err := uc.RegisterUser(ctx, registerReq())
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "operador", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "operador", res.User.Username)

	id, username, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "operador", username)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.RegisterUser(ctx, registerReq())
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "operador", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}
