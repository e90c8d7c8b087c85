package auth

import (
	"context"
	"crypto/subtle"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro con clave de administrador y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	adminKey string
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. Con adminKey vacía el registro queda cerrado.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, adminKey string, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, adminKey: adminKey, log: log.Named("auth")}
}

// RegisterUser crea un operador: valida la clave de administrador, hashea el password con bcrypt y persiste.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if uc.adminKey == "" || subtle.ConstantTimeCompare([]byte(in.AdminKey), []byte(uc.adminKey)) != 1 {
		uc.log.Warn().Str("username", in.Username).Msg("registro con clave de administrador incorrecta")
		return nil, domain.ErrInvalidAdminKey
	}
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || len(username) > 50 {
		return nil, domain.ErrInvalidInput.WithDetail("username requerido (máx. 50)")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidInput.WithDetail("email inválido")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput.WithDetail("el password debe tener al menos %d caracteres", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica username/password y genera el JWT. Usuario inexistente y password
// incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrBadCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
