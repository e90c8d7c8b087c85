package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID    = "user_id"
	LocalUsername  = "username"
	LocalRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"
)

// AuthMiddleware valida el Bearer Token JWT y deja UserID y Username en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, username, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, username)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth); 0 si no hay sesión.
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetUsername devuelve el username del contexto (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// maxRequestIDLen ids entrantes más largos se reemplazan por uno generado.
const maxRequestIDLen = 64

// RequestID asigna un uuid a cada petición (o respeta el X-Request-ID entrante)
// y lo devuelve en la respuesta.
func RequestID() fiber.Handler {
	assign := requestid.New(requestid.Config{
		Header:     HeaderRequestID,
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	})
	return func(c *fiber.Ctx) error {
		if len(c.Get(HeaderRequestID)) > maxRequestIDLen {
			c.Request().Header.Del(HeaderRequestID)
		}
		return assign(c)
	}
}

// GetRequestID id de la petición en curso ("" si RequestID no está montado).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}
