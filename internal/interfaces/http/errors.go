package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

const internalMessage = "error interno, intente más tarde"

// statusFor traduce el Kind del error de dominio a un status HTTP.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindBusinessRule:
		return fiber.StatusUnprocessableEntity
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con dto.ErrorResponse. Los errores de infraestructura se
// registran completos y al cliente sólo le llega un mensaje genérico.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var de *domain.Error
	if errors.As(err, &de) && de.Kind != domain.KindInfrastructure {
		return c.Status(statusFor(de.Kind)).JSON(dto.ErrorResponse{Code: de.Code, Message: de.Message})
	}

	log.Error().Err(err).
		Str("request_id", GetRequestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error de infraestructura")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage})
}

// badBody respuesta para un body que no se pudo decodificar.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: domain.ErrInvalidRequest.Code, Message: domain.ErrInvalidRequest.Message,
	})
}
