package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// ClientHandler maneja las peticiones HTTP de clientes (protegido).
type ClientHandler struct {
	uc  *catalog.ClientUseCase
	log *logger.Logger
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *catalog.ClientUseCase, log *logger.Logger) *ClientHandler {
	return &ClientHandler{uc: uc, log: log}
}

// Create POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	client, err := h.uc.RegisterClient(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// List GET /api/clients (ordenados por nombre, alimenta el selector de la factura)
func (h *ClientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListClients(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
