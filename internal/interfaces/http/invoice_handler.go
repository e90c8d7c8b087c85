package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain/invoice"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
	log *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, log: log}
}

// Create crea una factura y descuenta inventario.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateInvoice(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("request_id", GetRequestID(c)).
		Str("username", GetUsername(c)).
		Str("number", out.Number).
		Msg("factura emitida")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene la factura completa (cabecera, cliente y líneas).
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := invoice.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetInvoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update reemplaza cliente y líneas de una factura existente.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, err := invoice.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateInvoice(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete elimina la factura y sus líneas.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := invoice.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.DeleteInvoice(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Search lista facturas con filtros opcionales (number, client, date) o con el
// formulario criterio/valor.
// GET /api/invoices?number=1000&client=juan&date=2026-03&limit=50&offset=0
func (h *InvoiceHandler) Search(c *fiber.Ctx) error {
	var q dto.InvoiceSearchQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SearchInvoices(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF descarga la factura como factura_<número>.pdf.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id, err := invoice.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	data, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
