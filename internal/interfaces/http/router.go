package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientUC  *catalog.ClientUseCase
	ProductUC *catalog.ProductUseCase
	InvoiceUC *billing.InvoiceUseCase
	PDFUC     *billing.PDFUseCase
	JWTSecret string
	Logger    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, log)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)

	// /stock se registra antes que /:id
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/stock", productHandler.AdjustStock)
	products.Get("/:id", productHandler.GetByID)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, log)
	invoices.Get("/", invoiceHandler.Search)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}
