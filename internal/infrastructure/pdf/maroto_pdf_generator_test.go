package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/pdf"
)

func sampleInvoice() *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:       1,
		Number:   "FACT-1000",
		Date:     time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		DateText: "2026-03-14 10:30:00",
		Client: dto.InvoiceClientResponse{
			ID: 1, Name: "Juan Pérez", TaxID: "10987654321", Address: "Calle Falsa 123", Phone: "987654321",
		},
		Items: []dto.InvoiceItemResponse{
			{ID: 1, ProductID: 1, ProductName: "Laptop HP", Quantity: 1,
				UnitPrice: decimal.RequireFromString("750.00"), UnitPriceText: "S/.750.00",
				Subtotal: decimal.RequireFromString("750.00"), SubtotalText: "S/.750.00"},
			{ID: 2, ProductID: 2, ProductName: "Mouse Inalámbrico", Quantity: 3,
				UnitPrice: decimal.RequireFromString("99.99"), UnitPriceText: "S/.99.99",
				Subtotal: decimal.RequireFromString("299.97"), SubtotalText: "S/.299.97"},
		},
		Total:     decimal.RequireFromString("1049.97"),
		TotalText: "S/.1049.97",
		Currency:  "S/.",
	}
}

func TestGenerate_DevuelvePDFValido(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Facturación API")

	data, err := g.Generate(sampleInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "el documento empieza con la cabecera PDF")
}

func TestGenerate_FacturaSinDatosDeContacto(t *testing.T) {
	inv := sampleInvoice()
	inv.Client.Address = ""
	inv.Client.Phone = ""
	inv.Currency = ""

	data, err := pdf.NewMarotoPDFGenerator("").Generate(inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerate_FacturaNula(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("").Generate(nil)
	assert.Error(t, err)
}
