// Package pdf genera la versión imprimible de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Factura #FACT-1000                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Fecha / Cliente / Dirección / Teléfono                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cantidad | Precio Unitario | Subtotal     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Total                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador. author se escribe en los metadatos del documento.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// Generate renderiza la factura y devuelve los bytes del PDF.
func (g *MarotoPDFGenerator) Generate(inv *dto.InvoiceResponse) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("pdf: factura nula")
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Factura #"+inv.Number, true)
	if g.author != "" {
		builder = builder.WithAuthor(g.author, true)
	}

	m := maroto.New(builder.Build())

	m.AddRows(titleRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRows(inv)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(inv.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(inv))
	if inv.Currency != "" {
		m.AddRows(footerRow(inv.Currency))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(inv *dto.InvoiceResponse) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Factura #"+inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Center,
				Color: colorPrimary, Top: 3,
			}),
		),
	)
}

// infoRows: una fila por dato del encabezado (etiqueta en negrita + valor).
func infoRows(inv *dto.InvoiceResponse) []core.Row {
	fields := []struct{ label, value string }{
		{"Fecha:", inv.DateText},
		{"Cliente:", inv.Client.Name},
		{"Dirección:", nonEmpty(inv.Client.Address, "-")},
		{"Teléfono:", nonEmpty(inv.Client.Phone, "-")},
	}
	rows := make([]core.Row, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, row.New(7).Add(
			col.New(3).Add(text.New(f.label, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
			col.New(9).Add(text.New(f.value, props.Text{Size: 10, Top: 1})),
		))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(9).Add(
		h("Producto", 5, align.Left),
		h("Cantidad", 2, align.Center),
		h("Precio Unitario", 3, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

func tableItemRows(items []dto.InvoiceItemResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(it.ProductName, props.Text{Size: 9, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.FormatInt(it.Quantity, 10), props.Text{Size: 9, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(it.UnitPriceText, props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(it.SubtotalText, props.Text{Size: 9, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(inv *dto.InvoiceResponse) core.Row {
	return row.New(10).Add(
		col.New(7),
		col.New(3).Add(text.New("Total:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
		col.New(2).Add(text.New(inv.TotalText, props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func footerRow(currency string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Montos expresados en "+currency, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center}),
	))
}
