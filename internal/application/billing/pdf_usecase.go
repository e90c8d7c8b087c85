package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
)

// InvoiceReader lectura de la factura completa (implementado por InvoiceUseCase).
type InvoiceReader interface {
	InvoiceDocument(ctx context.Context, id int64) (*dto.InvoiceResponse, error)
}

// PDFUseCase genera el PDF a partir de la misma vista que devuelve GET /api/invoices/:id.
type PDFUseCase struct {
	reader    InvoiceReader
	generator InvoicePDFGenerator
	recorder  OperationRecorder
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(reader InvoiceReader, generator InvoicePDFGenerator, recorder OperationRecorder) *PDFUseCase {
	return &PDFUseCase{reader: reader, generator: generator, recorder: recorder}
}

// DownloadInvoicePDF devuelve los bytes del PDF y el nombre de archivo factura_<número>.pdf.
// Si la factura no existe devuelve domain.ErrInvoiceNotFound.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, id int64) (pdfBytes []byte, filename string, err error) {
	start := time.Now()
	defer func() {
		if uc.recorder != nil {
			uc.recorder.ObserveInvoiceOperation(OpPDF, domain.KindOf(err), time.Since(start))
		}
	}()

	doc, err := uc.reader.InvoiceDocument(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.Generate(doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar factura %s: %w", doc.Number, err)
	}
	return pdfBytes, PDFFilename(doc.Number), nil
}

// PDFFilename nombre de descarga del PDF de una factura.
func PDFFilename(number string) string {
	return "factura_" + number + ".pdf"
}
