package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/invoice"
)

// GetInvoice devuelve la factura con cliente y líneas. La misma estructura alimenta el PDF.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id int64) (_ *dto.InvoiceResponse, err error) {
	start := time.Now()
	defer func() { uc.observe(OpGet, start, err) }()

	return uc.InvoiceDocument(ctx, id)
}

// InvoiceDocument carga la misma vista que GetInvoice sin registrar la operación.
// La usan otras operaciones (PDF) que ya registran la suya.
func (uc *InvoiceUseCase) InvoiceDocument(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	view, err := uc.invoiceRepo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrInvoiceNotFound.WithDetail("id %d", id)
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(view, items), nil
}

// SearchInvoices valida los filtros y lista las facturas, más recientes primero.
func (uc *InvoiceUseCase) SearchInvoices(ctx context.Context, q dto.InvoiceSearchQuery) (_ *dto.InvoiceListResponse, err error) {
	start := time.Now()
	defer func() { uc.observe(OpSearch, start, err) }()

	filter, err := invoice.ParseFilter(invoice.FilterInput{
		Number:   q.Number,
		Client:   q.Client,
		Date:     q.Date,
		Criterio: q.Criterio,
		Valor:    q.Valor,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, err
	}
	rows, err := uc.invoiceRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceSummaryResponse, 0, len(rows)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Count: len(rows)},
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.InvoiceSummaryResponse{
			ID:         r.ID,
			Number:     r.Number,
			Date:       r.Date,
			ClientID:   r.ClientID,
			ClientName: r.ClientName,
			Total:      r.Total,
		})
	}
	return out, nil
}

func (uc *InvoiceUseCase) toResponse(view *entity.InvoiceView, items []*entity.InvoiceItemView) *dto.InvoiceResponse {
	symbol := uc.cfg.CurrencySymbol
	resp := &dto.InvoiceResponse{
		ID:       view.ID,
		Number:   view.Number,
		Date:     view.Date,
		DateText: invoice.FormatDate(view.Date),
		Client: dto.InvoiceClientResponse{
			ID:      view.ClientID,
			Name:    view.ClientName,
			TaxID:   view.ClientTaxID,
			Address: view.ClientAddress,
			Phone:   view.ClientPhone,
		},
		Items:     make([]dto.InvoiceItemResponse, 0, len(items)),
		Total:     view.Total,
		TotalText: invoice.FormatMoney(symbol, view.Total),
		Currency:  symbol,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			UnitPriceText: invoice.FormatMoney(symbol, it.UnitPrice),
			Subtotal:      it.Subtotal,
			SubtotalText:  invoice.FormatMoney(symbol, it.Subtotal),
		})
	}
	return resp
}
