package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/invoice"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo repositorio de facturas en memoria.
type InvoiceRepo struct {
	h *handle
}

// NextNumber avanza la secuencia compartida; no participa del rollback.
func (r *InvoiceRepo) NextNumber(_ context.Context) (int64, error) {
	return r.h.s.seq.Add(1), nil
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.clients[inv.ClientID]; !ok {
			return fmt.Errorf("insert invoice: client %d no existe", inv.ClientID)
		}
		for _, existing := range st.invoices {
			if existing.Number == inv.Number {
				return domain.ErrDuplicateNumber
			}
		}
		inv.ID = st.nextID()
		inv.Date = r.h.s.now()
		st.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *InvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	return r.h.do(func(st *state) error {
		if _, ok := st.invoices[item.InvoiceID]; !ok {
			return fmt.Errorf("insert invoice item: factura %d no existe", item.InvoiceID)
		}
		if _, ok := st.products[item.ProductID]; !ok {
			return fmt.Errorf("insert invoice item: producto %d no existe", item.ProductID)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("insert invoice item: cantidad %d", item.Quantity)
		}
		item.ID = st.nextID()
		st.items[item.ID] = *item
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id int64) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.h.do(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) GetView(_ context.Context, id int64) (*entity.InvoiceView, error) {
	var out *entity.InvoiceView
	err := r.h.do(func(st *state) error {
		inv, ok := st.invoices[id]
		if !ok {
			return nil
		}
		c := st.clients[inv.ClientID]
		out = &entity.InvoiceView{
			Invoice:       inv,
			ClientName:    c.Name,
			ClientTaxID:   c.TaxID,
			ClientAddress: c.Address,
			ClientPhone:   c.Phone,
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) GetItemsByInvoiceID(_ context.Context, invoiceID int64) ([]*entity.InvoiceItemView, error) {
	var list []*entity.InvoiceItemView
	err := r.h.do(func(st *state) error {
		for _, it := range st.items {
			if it.InvoiceID != invoiceID {
				continue
			}
			list = append(list, &entity.InvoiceItemView{
				InvoiceItem: it,
				ProductName: st.products[it.ProductID].Name,
			})
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

func (r *InvoiceRepo) UpdateHeader(_ context.Context, inv *entity.Invoice) error {
	return r.h.do(func(st *state) error {
		existing, ok := st.invoices[inv.ID]
		if !ok {
			return domain.ErrInvoiceNotFound
		}
		existing.ClientID = inv.ClientID
		existing.Total = inv.Total
		st.invoices[inv.ID] = existing
		return nil
	})
}

func (r *InvoiceRepo) DeleteItems(_ context.Context, invoiceID int64) (int64, error) {
	var n int64
	err := r.h.do(func(st *state) error {
		for id, it := range st.items {
			if it.InvoiceID == invoiceID {
				delete(st.items, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *InvoiceRepo) Delete(_ context.Context, id int64) (int64, error) {
	var n int64
	err := r.h.do(func(st *state) error {
		if _, ok := st.invoices[id]; !ok {
			return nil
		}
		for _, it := range st.items {
			if it.InvoiceID == id {
				return fmt.Errorf("delete invoice: la factura %d aún tiene líneas", id)
			}
		}
		delete(st.invoices, id)
		n = 1
		return nil
	})
	return n, err
}

// Search aplica los mismos criterios que la consulta SQL: sufijo de número,
// subcadena del cliente sin distinguir mayúsculas y subcadena de la fecha formateada.
func (r *InvoiceRepo) Search(_ context.Context, f repository.InvoiceFilter) ([]*entity.InvoiceSummary, error) {
	list := make([]*entity.InvoiceSummary, 0)
	err := r.h.do(func(st *state) error {
		for _, inv := range st.invoices {
			c := st.clients[inv.ClientID]
			if f.NumberSuffix != "" && !strings.HasSuffix(inv.Number, "-"+f.NumberSuffix) {
				continue
			}
			if f.ClientName != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.ClientName)) {
				continue
			}
			if f.DateText != "" && !strings.Contains(invoice.FormatDate(inv.Date), f.DateText) {
				continue
			}
			list = append(list, &entity.InvoiceSummary{
				ID:         inv.ID,
				Number:     inv.Number,
				Date:       inv.Date,
				ClientID:   inv.ClientID,
				ClientName: c.Name,
				Total:      inv.Total,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})

	if f.Offset >= len(list) {
		return list[:0], nil
	}
	list = list[f.Offset:]
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}
