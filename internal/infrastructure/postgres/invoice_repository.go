package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// NextNumber toma el siguiente valor de invoices_number_seq. nextval no participa del
// rollback: un número tomado en una transacción fallida queda sin usar.
func (r *InvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('invoices_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("nextval invoices_number_seq: %w", err)
	}
	return n, nil
}

// Create inserta la cabecera y completa ID y Date.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (number, client_id, total)
		VALUES ($1, $2, $3)
		RETURNING id, date`
	err := r.q.QueryRow(ctx, query, inv.Number, inv.ClientID, inv.Total).Scan(&inv.ID, &inv.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNumber.Wrap(err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de factura.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (invoice_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		item.InvoiceID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx,
		`SELECT id, number, date, client_id, total FROM invoices WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.Number, &inv.Date, &inv.ClientID, &inv.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetView obtiene la cabecera con los datos del cliente.
func (r *InvoiceRepo) GetView(ctx context.Context, id int64) (*entity.InvoiceView, error) {
	query := `
		SELECT i.id, i.number, i.date, i.client_id, i.total,
		       c.name, c.tax_id, c.address, c.phone
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.id = $1`
	var v entity.InvoiceView
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Number, &v.Date, &v.ClientID, &v.Total,
		&v.ClientName, &v.ClientTaxID, &v.ClientAddress, &v.ClientPhone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice view: %w", err)
	}
	return &v, nil
}

// GetItemsByInvoiceID devuelve las líneas con el nombre del producto, en orden de inserción.
func (r *InvoiceRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID int64) ([]*entity.InvoiceItemView, error) {
	query := `
		SELECT it.id, it.invoice_id, it.product_id, it.quantity, it.unit_price, it.subtotal, p.name
		FROM invoice_items it
		JOIN products p ON p.id = it.product_id
		WHERE it.invoice_id = $1
		ORDER BY it.id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItemView
	for rows.Next() {
		var it entity.InvoiceItemView
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal, &it.ProductName); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateHeader actualiza cliente y total.
func (r *InvoiceRepo) UpdateHeader(ctx context.Context, inv *entity.Invoice) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET client_id = $2, total = $3 WHERE id = $1`, inv.ID, inv.ClientID, inv.Total)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// DeleteItems borra todas las líneas de la factura.
func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("delete invoice items: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete borra la cabecera.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete invoice: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Search lista facturas con el nombre del cliente, más recientes primero.
// Los valores del filtro llegan validados (sin comodines), se pasan siempre como parámetros.
func (r *InvoiceRepo) Search(ctx context.Context, f repository.InvoiceFilter) ([]*entity.InvoiceSummary, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.NumberSuffix != "" {
		add(`i.number LIKE $%d`, "%-"+f.NumberSuffix)
	}
	if f.ClientName != "" {
		add(`c.name ILIKE $%d`, "%"+f.ClientName+"%")
	}
	if f.DateText != "" {
		add(`to_char(i.date, 'YYYY-MM-DD HH24:MI:SS') LIKE $%d`, "%"+f.DateText+"%")
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT i.id, i.number, i.date, i.client_id, c.name, i.total
		FROM invoices i
		JOIN clients c ON c.id = i.client_id`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	args = append(args, f.Limit, f.Offset)
	fmt.Fprintf(&sb, " ORDER BY i.date DESC, i.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InvoiceSummary, 0)
	for rows.Next() {
		var s entity.InvoiceSummary
		if err := rows.Scan(&s.ID, &s.Number, &s.Date, &s.ClientID, &s.ClientName, &s.Total); err != nil {
			return nil, fmt.Errorf("scan invoice summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
