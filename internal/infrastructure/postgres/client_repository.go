package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, tax_id, name, address, phone, email, created_at`

// Create persiste un cliente y completa ID y CreatedAt.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (tax_id, name, address, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		client.TaxID, client.Name, client.Address, client.Phone, client.Email,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTaxID.Wrap(err)
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidTaxID.Wrap(err)
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByTaxID obtiene un cliente por RUC.
func (r *ClientRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM clients WHERE tax_id = $1`, taxID)
}

func (r *ClientRepo) getOne(ctx context.Context, query string, arg any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.TaxID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List devuelve todos los clientes ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.TaxID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
