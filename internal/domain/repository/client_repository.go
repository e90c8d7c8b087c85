package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// Los Get devuelven (nil, nil) cuando no existe el registro.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Client, error)
	List(ctx context.Context) ([]*entity.Client, error)
}
