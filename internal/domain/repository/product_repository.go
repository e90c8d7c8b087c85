package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByName busca sin distinguir mayúsculas.
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// SetStock fija el stock absoluto. Devuelve domain.ErrProductNotFound si no existe.
	SetStock(ctx context.Context, id int64, stock int64) error
	// DecrementStock resta qty sólo si hay stock suficiente; si no, domain.ErrInsufficientStock.
	DecrementStock(ctx context.Context, id int64, qty int64) error
}
