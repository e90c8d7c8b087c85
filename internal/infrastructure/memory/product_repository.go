package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	h *handle
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.h.do(func(st *state) error {
		for _, existing := range st.products {
			if strings.EqualFold(existing.Name, p.Name) {
				return domain.ErrDuplicateProduct
			}
		}
		if p.Stock < 0 {
			return domain.ErrInvalidStock
		}
		now := r.h.s.now()
		p.ID = st.nextID()
		p.CreatedAt, p.UpdatedAt = now, now
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.do(func(st *state) error {
		for _, p := range st.products {
			if strings.EqualFold(p.Name, name) {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.h.do(func(st *state) error {
		for _, p := range st.products {
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return list, err
}

func (r *ProductRepo) SetStock(_ context.Context, id int64, stock int64) error {
	return r.h.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound.WithDetail("id %d", id)
		}
		if stock < 0 {
			return domain.ErrInvalidStock
		}
		p.Stock = stock
		p.UpdatedAt = r.h.s.now()
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) DecrementStock(_ context.Context, id int64, qty int64) error {
	return r.h.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok || p.Stock < qty {
			return domain.ErrInsufficientStock.WithDetail("producto %d", id)
		}
		p.Stock -= qty
		p.UpdatedAt = r.h.s.now()
		st.products[id] = p
		return nil
	})
}
