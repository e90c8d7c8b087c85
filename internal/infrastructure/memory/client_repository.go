package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo repositorio de clientes en memoria.
type ClientRepo struct {
	h *handle
}

func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	return r.h.do(func(st *state) error {
		for _, c := range st.clients {
			if c.TaxID == client.TaxID {
				return domain.ErrDuplicateTaxID
			}
		}
		client.ID = st.nextID()
		client.CreatedAt = r.h.s.now()
		st.clients[client.ID] = *client
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	var out *entity.Client
	err := r.h.do(func(st *state) error {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Client, error) {
	var out *entity.Client
	err := r.h.do(func(st *state) error {
		for _, c := range st.clients {
			if c.TaxID == taxID {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.h.do(func(st *state) error {
		for _, c := range st.clients {
			c := c
			list = append(list, &c)
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
