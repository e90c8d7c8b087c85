package memory

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct {
	h *handle
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.h.do(func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username || existing.Email == u.Email {
				return domain.ErrDuplicateUser
			}
		}
		u.ID = st.nextID()
		u.CreatedAt = r.h.s.now()
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.h.do(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
