// Package memory implementa los repositorios sobre mapas en memoria.
// Sirve como driver de desarrollo (STORE_DRIVER=memory) y como fixture de tests.
package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// numberStart primer valor de la secuencia de facturas.
const numberStart = 1000

// state es todo lo que una transacción puede deshacer.
type state struct {
	clients  map[int64]entity.Client
	products map[int64]entity.Product
	invoices map[int64]entity.Invoice
	items    map[int64]entity.InvoiceItem
	users    map[int64]entity.User
	lastID   int64
}

func newState() *state {
	return &state{
		clients:  make(map[int64]entity.Client),
		products: make(map[int64]entity.Product),
		invoices: make(map[int64]entity.Invoice),
		items:    make(map[int64]entity.InvoiceItem),
		users:    make(map[int64]entity.User),
	}
}

func (s *state) clone() *state {
	cp := &state{
		clients:  make(map[int64]entity.Client, len(s.clients)),
		products: make(map[int64]entity.Product, len(s.products)),
		invoices: make(map[int64]entity.Invoice, len(s.invoices)),
		items:    make(map[int64]entity.InvoiceItem, len(s.items)),
		users:    make(map[int64]entity.User, len(s.users)),
		lastID:   s.lastID,
	}
	for k, v := range s.clients {
		cp.clients[k] = v
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.invoices {
		cp.invoices[k] = v
	}
	for k, v := range s.items {
		cp.items[k] = v
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	return cp
}

func (s *state) nextID() int64 {
	s.lastID++
	return s.lastID
}

// Store guarda el estado bajo un mutex. Las transacciones trabajan sobre una copia
// y la publican sólo al confirmar; la secuencia de números queda fuera de la copia
// para que, como nextval, no retroceda en un rollback.
type Store struct {
	mu  sync.Mutex
	st  *state
	seq atomic.Int64
	now func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	s := &Store{st: newState(), now: time.Now}
	s.seq.Store(numberStart - 1)
	return s
}

// WithClock fija el reloj usado para fechas de factura y timestamps (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// handle da acceso al estado: el vivo (bloqueando por llamada) o la copia de una tx.
type handle struct {
	s  *Store
	st *state
	tx bool
}

func (h *handle) do(fn func(st *state) error) error {
	if h.tx {
		return fn(h.st)
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return fn(h.s.st)
}

func (s *Store) live() *handle { return &handle{s: s} }

// Clients, Products, Invoices y Users devuelven repos fuera de transacción.
func (s *Store) Clients() *ClientRepo   { return &ClientRepo{h: s.live()} }
func (s *Store) Products() *ProductRepo { return &ProductRepo{h: s.live()} }
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{h: s.live()} }
func (s *Store) Users() *UserRepo       { return &UserRepo{h: s.live()} }

// run serializa las transacciones: mientras fn corre nadie más ve ni toca el estado.
func (s *Store) run(ctx context.Context, fn func(h *handle) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&handle{s: s, st: work, tx: true}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// RunBilling ejecuta fn con repos de clientes, productos y facturas sobre la misma tx.
func (s *Store) RunBilling(ctx context.Context, fn func(
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return s.run(ctx, func(h *handle) error {
		return fn(&ClientRepo{h: h}, &ProductRepo{h: h}, &InvoiceRepo{h: h})
	})
}

// RunStock ejecuta fn con el repo de productos en una tx.
func (s *Store) RunStock(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return s.run(ctx, func(h *handle) error {
		return fn(&ProductRepo{h: h})
	})
}
