// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa con STORE_DRIVER=memory (desarrollo local) y en los tests de casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/entity"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

type state struct {
	items      map[string]*entity.InventoryItem
	categories map[string]*entity.Category
	sales      map[string]*entity.Sale
}

func newState() *state {
	return &state{
		items:      make(map[string]*entity.InventoryItem),
		categories: make(map[string]*entity.Category),
		sales:      make(map[string]*entity.Sale),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.items {
		out.items[k] = v.Clone()
	}
	for k, v := range s.categories {
		c := *v
		out.categories[k] = &c
	}
	for k, v := range s.sales {
		sale := *v
		out.sales[k] = &sale
	}
	return out
}

// Store estado compartido de los repositorios en memoria, protegido por un mutex.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// access ejecuta fn sobre el estado: el de la transacción si tx != nil, o el compartido bajo lock.
func (s *Store) access(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Items repositorio de ítems sobre el estado compartido.
func (s *Store) Items() *ItemRepo { return &ItemRepo{store: s} }

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{store: s} }

// Sales repositorio de ventas.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{store: s} }

// TxRunner runner transaccional sobre este store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{store: s} }

// TxRunner serializa las transacciones: toma el lock, trabaja sobre una copia del estado
// y la publica solo si fn termina sin error.
type TxRunner struct {
	store *Store
}

// Run ejecuta fn con repositorios atados a la copia; cualquier error descarta la copia.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	sales repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx := r.store.state.clone()
	if err := fn(&ItemRepo{store: r.store, tx: tx}, &SaleRepo{store: r.store, tx: tx}); err != nil {
		return err
	}
	r.store.state = tx
	return nil
}
