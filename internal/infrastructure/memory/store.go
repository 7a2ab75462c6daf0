// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (desarrollo local) y en los tests de casos de uso y HTTP.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/company-service/internal/application/ports"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type userBranchKey struct{ userID, branchID string }

type branchWarehouseKey struct{ branchID, warehouseID string }

// state son las "tablas". Las entidades se guardan por valor para no compartir punteros.
type state struct {
	branches   map[string]entity.Branch
	warehouses map[string]entity.Warehouse
	userLinks  map[userBranchKey]time.Time
	whLinks    map[branchWarehouseKey]time.Time
}

func newState() *state {
	return &state{
		branches:   make(map[string]entity.Branch),
		warehouses: make(map[string]entity.Warehouse),
		userLinks:  make(map[userBranchKey]time.Time),
		whLinks:    make(map[branchWarehouseKey]time.Time),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.branches {
		c.branches[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.userLinks {
		c.userLinks[k] = v
	}
	for k, v := range s.whLinks {
		c.whLinks[k] = v
	}
	return c
}

// Store base de datos en memoria segura para uso concurrente.
type Store struct {
	mu   sync.RWMutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Branches devuelve el repositorio de sucursales sobre este store.
func (s *Store) Branches() *BranchRepo { return &BranchRepo{s: s} }

// Warehouses devuelve el repositorio de almacenes.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

// Assignments devuelve el repositorio de vínculos.
func (s *Store) Assignments() *AssignmentRepo { return &AssignmentRepo{s: s} }

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
// Mientras dura bloquea el resto de operaciones del store.
func (s *Store) Run(ctx context.Context, fn func(
	branches repository.BranchRepository,
	warehouses repository.WarehouseRepository,
	links repository.AssignmentRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := &Store{data: s.data.clone()}
	if err := fn(work.Branches(), work.Warehouses(), work.Assignments()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work.data
	return nil
}

func (s *Store) read(fn func(d *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(fn func(d *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// page aplica el orden (created_at, id) y la paginación de los listados.
func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func page[T any](items []T, key func(T) (time.Time, string), filter repository.ListFilter) []T {
	sortByCreation(items, key)
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return items[:0]
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items
}

func sortByCreation[T any](items []T, key func(T) (time.Time, string)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})
}
