package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación en memoria de WarehouseRepository.
type WarehouseRepo struct {
	s *Store
}

// Create persiste el almacén forzando el company_id del alcance.
func (r *WarehouseRepo) Create(_ context.Context, scope tenant.Scope, warehouse *entity.Warehouse) error {
	if err := scope.Check(); err != nil {
		return err
	}
	warehouse.CompanyID = scope.CompanyID()
	return r.s.write(func(d *state) error {
		if _, ok := d.warehouses[warehouse.ID]; ok {
			return fmt.Errorf("insert warehouse: %w", domain.ErrConflict)
		}
		d.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe en la empresa del alcance.
func (r *WarehouseRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Warehouse, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var out *entity.Warehouse
	r.s.read(func(d *state) {
		if w, ok := d.warehouses[id]; ok && scope.Owns(w.CompanyID) {
			out = &w
		}
	})
	return out, nil
}

// Update mezcla los campos no nil del parche bajo el lock de escritura.
func (r *WarehouseRepo) Update(_ context.Context, scope tenant.Scope, id string, p repository.WarehousePatch) (*entity.Warehouse, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var out entity.Warehouse
	err := r.s.write(func(d *state) error {
		cur, ok := d.warehouses[id]
		if !ok || !scope.Owns(cur.CompanyID) {
			return fmt.Errorf("update warehouse: %w", domain.ErrNotFound)
		}
		setIf(&cur.Name, p.Name)
		setIf(&cur.Description, p.Description)
		setIf(&cur.IsPrimary, p.IsPrimary)
		setIf(&cur.Active, p.Active)
		d.warehouses[id] = cur
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lista los almacenes de la empresa.
func (r *WarehouseRepo) List(_ context.Context, scope tenant.Scope, filter repository.ListFilter) ([]*entity.Warehouse, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var list []*entity.Warehouse
	r.s.read(func(d *state) {
		for _, w := range d.warehouses {
			if !scope.Owns(w.CompanyID) {
				continue
			}
			if filter.Active != nil && w.Active != *filter.Active {
				continue
			}
			w := w
			list = append(list, &w)
		}
	})
	return page(list, warehouseKey, filter), nil
}

// SoftDelete marca active=false. Idempotente.
func (r *WarehouseRepo) SoftDelete(_ context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	return r.s.write(func(d *state) error {
		cur, ok := d.warehouses[id]
		if !ok || !scope.Owns(cur.CompanyID) {
			return fmt.Errorf("delete warehouse: %w", domain.ErrNotFound)
		}
		cur.Active = false
		d.warehouses[id] = cur
		return nil
	})
}

// ListByBranch almacenes vinculados a la sucursal, solo de la empresa del alcance.
func (r *WarehouseRepo) ListByBranch(_ context.Context, scope tenant.Scope, branchID string) ([]*entity.Warehouse, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var list []*entity.Warehouse
	r.s.read(func(d *state) {
		for k := range d.whLinks {
			if k.branchID != branchID {
				continue
			}
			if w, ok := d.warehouses[k.warehouseID]; ok && scope.Owns(w.CompanyID) {
				w := w
				list = append(list, &w)
			}
		}
	})
	sortByCreation(list, warehouseKey)
	return list, nil
}

// OwnerOf devuelve el company_id del almacén o "" si no existe.
func (r *WarehouseRepo) OwnerOf(_ context.Context, id string) (string, error) {
	var owner string
	r.s.read(func(d *state) {
		if w, ok := d.warehouses[id]; ok {
			owner = w.CompanyID
		}
	})
	return owner, nil
}

func warehouseKey(w *entity.Warehouse) (time.Time, string) { return w.CreatedAt, w.ID }
