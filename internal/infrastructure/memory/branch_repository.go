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

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación en memoria de BranchRepository.
type BranchRepo struct {
	s *Store
}

// Create persiste la sucursal forzando el company_id del alcance.
func (r *BranchRepo) Create(_ context.Context, scope tenant.Scope, branch *entity.Branch) error {
	if err := scope.Check(); err != nil {
		return err
	}
	branch.CompanyID = scope.CompanyID()
	return r.s.write(func(d *state) error {
		if _, ok := d.branches[branch.ID]; ok {
			return fmt.Errorf("insert branch: %w", domain.ErrConflict)
		}
		d.branches[branch.ID] = *branch
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe en la empresa del alcance.
func (r *BranchRepo) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Branch, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var out *entity.Branch
	r.s.read(func(d *state) {
		if b, ok := d.branches[id]; ok && scope.Owns(b.CompanyID) {
			out = &b
		}
	})
	return out, nil
}

// Update mezcla los campos no nil del parche bajo el lock de escritura.
// id, company_id y created_at se conservan.
func (r *BranchRepo) Update(_ context.Context, scope tenant.Scope, id string, p repository.BranchPatch) (*entity.Branch, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var out entity.Branch
	err := r.s.write(func(d *state) error {
		cur, ok := d.branches[id]
		if !ok || !scope.Owns(cur.CompanyID) {
			return fmt.Errorf("update branch: %w", domain.ErrNotFound)
		}
		setIf(&cur.Name, p.Name)
		setIf(&cur.Address, p.Address)
		setIf(&cur.Phone, p.Phone)
		setIf(&cur.Active, p.Active)
		d.branches[id] = cur
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lista las sucursales de la empresa.
func (r *BranchRepo) List(_ context.Context, scope tenant.Scope, filter repository.ListFilter) ([]*entity.Branch, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var list []*entity.Branch
	r.s.read(func(d *state) {
		for _, b := range d.branches {
			if !scope.Owns(b.CompanyID) {
				continue
			}
			if filter.Active != nil && b.Active != *filter.Active {
				continue
			}
			b := b
			list = append(list, &b)
		}
	})
	return page(list, branchKey, filter), nil
}

// SoftDelete marca active=false. Idempotente.
func (r *BranchRepo) SoftDelete(_ context.Context, scope tenant.Scope, id string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	return r.s.write(func(d *state) error {
		cur, ok := d.branches[id]
		if !ok || !scope.Owns(cur.CompanyID) {
			return fmt.Errorf("delete branch: %w", domain.ErrNotFound)
		}
		cur.Active = false
		d.branches[id] = cur
		return nil
	})
}

// ListByWarehouse sucursales vinculadas al almacén, solo de la empresa del alcance.
func (r *BranchRepo) ListByWarehouse(_ context.Context, scope tenant.Scope, warehouseID string) ([]*entity.Branch, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var list []*entity.Branch
	r.s.read(func(d *state) {
		for k := range d.whLinks {
			if k.warehouseID != warehouseID {
				continue
			}
			if b, ok := d.branches[k.branchID]; ok && scope.Owns(b.CompanyID) {
				b := b
				list = append(list, &b)
			}
		}
	})
	sortByCreation(list, branchKey)
	return list, nil
}

// OwnerOf devuelve el company_id de la sucursal o "" si no existe.
func (r *BranchRepo) OwnerOf(_ context.Context, id string) (string, error) {
	var owner string
	r.s.read(func(d *state) {
		if b, ok := d.branches[id]; ok {
			owner = b.CompanyID
		}
	})
	return owner, nil
}

func branchKey(b *entity.Branch) (time.Time, string) { return b.CreatedAt, b.ID }
