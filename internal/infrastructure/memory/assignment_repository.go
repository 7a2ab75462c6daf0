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

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación en memoria de AssignmentRepository.
// La unicidad del par se comprueba bajo el lock de escritura, igual que una PK.
type AssignmentRepo struct {
	s *Store
}

// AssignUser inserta el par (user_id, branch_id).
func (r *AssignmentRepo) AssignUser(_ context.Context, scope tenant.Scope, link *entity.UserBranchAssignment) error {
	if err := scope.Check(); err != nil {
		return err
	}
	return r.s.write(func(d *state) error {
		b, ok := d.branches[link.BranchID]
		if !ok || !scope.Owns(b.CompanyID) {
			return fmt.Errorf("insert user branch: %w", domain.ErrNotFound)
		}
		key := userBranchKey{userID: link.UserID, branchID: link.BranchID}
		if _, dup := d.userLinks[key]; dup {
			return fmt.Errorf("insert user branch: %w", domain.ErrConflict)
		}
		d.userLinks[key] = link.CreatedAt
		return nil
	})
}

// ListUsers asignaciones de la sucursal, si es de la empresa del alcance.
func (r *AssignmentRepo) ListUsers(_ context.Context, scope tenant.Scope, branchID string) ([]*entity.UserBranchAssignment, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	var list []*entity.UserBranchAssignment
	r.s.read(func(d *state) {
		b, ok := d.branches[branchID]
		if !ok || !scope.Owns(b.CompanyID) {
			return
		}
		for k, at := range d.userLinks {
			if k.branchID == branchID {
				list = append(list, &entity.UserBranchAssignment{UserID: k.userID, BranchID: k.branchID, CreatedAt: at})
			}
		}
	})
	sortByCreation(list, func(l *entity.UserBranchAssignment) (time.Time, string) { return l.CreatedAt, l.UserID })
	return list, nil
}

// UnassignUser borra el par si existe. Idempotente.
func (r *AssignmentRepo) UnassignUser(_ context.Context, scope tenant.Scope, userID, branchID string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	return r.s.write(func(d *state) error {
		b, ok := d.branches[branchID]
		if !ok || !scope.Owns(b.CompanyID) {
			return nil
		}
		delete(d.userLinks, userBranchKey{userID: userID, branchID: branchID})
		return nil
	})
}

// AssignWarehouse inserta el par (branch_id, warehouse_id); ambos deben ser de la empresa.
func (r *AssignmentRepo) AssignWarehouse(_ context.Context, scope tenant.Scope, link *entity.BranchWarehouseAssignment) error {
	if err := scope.Check(); err != nil {
		return err
	}
	return r.s.write(func(d *state) error {
		b, okB := d.branches[link.BranchID]
		w, okW := d.warehouses[link.WarehouseID]
		if !okB || !okW || !scope.Owns(b.CompanyID) || !scope.Owns(w.CompanyID) {
			return fmt.Errorf("insert branch warehouse: %w", domain.ErrNotFound)
		}
		key := branchWarehouseKey{branchID: link.BranchID, warehouseID: link.WarehouseID}
		if _, dup := d.whLinks[key]; dup {
			return fmt.Errorf("insert branch warehouse: %w", domain.ErrConflict)
		}
		d.whLinks[key] = link.CreatedAt
		return nil
	})
}

// UnassignWarehouse borra el par si existe. Idempotente.
func (r *AssignmentRepo) UnassignWarehouse(_ context.Context, scope tenant.Scope, branchID, warehouseID string) error {
	if err := scope.Check(); err != nil {
		return err
	}
	return r.s.write(func(d *state) error {
		b, ok := d.branches[branchID]
		if !ok || !scope.Owns(b.CompanyID) {
			return nil
		}
		delete(d.whLinks, branchWarehouseKey{branchID: branchID, warehouseID: warehouseID})
		return nil
	})
}
