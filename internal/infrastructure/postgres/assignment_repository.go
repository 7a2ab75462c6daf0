package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo persiste user_branches y branch_warehouses.
// La unicidad del par la garantiza la PK compuesta; el 23505 se traduce a ErrConflict.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// AssignUser inserta el vínculo usuario-sucursal.
func (r *AssignmentRepo) AssignUser(ctx context.Context, scope tenant.Scope, link *entity.UserBranchAssignment) error {
	args, err := scopedArgs(scope, link.UserID, link.BranchID, link.CreatedAt)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, insertUserBranchSQL, args...)
	if err != nil {
		return translate("insert user branch", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("insert user branch: %w", domain.ErrNotFound)
	}
	return nil
}

// ListUsers asignaciones de la sucursal.
func (r *AssignmentRepo) ListUsers(ctx context.Context, scope tenant.Scope, branchID string) ([]*entity.UserBranchAssignment, error) {
	args, err := scopedArgs(scope, branchID)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, listUserBranchesSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("list user branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserBranchAssignment
	for rows.Next() {
		var l entity.UserBranchAssignment
		if err := rows.Scan(&l.UserID, &l.BranchID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user branch: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UnassignUser borra el vínculo. 0 filas afectadas no es error.
func (r *AssignmentRepo) UnassignUser(ctx context.Context, scope tenant.Scope, userID, branchID string) error {
	args, err := scopedArgs(scope, userID, branchID)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, deleteUserBranchSQL, args...); err != nil {
		return fmt.Errorf("delete user branch: %w", err)
	}
	return nil
}

// AssignWarehouse inserta el vínculo sucursal-almacén (ambos de la empresa del alcance).
func (r *AssignmentRepo) AssignWarehouse(ctx context.Context, scope tenant.Scope, link *entity.BranchWarehouseAssignment) error {
	args, err := scopedArgs(scope, link.BranchID, link.WarehouseID, link.CreatedAt)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, insertBranchWarehouseSQL, args...)
	if err != nil {
		return translate("insert branch warehouse", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("insert branch warehouse: %w", domain.ErrNotFound)
	}
	return nil
}

// UnassignWarehouse borra el vínculo. Idempotente.
func (r *AssignmentRepo) UnassignWarehouse(ctx context.Context, scope tenant.Scope, branchID, warehouseID string) error {
	args, err := scopedArgs(scope, branchID, warehouseID)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, deleteBranchWarehouseSQL, args...); err != nil {
		return fmt.Errorf("delete branch warehouse: %w", err)
	}
	return nil
}
