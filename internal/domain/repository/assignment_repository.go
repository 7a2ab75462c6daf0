package repository

import (
	"context"

	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// AssignmentRepository persiste las dos relaciones N:M (usuario-sucursal y sucursal-almacén).
//
// Los Assign* devuelven domain.ErrConflict cuando el par ya existe (violación de la PK)
// y domain.ErrNotFound si algún extremo no pertenece al alcance. Los Unassign* son
// idempotentes: borrar un vínculo inexistente no es error.
type AssignmentRepository interface {
	AssignUser(ctx context.Context, scope tenant.Scope, link *entity.UserBranchAssignment) error
	ListUsers(ctx context.Context, scope tenant.Scope, branchID string) ([]*entity.UserBranchAssignment, error)
	UnassignUser(ctx context.Context, scope tenant.Scope, userID, branchID string) error

	AssignWarehouse(ctx context.Context, scope tenant.Scope, link *entity.BranchWarehouseAssignment) error
	UnassignWarehouse(ctx context.Context, scope tenant.Scope, branchID, warehouseID string) error
}
