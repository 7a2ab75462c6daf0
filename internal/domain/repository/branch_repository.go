package repository

import (
	"context"

	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, scope tenant.Scope, branch *entity.Branch) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Branch, error)
	// Update aplica el parche en una sola escritura y devuelve la fila resultante.
	Update(ctx context.Context, scope tenant.Scope, id string, patch BranchPatch) (*entity.Branch, error)
	List(ctx context.Context, scope tenant.Scope, filter ListFilter) ([]*entity.Branch, error)
	SoftDelete(ctx context.Context, scope tenant.Scope, id string) error
	ListByWarehouse(ctx context.Context, scope tenant.Scope, warehouseID string) ([]*entity.Branch, error)
	OwnerOf(ctx context.Context, id string) (string, error)
}
