package repository

import (
	"context"

	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Todo método sobre filas de la empresa recibe el alcance; GetByID devuelve (nil, nil)
// cuando la fila no existe o pertenece a otra empresa.
type WarehouseRepository interface {
	Create(ctx context.Context, scope tenant.Scope, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, scope tenant.Scope, id string, patch WarehousePatch) (*entity.Warehouse, error)
	List(ctx context.Context, scope tenant.Scope, filter ListFilter) ([]*entity.Warehouse, error)
	SoftDelete(ctx context.Context, scope tenant.Scope, id string) error
	// ListByBranch devuelve los almacenes vinculados a la sucursal, solo de la empresa del alcance.
	ListByBranch(ctx context.Context, scope tenant.Scope, branchID string) ([]*entity.Warehouse, error)
	// OwnerOf devuelve el company_id dueño del almacén sin filtrar por empresa, o "" si no existe.
	// Solo para distinguir NotFound de CrossTenant al vincular.
	OwnerOf(ctx context.Context, id string) (string, error)
}
