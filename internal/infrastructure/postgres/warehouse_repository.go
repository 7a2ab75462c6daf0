package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para almacenes.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste un nuevo almacén.
func (r *WarehouseRepo) Create(ctx context.Context, scope tenant.Scope, w *entity.Warehouse) error {
	args, err := scopedArgs(scope, w.ID, w.Name, w.Description, w.IsPrimary, w.Active, w.CreatedAt)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, insertWarehouseSQL, args...); err != nil {
		return translate("insert warehouse", err)
	}
	w.CompanyID = scope.CompanyID()
	return nil
}

// GetByID obtiene un almacén por ID dentro de la empresa.
func (r *WarehouseRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Warehouse, error) {
	args, err := scopedArgs(scope, id)
	if err != nil {
		return nil, err
	}
	w, err := scanWarehouse(r.q.QueryRow(ctx, selectWarehouseSQL, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// Update aplica el parche en una sola sentencia y devuelve el almacén actualizado.
func (r *WarehouseRepo) Update(ctx context.Context, scope tenant.Scope, id string, p repository.WarehousePatch) (*entity.Warehouse, error) {
	args, err := scopedArgs(scope, id, p.Name, p.Description, p.IsPrimary, p.Active)
	if err != nil {
		return nil, err
	}
	w, err := scanWarehouse(r.q.QueryRow(ctx, updateWarehouseSQL, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("update warehouse: %w", domain.ErrNotFound)
		}
		return nil, translate("update warehouse", err)
	}
	return w, nil
}

// List lista almacenes por empresa con paginación.
func (r *WarehouseRepo) List(ctx context.Context, scope tenant.Scope, filter repository.ListFilter) ([]*entity.Warehouse, error) {
	args, err := scopedArgs(scope, filter.Active, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "list warehouses", listWarehousesSQL, args...)
}

// SoftDelete marca el almacén como inactivo.
func (r *WarehouseRepo) SoftDelete(ctx context.Context, scope tenant.Scope, id string) error {
	args, err := scopedArgs(scope, id)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, softDeleteWarehouseSQL, args...)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete warehouse: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByBranch almacenes que atienden a la sucursal.
func (r *WarehouseRepo) ListByBranch(ctx context.Context, scope tenant.Scope, branchID string) ([]*entity.Warehouse, error) {
	args, err := scopedArgs(scope, branchID)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "list warehouses by branch", listWarehousesByBranchSQL, args...)
}

// OwnerOf devuelve el company_id del almacén o "" si no existe.
func (r *WarehouseRepo) OwnerOf(ctx context.Context, id string) (string, error) {
	var companyID string
	if err := r.q.QueryRow(ctx, warehouseOwnerSQL, id).Scan(&companyID); err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("warehouse owner: %w", err)
	}
	return companyID, nil
}

func (r *WarehouseRepo) query(ctx context.Context, op, sql string, args ...any) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	if err := row.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Description, &w.IsPrimary, &w.Active, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
