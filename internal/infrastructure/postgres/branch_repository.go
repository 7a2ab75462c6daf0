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

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL (usable con pool o tx).
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste una nueva sucursal. company_id sale del alcance, no de la entidad.
func (r *BranchRepo) Create(ctx context.Context, scope tenant.Scope, b *entity.Branch) error {
	args, err := scopedArgs(scope, b.ID, b.Name, b.Address, b.Phone, b.Active, b.CreatedAt)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, insertBranchSQL, args...); err != nil {
		return translate("insert branch", err)
	}
	b.CompanyID = scope.CompanyID()
	return nil
}

// GetByID obtiene una sucursal de la empresa; (nil, nil) si no existe en ese alcance.
func (r *BranchRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Branch, error) {
	args, err := scopedArgs(scope, id)
	if err != nil {
		return nil, err
	}
	b, err := scanBranch(r.q.QueryRow(ctx, selectBranchSQL, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

// Update aplica solo los campos no nil del parche, en un único UPDATE ... RETURNING.
func (r *BranchRepo) Update(ctx context.Context, scope tenant.Scope, id string, p repository.BranchPatch) (*entity.Branch, error) {
	args, err := scopedArgs(scope, id, p.Name, p.Address, p.Phone, p.Active)
	if err != nil {
		return nil, err
	}
	b, err := scanBranch(r.q.QueryRow(ctx, updateBranchSQL, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("update branch: %w", domain.ErrNotFound)
		}
		return nil, translate("update branch", err)
	}
	return b, nil
}

// List lista sucursales de la empresa con filtro de estado y paginación.
func (r *BranchRepo) List(ctx context.Context, scope tenant.Scope, filter repository.ListFilter) ([]*entity.Branch, error) {
	args, err := scopedArgs(scope, filter.Active, filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "list branches", listBranchesSQL, args...)
}

// SoftDelete marca la sucursal como inactiva. PostgreSQL cuenta la fila aunque ya estuviera
// inactiva, así que repetirlo no da ErrNotFound.
func (r *BranchRepo) SoftDelete(ctx context.Context, scope tenant.Scope, id string) error {
	args, err := scopedArgs(scope, id)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, softDeleteBranchSQL, args...)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("delete branch: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByWarehouse sucursales atendidas por el almacén.
func (r *BranchRepo) ListByWarehouse(ctx context.Context, scope tenant.Scope, warehouseID string) ([]*entity.Branch, error) {
	args, err := scopedArgs(scope, warehouseID)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, "list branches by warehouse", listBranchesByWarehouseSQL, args...)
}

// OwnerOf devuelve el company_id de la sucursal o "" si no existe.
func (r *BranchRepo) OwnerOf(ctx context.Context, id string) (string, error) {
	var companyID string
	if err := r.q.QueryRow(ctx, branchOwnerSQL, id).Scan(&companyID); err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("branch owner: %w", err)
	}
	return companyID, nil
}

func (r *BranchRepo) query(ctx context.Context, op, sql string, args ...any) ([]*entity.Branch, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.Phone, &b.Active, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
