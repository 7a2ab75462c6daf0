package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/application/ports"
	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// BranchUseCase casos de uso CRUD para sucursales, siempre dentro del alcance de la empresa.
type BranchUseCase struct {
	repo repository.BranchRepository
	tx   ports.TxRunner
	now  Clock
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, tx ports.TxRunner) *BranchUseCase {
	return &BranchUseCase{repo: repo, tx: tx, now: systemClock}
}

// WithClock reemplaza el reloj (tests).
func (uc *BranchUseCase) WithClock(c Clock) *BranchUseCase {
	uc.now = c
	return uc
}

// Create crea una sucursal para la empresa del alcance. Si viene warehouse_id, el alta y el
// vínculo con el almacén se hacen en la misma transacción.
func (uc *BranchUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Active:    boolOr(in.Active, true),
		CreatedAt: uc.now(),
	}
	if in.WarehouseID == nil {
		if err := uc.repo.Create(ctx, scope, branch); err != nil {
			return nil, err
		}
		return toBranchResponse(branch), nil
	}

	warehouseID := *in.WarehouseID
	err := uc.tx.Run(ctx, func(branches repository.BranchRepository, warehouses repository.WarehouseRepository, links repository.AssignmentRepository) error {
		if err := checkOwnership(ctx, scope, warehouses.OwnerOf, warehouseID, "almacén"); err != nil {
			return err
		}
		if err := branches.Create(ctx, scope, branch); err != nil {
			return err
		}
		return links.AssignWarehouse(ctx, scope, &entity.BranchWarehouseAssignment{
			BranchID:    branch.ID,
			WarehouseID: warehouseID,
			CreatedAt:   branch.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal. Inexistente y de otra empresa se reportan igual (ErrNotFound).
func (uc *BranchUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.BranchResponse, error) {
	branch, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// Update aplica solo los campos presentes. id, company_id y created_at no son actualizables.
func (uc *BranchUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	in.Name = trimPtr(in.Name)
	in.Address = trimPtr(in.Address)
	in.Phone = trimPtr(in.Phone)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !isID(id) {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	// Sin lectura previa: el repositorio aplica el parche de forma atómica.
	branch, err := uc.repo.Update(ctx, scope, id, repository.BranchPatch{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		Active:  in.Active,
	})
	if err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// List lista sucursales de la empresa ordenadas por fecha de creación.
func (uc *BranchUseCase) List(ctx context.Context, scope tenant.Scope, q dto.ListQuery) (*dto.BranchListResponse, error) {
	filter := toListFilter(q)
	list, err := uc.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	return &dto.BranchListResponse{
		Items: toBranchResponses(list),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Delete da de baja lógica la sucursal (active=false). Repetirlo no es error.
func (uc *BranchUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if !isID(id) {
		return fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	return uc.repo.SoftDelete(ctx, scope, id)
}

func (uc *BranchUseCase) get(ctx context.Context, scope tenant.Scope, id string) (*entity.Branch, error) {
	if !isID(id) {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	branch, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	return branch, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
	}
}

func toBranchResponses(list []*entity.Branch) []dto.BranchResponse {
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return items
}
