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

// WarehouseUseCase casos de uso CRUD para almacenes.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
	tx   ports.TxRunner
	now  Clock
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, tx ports.TxRunner) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, tx: tx, now: systemClock}
}

// WithClock reemplaza el reloj (tests).
func (uc *WarehouseUseCase) WithClock(c Clock) *WarehouseUseCase {
	uc.now = c
	return uc
}

// Create crea un almacén. Con branch_id: valida la sucursal, crea el almacén y el vínculo
// en una sola transacción; si algo falla no queda almacén creado.
func (uc *WarehouseUseCase) Create(ctx context.Context, scope tenant.Scope, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := scope.Check(); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	warehouse := &entity.Warehouse{
		ID:          uuid.New().String(),
		CompanyID:   scope.CompanyID(),
		Name:        in.Name,
		Description: in.Description,
		IsPrimary:   in.IsPrimary,
		Active:      boolOr(in.Active, true),
		CreatedAt:   uc.now(),
	}
	if in.BranchID == nil {
		if err := uc.repo.Create(ctx, scope, warehouse); err != nil {
			return nil, err
		}
		return toWarehouseResponse(warehouse), nil
	}

	branchID := *in.BranchID
	err := uc.tx.Run(ctx, func(branches repository.BranchRepository, warehouses repository.WarehouseRepository, links repository.AssignmentRepository) error {
		if err := checkOwnership(ctx, scope, branches.OwnerOf, branchID, "sucursal"); err != nil {
			return err
		}
		if err := warehouses.Create(ctx, scope, warehouse); err != nil {
			return err
		}
		return links.AssignWarehouse(ctx, scope, &entity.BranchWarehouseAssignment{
			BranchID:    branchID,
			WarehouseID: warehouse.ID,
			CreatedAt:   warehouse.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene un almacén de la empresa.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, scope tenant.Scope, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza un almacén (parcial).
func (uc *WarehouseUseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	in.Name = trimPtr(in.Name)
	in.Description = trimPtr(in.Description)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !isID(id) {
		return nil, fmt.Errorf("%w: almacén %s", domain.ErrNotFound, id)
	}
	warehouse, err := uc.repo.Update(ctx, scope, id, repository.WarehousePatch{
		Name:        in.Name,
		Description: in.Description,
		IsPrimary:   in.IsPrimary,
		Active:      in.Active,
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista almacenes por empresa con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, scope tenant.Scope, q dto.ListQuery) (*dto.WarehouseListResponse, error) {
	filter := toListFilter(q)
	list, err := uc.repo.List(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	return &dto.WarehouseListResponse{
		Items: toWarehouseResponses(list),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Delete da de baja lógica el almacén.
func (uc *WarehouseUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	if !isID(id) {
		return fmt.Errorf("%w: almacén %s", domain.ErrNotFound, id)
	}
	return uc.repo.SoftDelete(ctx, scope, id)
}

func (uc *WarehouseUseCase) get(ctx context.Context, scope tenant.Scope, id string) (*entity.Warehouse, error) {
	if !isID(id) {
		return nil, fmt.Errorf("%w: almacén %s", domain.ErrNotFound, id)
	}
	warehouse, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: almacén %s", domain.ErrNotFound, id)
	}
	return warehouse, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:          w.ID,
		CompanyID:   w.CompanyID,
		Name:        w.Name,
		Description: w.Description,
		IsPrimary:   w.IsPrimary,
		Active:      w.Active,
		CreatedAt:   w.CreatedAt,
	}
}

func toWarehouseResponses(list []*entity.Warehouse) []dto.WarehouseResponse {
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items
}
