package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// AssignmentUseCase mantiene los vínculos usuario-sucursal y sucursal-almacén.
//
// La autorización sobre user_branch_assignments / branch_warehouse_assignments la hace
// la capa HTTP antes de llamar aquí.
type AssignmentUseCase struct {
	branches   repository.BranchRepository
	warehouses repository.WarehouseRepository
	links      repository.AssignmentRepository
	now        Clock
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	branches repository.BranchRepository,
	warehouses repository.WarehouseRepository,
	links repository.AssignmentRepository,
) *AssignmentUseCase {
	return &AssignmentUseCase{branches: branches, warehouses: warehouses, links: links, now: systemClock}
}

// WithClock reemplaza el reloj (tests).
func (uc *AssignmentUseCase) WithClock(c Clock) *AssignmentUseCase {
	uc.now = c
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuario ↔ sucursal
// ──────────────────────────────────────────────────────────────────────────────

// AssignUser asigna un usuario a una sucursal. El user_id no se valida contra el servicio
// de identidad. Sucursal de otra empresa → ErrCrossTenant; par repetido → ErrConflict.
func (uc *AssignmentUseCase) AssignUser(ctx context.Context, scope tenant.Scope, branchID string, in dto.AssignUserRequest) (*dto.UserBranchAssignmentResponse, error) {
	in.UserID = dto.ExternalID(strings.TrimSpace(in.UserID.String()))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, scope, uc.branches.OwnerOf, branchID, "sucursal"); err != nil {
		return nil, err
	}
	link := &entity.UserBranchAssignment{UserID: in.UserID.String(), BranchID: branchID, CreatedAt: uc.now()}
	if err := uc.links.AssignUser(ctx, scope, link); err != nil {
		return nil, err
	}
	return toUserAssignmentResponse(link), nil
}

// ListUsers lista los usuarios asignados a la sucursal.
func (uc *AssignmentUseCase) ListUsers(ctx context.Context, scope tenant.Scope, branchID string) ([]dto.UserBranchAssignmentResponse, error) {
	if err := uc.requireBranch(ctx, scope, branchID); err != nil {
		return nil, err
	}
	list, err := uc.links.ListUsers(ctx, scope, branchID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserBranchAssignmentResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toUserAssignmentResponse(l))
	}
	return items, nil
}

// UnassignUser quita la asignación. Si no existía no es error.
func (uc *AssignmentUseCase) UnassignUser(ctx context.Context, scope tenant.Scope, branchID, userID string) error {
	if err := uc.requireBranch(ctx, scope, branchID); err != nil {
		return err
	}
	return uc.links.UnassignUser(ctx, scope, userID, branchID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sucursal ↔ almacén
// ──────────────────────────────────────────────────────────────────────────────

// AssignWarehouse vincula un almacén con una sucursal. Ambos deben ser de la empresa del
// llamante: inexistente → ErrNotFound, de otra empresa → ErrCrossTenant.
func (uc *AssignmentUseCase) AssignWarehouse(ctx context.Context, scope tenant.Scope, warehouseID string, in dto.AssignBranchRequest) (*dto.BranchWarehouseAssignmentResponse, error) {
	in.BranchID = strings.TrimSpace(in.BranchID)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, scope, uc.warehouses.OwnerOf, warehouseID, "almacén"); err != nil {
		return nil, err
	}
	if err := checkOwnership(ctx, scope, uc.branches.OwnerOf, in.BranchID, "sucursal"); err != nil {
		return nil, err
	}
	link := &entity.BranchWarehouseAssignment{BranchID: in.BranchID, WarehouseID: warehouseID, CreatedAt: uc.now()}
	if err := uc.links.AssignWarehouse(ctx, scope, link); err != nil {
		return nil, err
	}
	return &dto.BranchWarehouseAssignmentResponse{
		BranchID:    link.BranchID,
		WarehouseID: link.WarehouseID,
		CreatedAt:   link.CreatedAt,
	}, nil
}

// ListWarehousesForBranch devuelve los almacenes que atienden a la sucursal.
func (uc *AssignmentUseCase) ListWarehousesForBranch(ctx context.Context, scope tenant.Scope, branchID string) ([]dto.WarehouseResponse, error) {
	if err := uc.requireBranch(ctx, scope, branchID); err != nil {
		return nil, err
	}
	list, err := uc.warehouses.ListByBranch(ctx, scope, branchID)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponses(list), nil
}

// ListBranchesForWarehouse devuelve las sucursales atendidas por el almacén.
func (uc *AssignmentUseCase) ListBranchesForWarehouse(ctx context.Context, scope tenant.Scope, warehouseID string) ([]dto.BranchResponse, error) {
	if err := uc.requireWarehouse(ctx, scope, warehouseID); err != nil {
		return nil, err
	}
	list, err := uc.branches.ListByWarehouse(ctx, scope, warehouseID)
	if err != nil {
		return nil, err
	}
	return toBranchResponses(list), nil
}

// UnassignWarehouse elimina el vínculo. Idempotente.
func (uc *AssignmentUseCase) UnassignWarehouse(ctx context.Context, scope tenant.Scope, warehouseID, branchID string) error {
	if err := uc.requireWarehouse(ctx, scope, warehouseID); err != nil {
		return err
	}
	if !isID(branchID) {
		return nil
	}
	return uc.links.UnassignWarehouse(ctx, scope, branchID, warehouseID)
}

func (uc *AssignmentUseCase) requireBranch(ctx context.Context, scope tenant.Scope, id string) error {
	if !isID(id) {
		return fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	b, err := uc.branches.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *AssignmentUseCase) requireWarehouse(ctx context.Context, scope tenant.Scope, id string) error {
	if !isID(id) {
		return fmt.Errorf("%w: almacén %s", domain.ErrNotFound, id)
	}
	w, err := uc.warehouses.GetByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: almacén %s", domain.ErrNotFound, id)
	}
	return nil
}

func toUserAssignmentResponse(l *entity.UserBranchAssignment) *dto.UserBranchAssignmentResponse {
	return &dto.UserBranchAssignmentResponse{
		UserID:    l.UserID,
		BranchID:  l.BranchID,
		CreatedAt: l.CreatedAt,
	}
}
