package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/company-service/internal/application/dto"
	"github.com/jhoicas/company-service/internal/application/usecase"
)

// AssignmentHandler vínculos usuario-sucursal y sucursal-almacén.
type AssignmentHandler struct {
	uc *usecase.AssignmentUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *usecase.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// AssignUser godoc
// @Summary      Asignar usuario a sucursal
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la sucursal"
// @Param        body  body  dto.AssignUserRequest  true  "Usuario"
// @Success      201   {object}  dto.UserBranchAssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /branches/{id}/users [post]
func (h *AssignmentHandler) AssignUser(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AssignUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AssignUser(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers godoc
// @Summary      Usuarios asignados a la sucursal
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sucursal"
// @Success      200  {array}   dto.UserBranchAssignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /branches/{id}/users [get]
func (h *AssignmentHandler) ListUsers(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListUsers(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UnassignUser godoc
// @Summary      Quitar usuario de la sucursal
// @Description  Idempotente: quitar un vínculo inexistente responde 204.
// @Tags         assignments
// @Security     Bearer
// @Param        id       path  string  true  "ID de la sucursal"
// @Param        user_id  path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /branches/{id}/users/{user_id} [delete]
func (h *AssignmentHandler) UnassignUser(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UnassignUser(c.UserContext(), scope, c.Params("id"), c.Params("user_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListWarehouses godoc
// @Summary      Almacenes que atienden a la sucursal
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sucursal"
// @Success      200  {array}   dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /branches/{id}/warehouses [get]
func (h *AssignmentHandler) ListWarehouses(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListWarehousesForBranch(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AssignBranch godoc
// @Summary      Vincular almacén con sucursal
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del almacén"
// @Param        body  body  dto.AssignBranchRequest  true  "Sucursal"
// @Success      201   {object}  dto.BranchWarehouseAssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /warehouses/{id}/branches [post]
func (h *AssignmentHandler) AssignBranch(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AssignBranchRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AssignWarehouse(c.UserContext(), scope, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBranches godoc
// @Summary      Sucursales atendidas por el almacén
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del almacén"
// @Success      200  {array}   dto.BranchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /warehouses/{id}/branches [get]
func (h *AssignmentHandler) ListBranches(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListBranchesForWarehouse(c.UserContext(), scope, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UnassignBranch godoc
// @Summary      Desvincular almacén de la sucursal
// @Description  Idempotente.
// @Tags         assignments
// @Security     Bearer
// @Param        id         path  string  true  "ID del almacén"
// @Param        branch_id  path  string  true  "ID de la sucursal"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /warehouses/{id}/branches/{branch_id} [delete]
func (h *AssignmentHandler) UnassignBranch(c *fiber.Ctx) error {
	scope, err := GetScope(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UnassignWarehouse(c.UserContext(), scope, c.Params("id"), c.Params("branch_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
