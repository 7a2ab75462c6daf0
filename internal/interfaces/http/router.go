package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/company-service/internal/application/ports"
	"github.com/jhoicas/company-service/internal/application/usecase"
	"github.com/jhoicas/company-service/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BranchUC        *usecase.BranchUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	AssignmentUC    *usecase.AssignmentUseCase
	Identity        ports.IdentityGateway
	IdentityTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

// Router registra las rutas protegidas. Cada ruta exige su par (acción, recurso) antes de
// llegar al handler.
func Router(app *fiber.App, deps RouterDeps) {
	auth := AuthMiddleware(deps.Identity, deps.IdentityTimeout)
	limit := RateLimit(deps.RateLimitRPS, deps.RateLimitBurst)

	branchHandler := NewBranchHandler(deps.BranchUC)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)

	const (
		create = authz.ActionCreate
		read   = authz.ActionRead
		update = authz.ActionUpdate
		del    = authz.ActionDelete
	)

	// Branches (protegido)
	branches := app.Group("/branches", auth, limit)
	branches.Post("/", RequirePermission(create, authz.ResourceBranches), branchHandler.Create)
	branches.Get("/", RequirePermission(read, authz.ResourceBranches), branchHandler.List)
	branches.Get("/:id", RequirePermission(read, authz.ResourceBranches), branchHandler.GetByID)
	branches.Patch("/:id", RequirePermission(update, authz.ResourceBranches), branchHandler.Update)
	branches.Delete("/:id", RequirePermission(del, authz.ResourceBranches), branchHandler.Delete)

	// Usuarios de la sucursal
	branches.Post("/:id/users", RequirePermission(create, authz.ResourceUserBranchAssignments), assignmentHandler.AssignUser)
	branches.Get("/:id/users", RequirePermission(read, authz.ResourceUserBranchAssignments), assignmentHandler.ListUsers)
	branches.Delete("/:id/users/:user_id", RequirePermission(del, authz.ResourceUserBranchAssignments), assignmentHandler.UnassignUser)
	branches.Get("/:id/warehouses", RequirePermission(read, authz.ResourceBranchWarehouseAssignments), assignmentHandler.ListWarehouses)

	// Warehouses (protegido)
	warehouses := app.Group("/warehouses", auth, limit)
	warehouses.Post("/", RequirePermission(create, authz.ResourceWarehouses), warehouseHandler.Create)
	warehouses.Get("/", RequirePermission(read, authz.ResourceWarehouses), warehouseHandler.List)
	warehouses.Get("/:id", RequirePermission(read, authz.ResourceWarehouses), warehouseHandler.GetByID)
	warehouses.Patch("/:id", RequirePermission(update, authz.ResourceWarehouses), warehouseHandler.Update)
	warehouses.Delete("/:id", RequirePermission(del, authz.ResourceWarehouses), warehouseHandler.Delete)

	// Sucursales del almacén
	warehouses.Post("/:id/branches", RequirePermission(create, authz.ResourceBranchWarehouseAssignments), assignmentHandler.AssignBranch)
	warehouses.Get("/:id/branches", RequirePermission(read, authz.ResourceBranchWarehouseAssignments), assignmentHandler.ListBranches)
	warehouses.Delete("/:id/branches/:branch_id", RequirePermission(del, authz.ResourceBranchWarehouseAssignments), assignmentHandler.UnassignBranch)
}
