package dto

import "time"

// AssignUserRequest body para asignar un usuario a una sucursal (la sucursal viene del path).
type AssignUserRequest struct {
	// Texto o número, según cómo identifique a los usuarios el servicio de identidad.
	UserID ExternalID `json:"user_id" validate:"required,max=100" swaggertype:"string"`
}

// UserBranchAssignmentResponse vínculo usuario-sucursal.
type UserBranchAssignmentResponse struct {
	UserID    string    `json:"user_id"`
	BranchID  string    `json:"branch_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignBranchRequest body para vincular un almacén (path) con una sucursal.
type AssignBranchRequest struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
}

// BranchWarehouseAssignmentResponse vínculo sucursal-almacén.
type BranchWarehouseAssignmentResponse struct {
	BranchID    string    `json:"branch_id"`
	WarehouseID string    `json:"warehouse_id"`
	CreatedAt   time.Time `json:"created_at"`
}
