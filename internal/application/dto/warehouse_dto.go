package dto

import "time"

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Name        string `json:"name" validate:"required,max=70"`
	Description string `json:"description" validate:"omitempty,max=300"`
	IsPrimary   bool   `json:"is_primary"`
	Active      *bool  `json:"active"`
	// Sucursal a la que se asigna al crearse (opcional, todo o nada con el alta).
	BranchID *string `json:"branch_id" validate:"omitempty,uuid"`
}

// UpdateWarehouseRequest entrada para actualización parcial de un almacén.
type UpdateWarehouseRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=70"`
	Description *string `json:"description" validate:"omitempty,max=300"`
	IsPrimary   *bool   `json:"is_primary"`
	Active      *bool   `json:"active"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsPrimary   bool      `json:"is_primary"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// WarehouseListResponse lista paginada de almacenes.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
