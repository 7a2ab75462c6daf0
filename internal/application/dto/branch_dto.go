package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal.
// company_id no se acepta: sale siempre de la identidad del llamante.
type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Address string `json:"address" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=15"`
	Active  *bool  `json:"active"`
	// Almacén existente que atenderá la sucursal (opcional, se vincula en la misma transacción).
	WarehouseID *string `json:"warehouse_id" validate:"omitempty,uuid"`
}

// UpdateBranchRequest entrada para actualización parcial: solo cambian los campos presentes.
type UpdateBranchRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=50"`
	Address *string `json:"address" validate:"omitempty,min=1,max=100"`
	Phone   *string `json:"phone" validate:"omitempty,max=15"`
	Active  *bool   `json:"active"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// BranchListResponse lista paginada de sucursales.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
