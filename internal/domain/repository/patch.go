package repository

// BranchPatch cambios parciales de una sucursal: los campos nil no se tocan.
type BranchPatch struct {
	Name    *string
	Address *string
	Phone   *string
	Active  *bool
}

// WarehousePatch cambios parciales de un almacén: los campos nil no se tocan.
type WarehousePatch struct {
	Name        *string
	Description *string
	IsPrimary   *bool
	Active      *bool
}
