package entity

import "time"

// UserBranchAssignment vincula un usuario del servicio de identidad con una sucursal.
// UserID es una referencia opaca: no se valida ni se borra en cascada.
type UserBranchAssignment struct {
	UserID    string
	BranchID  string
	CreatedAt time.Time
}

// BranchWarehouseAssignment indica qué almacén atiende a qué sucursal.
// Ambos lados pertenecen a la misma empresa.
type BranchWarehouseAssignment struct {
	BranchID    string
	WarehouseID string
	CreatedAt   time.Time
}
