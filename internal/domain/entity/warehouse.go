package entity

import "time"

// Warehouse representa un almacén de la empresa. Puede atender a varias sucursales.
// Nunca se borra físicamente: la baja es Active=false.
type Warehouse struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	IsPrimary   bool
	Active      bool
	CreatedAt   time.Time
}
