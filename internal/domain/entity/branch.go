package entity

import "time"

// Branch representa una sucursal de la empresa (multi-tenant por CompanyID).
// Nunca se borra físicamente: la baja es Active=false.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	Active    bool
	CreatedAt time.Time
}
