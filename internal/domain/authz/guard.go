package authz

import (
	"fmt"

	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

// Identity es el llamante resuelto por el proveedor de identidad.
// No se cachea entre peticiones.
type Identity struct {
	UserID      string
	CompanyID   string
	IsOwner     bool
	Permissions PermissionSet
}

// Scope devuelve el alcance de empresa del llamante.
func (id Identity) Scope() (tenant.Scope, error) {
	return tenant.NewScope(id.CompanyID)
}

// Decision resultado de la autorización.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize decide si la identidad puede ejecutar action sobre resource.
// Los dueños de la empresa siempre pasan, sin mirar el conjunto de permisos.
func Authorize(id Identity, action Action, resource Resource) Decision {
	if id.IsOwner {
		return Allow
	}
	if id.Permissions.Has(action, resource) {
		return Allow
	}
	return Deny
}

// Require es Authorize expresado como error: nil o domain.ErrForbidden.
func Require(id Identity, action Action, resource Resource) error {
	if Authorize(id, action, resource) == Allow {
		return nil
	}
	return fmt.Errorf("%w: falta permiso %s:%s", domain.ErrForbidden, action, resource)
}
