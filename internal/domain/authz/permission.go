package authz

import "strings"

// Action es la operación que se autoriza. Conjunto cerrado.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource es el recurso sobre el que se autoriza. Conjunto cerrado.
type Resource string

const (
	ResourceBranches                   Resource = "branches"
	ResourceWarehouses                 Resource = "warehouses"
	ResourceUserBranchAssignments      Resource = "user_branch_assignments"
	ResourceBranchWarehouseAssignments Resource = "branch_warehouse_assignments"
)

var (
	actions   = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
	resources = []Resource{
		ResourceBranches,
		ResourceWarehouses,
		ResourceUserBranchAssignments,
		ResourceBranchWarehouseAssignments,
	}
)

// ParseAction convierte el texto del proveedor de identidad en Action.
func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// ParseResource convierte el texto del proveedor de identidad en Resource.
func ParseResource(s string) (Resource, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range resources {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Permission es el par (acción, recurso).
type Permission struct {
	Action   Action
	Resource Resource
}

// String devuelve la forma "action:resource" usada en los claims JWT.
func (p Permission) String() string {
	return string(p.Action) + ":" + string(p.Resource)
}

// ParsePermission acepta "action:resource". Pares desconocidos devuelven ok=false.
func ParsePermission(s string) (Permission, bool) {
	action, resource, found := strings.Cut(s, ":")
	if !found {
		return Permission{}, false
	}
	return NewPermission(action, resource)
}

// NewPermission valida ambos lados contra los enumerados.
func NewPermission(action, resource string) (Permission, bool) {
	a, ok := ParseAction(action)
	if !ok {
		return Permission{}, false
	}
	r, ok := ParseResource(resource)
	if !ok {
		return Permission{}, false
	}
	return Permission{Action: a, Resource: r}, true
}

// PermissionSet conjunto no ordenado de permisos.
type PermissionSet map[Permission]struct{}

// NewPermissionSet construye el conjunto a partir de pares ya tipados.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has informa si el par está en el conjunto.
func (s PermissionSet) Has(action Action, resource Resource) bool {
	_, ok := s[Permission{Action: action, Resource: resource}]
	return ok
}

// Strings devuelve los permisos en forma "action:resource" (orden no garantizado).
func (s PermissionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p.String())
	}
	return out
}
