package authz_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/authz"
)

var allActions = []authz.Action{authz.ActionCreate, authz.ActionRead, authz.ActionUpdate, authz.ActionDelete}

var allResources = []authz.Resource{
	authz.ResourceBranches,
	authz.ResourceWarehouses,
	authz.ResourceUserBranchAssignments,
	authz.ResourceBranchWarehouseAssignments,
}

func TestAuthorize_DuenoSiemprePasa(t *testing.T) {
	owner := authz.Identity{UserID: "u1", CompanyID: "7", IsOwner: true}

	for _, a := range allActions {
		for _, r := range allResources {
			assert.Equal(t, authz.Allow, authz.Authorize(owner, a, r),
				"el dueño debe pasar %s:%s aun sin permisos", a, r)
		}
	}
}

func TestAuthorize_SoloParesDelConjunto(t *testing.T) {
	id := authz.Identity{
		UserID:    "u1",
		CompanyID: "7",
		Permissions: authz.NewPermissionSet(
			authz.Permission{Action: authz.ActionRead, Resource: authz.ResourceBranches},
		),
	}

	assert.Equal(t, authz.Allow, authz.Authorize(id, authz.ActionRead, authz.ResourceBranches))
	assert.Equal(t, authz.Deny, authz.Authorize(id, authz.ActionCreate, authz.ResourceBranches))
	assert.Equal(t, authz.Deny, authz.Authorize(id, authz.ActionRead, authz.ResourceWarehouses))
}

func TestAuthorize_SinPermisosDeniega(t *testing.T) {
	id := authz.Identity{UserID: "u1", CompanyID: "7"}
	assert.Equal(t, authz.Deny, authz.Authorize(id, authz.ActionRead, authz.ResourceBranches))
}

func TestRequire_DevuelveErrForbidden(t *testing.T) {
	id := authz.Identity{UserID: "u1", CompanyID: "7"}

	err := authz.Require(id, authz.ActionDelete, authz.ResourceWarehouses)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.False(t, errors.Is(err, domain.ErrUnauthorized), "denegar no es lo mismo que no autenticado")
}

func TestParsePermission(t *testing.T) {
	cases := []struct {
		in   string
		want authz.Permission
		ok   bool
	}{
		{"read:branches", authz.Permission{Action: authz.ActionRead, Resource: authz.ResourceBranches}, true},
		{"CREATE:user_branch_assignments", authz.Permission{Action: authz.ActionCreate, Resource: authz.ResourceUserBranchAssignments}, true},
		{" delete : branch_warehouse_assignments ", authz.Permission{Action: authz.ActionDelete, Resource: authz.ResourceBranchWarehouseAssignments}, true},
		{"read:sucursales", authz.Permission{}, false},
		{"readbranches", authz.Permission{}, false},
		{"approve:branches", authz.Permission{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := authz.ParsePermission(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIdentityScope_SinEmpresaEsNoAutenticado(t *testing.T) {
	_, err := authz.Identity{UserID: "u1"}.Scope()
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	s, err := authz.Identity{UserID: "u1", CompanyID: "7"}.Scope()
	require.NoError(t, err)
	assert.Equal(t, "7", s.CompanyID())
}

func TestPermissionSet_Strings(t *testing.T) {
	set := authz.NewPermissionSet(
		authz.Permission{Action: authz.ActionRead, Resource: authz.ResourceBranches},
		authz.Permission{Action: authz.ActionDelete, Resource: authz.ResourceWarehouses},
	)
	assert.ElementsMatch(t, []string{"read:branches", "delete:warehouses"}, set.Strings())
	assert.Empty(t, authz.PermissionSet(nil).Strings())

	for _, s := range set.Strings() {
		p, ok := authz.ParsePermission(s)
		require.True(t, ok, s)
		assert.True(t, set.Has(p.Action, p.Resource))
	}
}
