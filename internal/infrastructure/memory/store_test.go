package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

var (
	scopeA = tenant.MustScope("company-a")
	scopeB = tenant.MustScope("company-b")
	t0     = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newBranch(id string, at time.Time) *entity.Branch {
	return &entity.Branch{ID: id, Name: "B " + id, Address: "Calle", Active: true, CreatedAt: at}
}

func TestStore_Run_CommitYRollback(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Run(ctx, func(b repository.BranchRepository, _ repository.WarehouseRepository, _ repository.AssignmentRepository) error {
		return b.Create(ctx, scopeA, newBranch("b1", t0))
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Run(ctx, func(b repository.BranchRepository, _ repository.WarehouseRepository, _ repository.AssignmentRepository) error {
		require.NoError(t, b.Create(ctx, scopeA, newBranch("b2", t0)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Branches().GetByID(ctx, scopeA, "b1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = s.Branches().GetByID(ctx, scopeA, "b2")
	require.NoError(t, err)
	assert.Nil(t, got, "la transacción fallida no debe publicar cambios")
}

func TestStore_Run_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	err := s.Run(ctx, func(b repository.BranchRepository, _ repository.WarehouseRepository, _ repository.AssignmentRepository) error {
		cancel()
		return b.Create(ctx, scopeA, newBranch("b1", t0))
	})
	assert.ErrorIs(t, err, context.Canceled)

	got, _ := s.Branches().GetByID(context.Background(), scopeA, "b1")
	assert.Nil(t, got)
}

func TestBranchRepo_ScopeYCompanyForzada(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	b := newBranch("b1", t0)
	b.CompanyID = "company-b"
	require.NoError(t, s.Branches().Create(ctx, scopeA, b))
	assert.Equal(t, "company-a", b.CompanyID)

	assert.ErrorIs(t, s.Branches().Create(ctx, scopeA, newBranch("b1", t0)), domain.ErrConflict)

	got, err := s.Branches().GetByID(ctx, scopeB, "b1")
	require.NoError(t, err)
	assert.Nil(t, got)

	owner, err := s.Branches().OwnerOf(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "company-a", owner)

	assert.ErrorIs(t, s.Branches().SoftDelete(ctx, scopeB, "b1"), domain.ErrNotFound)
	name := "X"
	_, err = s.Branches().Update(ctx, scopeB, "b1", repository.BranchPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Branches().List(ctx, tenant.Scope{}, repository.ListFilter{Limit: 10})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBranchRepo_UpdateSoloCamposDelParche(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	b := newBranch("b1", t0)
	b.Phone = "555"
	require.NoError(t, s.Branches().Create(ctx, scopeA, b))

	name, phone := "Norte", "78945612"
	_, err := s.Branches().Update(ctx, scopeA, "b1", repository.BranchPatch{Phone: &phone})
	require.NoError(t, err)
	got, err := s.Branches().Update(ctx, scopeA, "b1", repository.BranchPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Norte", got.Name)
	assert.Equal(t, "78945612", got.Phone)
	assert.Equal(t, b.Address, got.Address)
	assert.True(t, got.Active)

	got, err = s.Branches().Update(ctx, scopeA, "b1", repository.BranchPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Norte", got.Name, "parche vacío no cambia nada")

	primary := true
	require.NoError(t, s.Warehouses().Create(ctx, scopeA, &entity.Warehouse{ID: "w1", Name: "Bodega", Description: "Fría", Active: true, CreatedAt: t0}))
	w, err := s.Warehouses().Update(ctx, scopeA, "w1", repository.WarehousePatch{IsPrimary: &primary})
	require.NoError(t, err)
	assert.True(t, w.IsPrimary)
	assert.Equal(t, "Bodega", w.Name)
	assert.Equal(t, "Fría", w.Description)

	_, err = s.Warehouses().Update(ctx, scopeB, "w1", repository.WarehousePatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBranchRepo_ListOrdenYPaginacion(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	// mismo created_at: desempata el id
	require.NoError(t, s.Branches().Create(ctx, scopeA, newBranch("c", t0)))
	require.NoError(t, s.Branches().Create(ctx, scopeA, newBranch("a", t0)))
	require.NoError(t, s.Branches().Create(ctx, scopeA, newBranch("b", t0.Add(-time.Hour))))

	list, err := s.Branches().List(ctx, scopeA, repository.ListFilter{Limit: 10})
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)

	list, err = s.Branches().List(ctx, scopeA, repository.ListFilter{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c", list[0].ID)

	list, err = s.Branches().List(ctx, scopeA, repository.ListFilter{Limit: 10, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAssignmentRepo_UnicidadYAlcance(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Branches().Create(ctx, scopeA, newBranch("b1", t0)))
	require.NoError(t, s.Warehouses().Create(ctx, scopeB, &entity.Warehouse{ID: "w1", Name: "W", Active: true, CreatedAt: t0}))

	link := &entity.UserBranchAssignment{UserID: "u1", BranchID: "b1", CreatedAt: t0}
	require.NoError(t, s.Assignments().AssignUser(ctx, scopeA, link))
	assert.ErrorIs(t, s.Assignments().AssignUser(ctx, scopeA, link), domain.ErrConflict)
	assert.ErrorIs(t, s.Assignments().AssignUser(ctx, scopeB, link), domain.ErrNotFound)

	err := s.Assignments().AssignWarehouse(ctx, scopeA, &entity.BranchWarehouseAssignment{BranchID: "b1", WarehouseID: "w1", CreatedAt: t0})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el almacén es de otra empresa")

	require.NoError(t, s.Assignments().UnassignUser(ctx, scopeB, "u1", "b1"))
	users, err := s.Assignments().ListUsers(ctx, scopeA, "b1")
	require.NoError(t, err)
	assert.Len(t, users, 1, "otra empresa no puede borrar el vínculo")
}

func TestStore_AsignacionesConcurrentes_UnaSolaGana(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Branches().Create(ctx, scopeA, newBranch("b1", t0)))

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, confl int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Assignments().AssignUser(ctx, scopeA, &entity.UserBranchAssignment{UserID: "u1", BranchID: "b1", CreatedAt: t0})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrConflict):
				confl++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, confl)
}
