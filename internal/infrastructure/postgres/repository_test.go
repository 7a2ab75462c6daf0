package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/company-service/internal/domain"
	"github.com/jhoicas/company-service/internal/domain/entity"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/domain/tenant"
)

var (
	scopeAcme = tenant.MustScope("acme")
	createdAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func branchRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "company_id", "name", "address", "phone", "active", "created_at"})
}

// ── Sucursales ────────────────────────────────────────────────────────────────

func TestBranchRepo_Update_ParcheConNulos(t *testing.T) {
	mock := newMock(t)
	name := "Norte"
	mock.ExpectQuery(updateBranchSQL).
		WithArgs("acme", "b-1", &name, (*string)(nil), (*string)(nil), (*bool)(nil)).
		WillReturnRows(branchRows().AddRow("b-1", "acme", "Norte", "Calle 1", "78945612", true, createdAt))

	b, err := NewBranchRepository(mock).Update(context.Background(), scopeAcme, "b-1", repository.BranchPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Norte", b.Name)
	assert.Equal(t, "78945612", b.Phone, "lo que no viene en el parche lo devuelve la BD intacto")
	assert.Equal(t, "acme", b.CompanyID)
}

func TestBranchRepo_Update_SinFilaEsNotFound(t *testing.T) {
	mock := newMock(t)
	active := false
	mock.ExpectQuery(updateBranchSQL).
		WithArgs("acme", "b-x", (*string)(nil), (*string)(nil), (*string)(nil), &active).
		WillReturnRows(branchRows())

	_, err := NewBranchRepository(mock).Update(context.Background(), scopeAcme, "b-x", repository.BranchPatch{Active: &active})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBranchRepo_SoftDelete_RowsAffected(t *testing.T) {
	mock := newMock(t)
	// ya inactiva: PostgreSQL igual cuenta la fila
	mock.ExpectExec(softDeleteBranchSQL).WithArgs("acme", "b-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(softDeleteBranchSQL).WithArgs("acme", "b-2").WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewBranchRepository(mock)
	assert.NoError(t, repo.SoftDelete(context.Background(), scopeAcme, "b-1"))
	assert.ErrorIs(t, repo.SoftDelete(context.Background(), scopeAcme, "b-2"), domain.ErrNotFound)
}

func TestBranchRepo_GetByIDYOwnerOf_SinFila(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(selectBranchSQL).WithArgs("acme", "b-x").WillReturnRows(branchRows())
	mock.ExpectQuery(branchOwnerSQL).WithArgs("b-x").WillReturnRows(pgxmock.NewRows([]string{"company_id"}))
	mock.ExpectQuery(branchOwnerSQL).WithArgs("b-1").WillReturnRows(pgxmock.NewRows([]string{"company_id"}).AddRow("otra"))

	repo := NewBranchRepository(mock)
	b, err := repo.GetByID(context.Background(), scopeAcme, "b-x")
	require.NoError(t, err)
	assert.Nil(t, b)

	owner, err := repo.OwnerOf(context.Background(), "b-x")
	require.NoError(t, err)
	assert.Empty(t, owner)

	owner, err = repo.OwnerOf(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "otra", owner)
}

func TestBranchRepo_Create_CompanyDelAlcance(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(insertBranchSQL).
		WithArgs("acme", "b-1", "Centro", "Calle 1", "", true, createdAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(insertBranchSQL).
		WithArgs("acme", "b-1", "Centro", "Calle 1", "", true, createdAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewBranchRepository(mock)
	b := &entity.Branch{ID: "b-1", CompanyID: "intruso", Name: "Centro", Address: "Calle 1", Active: true, CreatedAt: createdAt}
	require.NoError(t, repo.Create(context.Background(), scopeAcme, b))
	assert.Equal(t, "acme", b.CompanyID)

	assert.ErrorIs(t, repo.Create(context.Background(), scopeAcme, b), domain.ErrConflict)
}

func TestBranchRepo_SinAlcanceNoLlegaALaBD(t *testing.T) {
	mock := newMock(t)
	_, err := NewBranchRepository(mock).Update(context.Background(), tenant.Scope{}, "b-1", repository.BranchPatch{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ── Almacenes ─────────────────────────────────────────────────────────────────

func TestWarehouseRepo_UpdateYSoftDelete(t *testing.T) {
	mock := newMock(t)
	primary := true
	mock.ExpectQuery(updateWarehouseSQL).
		WithArgs("acme", "w-1", (*string)(nil), (*string)(nil), &primary, (*bool)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "company_id", "name", "description", "is_primary", "active", "created_at"}).
			AddRow("w-1", "acme", "Bodega", "Seca", true, true, createdAt))
	mock.ExpectQuery(updateWarehouseSQL).
		WithArgs("acme", "w-x", (*string)(nil), (*string)(nil), &primary, (*bool)(nil)).
		WillReturnError(errors.New("conexión perdida"))
	mock.ExpectExec(softDeleteWarehouseSQL).WithArgs("acme", "w-1").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(softDeleteWarehouseSQL).WithArgs("acme", "w-x").WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewWarehouseRepository(mock)
	w, err := repo.Update(context.Background(), scopeAcme, "w-1", repository.WarehousePatch{IsPrimary: &primary})
	require.NoError(t, err)
	assert.True(t, w.IsPrimary)
	assert.Equal(t, "Seca", w.Description)

	_, err = repo.Update(context.Background(), scopeAcme, "w-x", repository.WarehousePatch{IsPrimary: &primary})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "update warehouse")

	assert.NoError(t, repo.SoftDelete(context.Background(), scopeAcme, "w-1"))
	assert.ErrorIs(t, repo.SoftDelete(context.Background(), scopeAcme, "w-x"), domain.ErrNotFound)
}

// ── Vínculos ──────────────────────────────────────────────────────────────────

func TestAssignmentRepo_AssignUser(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(insertUserBranchSQL).
		WithArgs("acme", "u-1", "b-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// INSERT ... SELECT sin sucursal de la empresa: 0 filas
	mock.ExpectExec(insertUserBranchSQL).
		WithArgs("acme", "u-1", "b-ajena", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec(insertUserBranchSQL).
		WithArgs("acme", "u-1", "b-1", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewAssignmentRepository(mock)
	ctx := context.Background()
	assert.NoError(t, repo.AssignUser(ctx, scopeAcme, &entity.UserBranchAssignment{UserID: "u-1", BranchID: "b-1", CreatedAt: createdAt}))
	assert.ErrorIs(t, repo.AssignUser(ctx, scopeAcme, &entity.UserBranchAssignment{UserID: "u-1", BranchID: "b-ajena", CreatedAt: createdAt}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.AssignUser(ctx, scopeAcme, &entity.UserBranchAssignment{UserID: "u-1", BranchID: "b-1", CreatedAt: createdAt}), domain.ErrConflict)
}

func TestAssignmentRepo_AssignWarehouse(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(insertBranchWarehouseSQL).
		WithArgs("acme", "b-1", "w-ajeno", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec(insertBranchWarehouseSQL).
		WithArgs("acme", "b-1", "w-1", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewAssignmentRepository(mock)
	ctx := context.Background()
	assert.ErrorIs(t, repo.AssignWarehouse(ctx, scopeAcme, &entity.BranchWarehouseAssignment{BranchID: "b-1", WarehouseID: "w-ajeno", CreatedAt: createdAt}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.AssignWarehouse(ctx, scopeAcme, &entity.BranchWarehouseAssignment{BranchID: "b-1", WarehouseID: "w-1", CreatedAt: createdAt}), domain.ErrConflict)
}

func TestAssignmentRepo_UnassignIdempotente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(deleteUserBranchSQL).WithArgs("acme", "u-1", "b-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(deleteBranchWarehouseSQL).WithArgs("acme", "b-1", "w-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewAssignmentRepository(mock)
	assert.NoError(t, repo.UnassignUser(context.Background(), scopeAcme, "u-1", "b-1"))
	assert.NoError(t, repo.UnassignWarehouse(context.Background(), scopeAcme, "b-1", "w-1"))
}

func TestAssignmentRepo_ListUsers(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(listUserBranchesSQL).WithArgs("acme", "b-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "branch_id", "created_at"}).
			AddRow("u-1", "b-1", createdAt).
			AddRow("u-2", "b-1", createdAt.Add(time.Second)))

	list, err := NewAssignmentRepository(mock).ListUsers(context.Background(), scopeAcme, "b-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "u-1", list[0].UserID)
	assert.Equal(t, "u-2", list[1].UserID)
}
