package persistence

import (
	"context"
	"testing"

	"github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNewEmployee(t *testing.T, firstName, lastName, email string) *hierarchy.Employee {
	t.Helper()
	emp, err := hierarchy.NewEmployee(firstName, lastName, email)
	require.NoError(t, err)
	return emp
}

func TestGormEmployeeRepository_CreateAndFind(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	emp := mustNewEmployee(t, "Ada", "Lovelace", "ada@example.com")
	require.NoError(t, repo.Create(ctx, emp))

	found, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, found.ID)
	assert.Equal(t, "Ada", found.FirstName)
	assert.Equal(t, "Lovelace", found.LastName)
	assert.Equal(t, "ada@example.com", found.Email)
	assert.Nil(t, found.DepartmentID)
}

func TestGormEmployeeRepository_FindByID_NotFound(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormEmployeeRepository_Create_DuplicateEmail(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	first := mustNewEmployee(t, "Ada", "Lovelace", "ada@example.com")
	require.NoError(t, repo.Create(ctx, first))

	second := mustNewEmployee(t, "Augusta", "King", "ada@example.com")
	assert.Error(t, repo.Create(ctx, second))
}

func TestGormEmployeeRepository_Save(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	emp := mustNewEmployee(t, "Grace", "Hopper", "grace@example.com")
	require.NoError(t, repo.Create(ctx, emp))

	require.NoError(t, emp.SetEmail("grace.hopper@example.com"))
	require.NoError(t, repo.Save(ctx, emp))

	found, err := repo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace.hopper@example.com", found.Email)
}

func TestGormEmployeeRepository_Delete(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	emp := mustNewEmployee(t, "Alan", "Turing", "alan@example.com")
	require.NoError(t, repo.Create(ctx, emp))
	require.NoError(t, repo.Delete(ctx, emp.ID))

	_, err := repo.FindByID(ctx, emp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, emp.ID), shared.ErrNotFound)
}

func TestGormEmployeeRepository_FindAll_Ordering(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	zeta := mustNewEmployee(t, "Zoe", "Adams", "zoe@example.com")
	alpha := mustNewEmployee(t, "Amy", "Adams", "amy@example.com")
	brown := mustNewEmployee(t, "Ben", "Brown", "ben@example.com")
	require.NoError(t, repo.Create(ctx, brown))
	require.NoError(t, repo.Create(ctx, zeta))
	require.NoError(t, repo.Create(ctx, alpha))

	all, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, alpha.ID, all[0].ID)
	assert.Equal(t, zeta.ID, all[1].ID)
	assert.Equal(t, brown.ID, all[2].ID)
}

func TestGormEmployeeRepository_FindAll_Pagination(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	zeta := mustNewEmployee(t, "Zoe", "Adams", "zoe@example.com")
	alpha := mustNewEmployee(t, "Amy", "Adams", "amy@example.com")
	brown := mustNewEmployee(t, "Ben", "Brown", "ben@example.com")
	require.NoError(t, repo.Create(ctx, zeta))
	require.NoError(t, repo.Create(ctx, alpha))
	require.NoError(t, repo.Create(ctx, brown))

	first, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, alpha.ID, first[0].ID)
	assert.Equal(t, zeta.ID, first[1].ID)

	second, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, brown.ID, second[0].ID)
}

func TestGormEmployeeRepository_FindAll_Search(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	ada := mustNewEmployee(t, "Ada", "Lovelace", "ada@example.com")
	alan := mustNewEmployee(t, "Alan", "Turing", "alan@machine.org")
	require.NoError(t, repo.Create(ctx, ada))
	require.NoError(t, repo.Create(ctx, alan))

	byName, err := repo.FindAll(ctx, shared.Filter{Search: "Love"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, ada.ID, byName[0].ID)

	byEmail, err := repo.FindAll(ctx, shared.Filter{Search: "machine.org"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, alan.ID, byEmail[0].ID)

	total, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	matching, err := repo.Count(ctx, shared.Filter{Search: "Love"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matching)
}

func TestGormEmployeeRepository_FindByDepartment(t *testing.T) {
	db := setupHierarchyTestDB(t)
	deptRepo := NewGormDepartmentRepository(db)
	repo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	dept := hierarchy.NewDepartment("Engineering", nil)
	other := hierarchy.NewDepartment("Sales", nil)
	require.NoError(t, deptRepo.Create(ctx, dept))
	require.NoError(t, deptRepo.Create(ctx, other))

	assigned := mustNewEmployee(t, "Ada", "Lovelace", "ada@example.com")
	assigned.AssignTo(dept.ID)
	elsewhere := mustNewEmployee(t, "Alan", "Turing", "alan@example.com")
	elsewhere.AssignTo(other.ID)
	unassigned := mustNewEmployee(t, "Grace", "Hopper", "grace@example.com")
	require.NoError(t, repo.Create(ctx, assigned))
	require.NoError(t, repo.Create(ctx, elsewhere))
	require.NoError(t, repo.Create(ctx, unassigned))

	members, err := repo.FindByDepartment(ctx, dept.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, assigned.ID, members[0].ID)
	require.NotNil(t, members[0].DepartmentID)
	assert.Equal(t, dept.ID, *members[0].DepartmentID)

	empty, err := repo.FindByDepartment(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
