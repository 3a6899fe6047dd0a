package persistence

import (
	"context"
	"testing"

	"github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupHierarchyTestDB creates an in-memory SQLite database with the full
// department schema for testing
func setupHierarchyTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE departments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			parent_id TEXT,
			path TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE department_closure (
			ancestor_id TEXT NOT NULL,
			descendant_id TEXT NOT NULL,
			distance INTEGER NOT NULL,
			PRIMARY KEY (ancestor_id, descendant_id)
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE employees (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			department_id TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestGormDepartmentRepository_CreateAndFind(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	ctx := context.Background()

	dept := hierarchy.NewDepartment("Engineering", nil)
	require.NoError(t, repo.Create(ctx, dept))

	found, err := repo.FindByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, dept.ID, found.ID)
	assert.Equal(t, "Engineering", found.Name)
	assert.Nil(t, found.ParentID)
}

func TestGormDepartmentRepository_FindByID_NotFound(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDepartmentRepository_Save(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	ctx := context.Background()

	dept := hierarchy.NewDepartment("Engineering", nil)
	require.NoError(t, repo.Create(ctx, dept))

	dept.SetName("Platform Engineering")
	require.NoError(t, repo.Save(ctx, dept))

	found, err := repo.FindByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineering", found.Name)
}

func TestGormDepartmentRepository_FindChildren(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	ctx := context.Background()

	root := hierarchy.NewDepartment("Company", nil)
	require.NoError(t, repo.Create(ctx, root))

	zeta := hierarchy.NewDepartment("Zeta", &root.ID)
	alpha := hierarchy.NewDepartment("Alpha", &root.ID)
	require.NoError(t, repo.Create(ctx, zeta))
	require.NoError(t, repo.Create(ctx, alpha))

	children, err := repo.FindChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	// Name order
	assert.Equal(t, "Alpha", children[0].Name)
	assert.Equal(t, "Zeta", children[1].Name)

	none, err := repo.FindChildren(ctx, alpha.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGormDepartmentRepository_SearchByName(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Engineering", "Platform Engineering", "Sales"} {
		require.NoError(t, repo.Create(ctx, hierarchy.NewDepartment(name, nil)))
	}

	matches, err := repo.SearchByName(ctx, "Engineering")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.SearchByName(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGormDepartmentRepository_FindByIDs(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	ctx := context.Background()

	a := hierarchy.NewDepartment("A", nil)
	b := hierarchy.NewDepartment("B", nil)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormDepartmentRepository_DeleteSubtree(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	empRepo := NewGormEmployeeRepository(db)
	ctx := context.Background()

	root := hierarchy.NewDepartment("Company", nil)
	require.NoError(t, repo.Create(ctx, root))
	child := hierarchy.NewDepartment("Engineering", &root.ID)
	require.NoError(t, repo.Create(ctx, child))

	emp, err := hierarchy.NewEmployee("Ada", "Lovelace", "ada@example.com")
	require.NoError(t, err)
	emp.AssignTo(child.ID)
	require.NoError(t, empRepo.Create(ctx, emp))

	require.NoError(t, repo.DeleteSubtree(ctx, []uuid.UUID{root.ID, child.ID}))

	_, err = repo.FindByID(ctx, root.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = repo.FindByID(ctx, child.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// The employee survives, unassigned
	kept, err := empRepo.FindByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.DepartmentID)
}

func TestGormDepartmentRepository_FindDescendantsByPath(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	ctx := context.Background()

	root := hierarchy.NewDepartment("Company", nil)
	root.Path = hierarchy.ChildPath(hierarchy.RootPathPrefix, root.ID)
	require.NoError(t, repo.Create(ctx, root))

	child := hierarchy.NewDepartment("Engineering", &root.ID)
	child.Path = hierarchy.ChildPath(root.Path, child.ID)
	require.NoError(t, repo.Create(ctx, child))

	grandchild := hierarchy.NewDepartment("Backend", &child.ID)
	grandchild.Path = hierarchy.ChildPath(child.Path, grandchild.ID)
	require.NoError(t, repo.Create(ctx, grandchild))

	other := hierarchy.NewDepartment("Sales", nil)
	other.Path = hierarchy.ChildPath(hierarchy.RootPathPrefix, other.ID)
	require.NoError(t, repo.Create(ctx, other))

	descendants, err := repo.FindDescendantsByPath(ctx, root.Path)
	require.NoError(t, err)
	require.Len(t, descendants, 2)
	// Path order puts the child before the grandchild
	assert.Equal(t, child.ID, descendants[0].ID)
	assert.Equal(t, grandchild.ID, descendants[1].ID)

	leaf, err := repo.FindDescendantsByPath(ctx, grandchild.Path)
	require.NoError(t, err)
	assert.Empty(t, leaf)
}

func TestGormDepartmentRepository_MoveSubtree(t *testing.T) {
	db := setupHierarchyTestDB(t)
	repo := NewGormDepartmentRepository(db)
	ctx := context.Background()

	root := hierarchy.NewDepartment("Company", nil)
	root.Path = hierarchy.ChildPath(hierarchy.RootPathPrefix, root.ID)
	require.NoError(t, repo.Create(ctx, root))

	child := hierarchy.NewDepartment("Engineering", &root.ID)
	child.Path = hierarchy.ChildPath(root.Path, child.ID)
	require.NoError(t, repo.Create(ctx, child))

	grandchild := hierarchy.NewDepartment("Backend", &child.ID)
	grandchild.Path = hierarchy.ChildPath(child.Path, grandchild.ID)
	require.NoError(t, repo.Create(ctx, grandchild))

	// Promote the child to a root and rewrite the grandchild's prefix
	newChildPath := hierarchy.ChildPath(hierarchy.RootPathPrefix, child.ID)
	newGrandchildPath := hierarchy.ChildPath(newChildPath, grandchild.ID)
	child.SetParent(nil)
	child.Path = newChildPath

	err := repo.MoveSubtree(ctx, child, []hierarchy.PathUpdate{
		{ID: grandchild.ID, Path: newGrandchildPath},
	})
	require.NoError(t, err)

	movedChild, err := repo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, movedChild.ParentID)
	assert.Equal(t, newChildPath, movedChild.Path)

	movedGrandchild, err := repo.FindByID(ctx, grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, newGrandchildPath, movedGrandchild.Path)
}
