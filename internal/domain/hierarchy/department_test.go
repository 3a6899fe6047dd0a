package hierarchy

import (
	"strings"
	"testing"

	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepartment(t *testing.T) {
	parentID := uuid.New()
	dept := NewDepartment("  Engineering  ", &parentID)

	assert.NotEqual(t, uuid.Nil, dept.ID)
	assert.Equal(t, "Engineering", dept.Name)
	require.NotNil(t, dept.ParentID)
	assert.Equal(t, parentID, *dept.ParentID)
	assert.Empty(t, dept.Path)
	assert.False(t, dept.IsRoot())

	root := NewDepartment("Company", nil)
	assert.True(t, root.IsRoot())
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Engineering", 100))
	assert.NoError(t, ValidateName(strings.Repeat("a", 100), 100))

	err := ValidateName("", 100)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DEPARTMENT_NAME", domainErr.Code)

	err = ValidateName("   ", 100)
	require.Error(t, err)

	err = ValidateName(strings.Repeat("a", 101), 100)
	require.Error(t, err)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_DEPARTMENT_NAME", domainErr.Code)

	// Zero falls back to the default limit
	assert.NoError(t, ValidateName(strings.Repeat("b", 100), 0))
	assert.Error(t, ValidateName(strings.Repeat("b", 101), 0))
}

func TestChildPath(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "/"+id.String()+"/", ChildPath(RootPathPrefix, id))

	child := uuid.New()
	parentPath := ChildPath(RootPathPrefix, id)
	assert.Equal(t, "/"+id.String()+"/"+child.String()+"/", ChildPath(parentPath, child))
}

func TestAncestorIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	dept := &Department{Path: "/" + a.String() + "/" + b.String() + "/" + c.String() + "/"}
	ancestors, err := dept.AncestorIDs()
	require.NoError(t, err)
	require.Len(t, ancestors, 2)
	assert.Equal(t, a, ancestors[0])
	assert.Equal(t, b, ancestors[1])

	root := &Department{Path: "/" + a.String() + "/"}
	ancestors, err = root.AncestorIDs()
	require.NoError(t, err)
	assert.Nil(t, ancestors)

	empty := &Department{}
	ancestors, err = empty.AncestorIDs()
	require.NoError(t, err)
	assert.Nil(t, ancestors)

	corrupted := &Department{Path: "/" + a.String() + "/not-a-uuid/" + c.String() + "/"}
	ancestors, err = corrupted.AncestorIDs()
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.Nil(t, ancestors)
}

func TestIsDescendantPath(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	dept := &Department{Path: ChildPath(RootPathPrefix, a)}

	childPath := ChildPath(dept.Path, b)
	assert.True(t, dept.IsDescendantPath(childPath))
	assert.False(t, dept.IsDescendantPath(dept.Path))
	assert.False(t, dept.IsDescendantPath(ChildPath(RootPathPrefix, b)))
}

func TestHasRepeatedSegment(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.False(t, HasRepeatedSegment("/"+a.String()+"/"+b.String()+"/"))
	assert.True(t, HasRepeatedSegment("/"+a.String()+"/"+b.String()+"/"+a.String()+"/"))
	assert.False(t, HasRepeatedSegment(""))
}

func TestSelfClosure(t *testing.T) {
	id := uuid.New()
	entry := SelfClosure(id)
	assert.Equal(t, id, entry.AncestorID)
	assert.Equal(t, id, entry.DescendantID)
	assert.Equal(t, 0, entry.Distance)
	assert.True(t, entry.IsSelf())

	cross := DepartmentClosure{AncestorID: id, DescendantID: uuid.New(), Distance: 1}
	assert.False(t, cross.IsSelf())
}
