package hierarchy

import (
	"fmt"
	"strings"

	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PathSeparator delimits id segments inside a materialized path.
const PathSeparator = "/"

// RootPathPrefix is the path prefix of a root department.
const RootPathPrefix = "/"

// DefaultMaxNameLength bounds department names when no explicit limit is configured.
const DefaultMaxNameLength = 100

// Department represents an organizational unit in the hierarchy.
// ParentID is the adjacency-list representation; Path is the materialized-path
// representation and stays empty unless the path engine owns the tree.
type Department struct {
	shared.BaseEntity
	Name     string
	ParentID *uuid.UUID
	Path     string
}

// NewDepartment creates a department with a generated id. Name validation is
// the engine's responsibility because the maximum length is configured.
func NewDepartment(name string, parentID *uuid.UUID) *Department {
	return &Department{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		ParentID:   parentID,
	}
}

// ValidateName checks the shared name constraints: non-empty after trimming
// and no longer than the configured maximum.
func ValidateName(name string, maxLength int) error {
	if maxLength <= 0 {
		maxLength = DefaultMaxNameLength
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_DEPARTMENT_NAME", "Department name cannot be empty")
	}
	if len(trimmed) > maxLength {
		return shared.NewDomainError("INVALID_DEPARTMENT_NAME",
			fmt.Sprintf("Department name cannot exceed %d characters", maxLength))
	}
	return nil
}

// SetName sets the department name. The caller validates first.
func (d *Department) SetName(name string) {
	d.Name = strings.TrimSpace(name)
	d.Touch()
}

// SetParent re-links the department to a new parent (nil makes it a root).
func (d *Department) SetParent(parentID *uuid.UUID) {
	d.ParentID = parentID
	d.Touch()
}

// IsRoot returns true if the department has no parent.
func (d *Department) IsRoot() bool {
	return d.ParentID == nil
}

// ChildPath builds the materialized path of a child under the given prefix.
// A root's prefix is RootPathPrefix, so a root path looks like "/<id>/".
func ChildPath(prefix string, id uuid.UUID) string {
	return prefix + id.String() + PathSeparator
}

// AncestorIDs parses the department's path into the ordered ancestor chain,
// root first, excluding the final self segment. Returns nil for roots or when
// no path is maintained. A segment that is not a uuid means the path column
// is corrupted and yields ErrDataIntegrity.
func (d *Department) AncestorIDs() ([]uuid.UUID, error) {
	parts := pathSegments(d.Path)
	if len(parts) <= 1 {
		return nil, nil
	}

	ancestors := make([]uuid.UUID, 0, len(parts)-1)
	for _, part := range parts[:len(parts)-1] {
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, ErrDataIntegrity
		}
		ancestors = append(ancestors, id)
	}
	return ancestors, nil
}

// IsDescendantPath reports whether candidate lies strictly inside the subtree
// rooted at the department's path.
func (d *Department) IsDescendantPath(candidate string) bool {
	return candidate != d.Path && strings.HasPrefix(candidate, d.Path)
}

// HasRepeatedSegment reports whether any id occurs twice within a path.
// A repetition is the symptom of a cycle written into the path column.
func HasRepeatedSegment(path string) bool {
	parts := pathSegments(path)
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if _, ok := seen[part]; ok {
			return true
		}
		seen[part] = struct{}{}
	}
	return false
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, PathSeparator)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, PathSeparator)
}
