package hierarchy

import (
	"context"

	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PathUpdate is one rewritten descendant path applied during a subtree move.
type PathUpdate struct {
	ID   uuid.UUID
	Path string
}

// DepartmentRepository is the node-level storage contract shared by all
// hierarchy engines. Multi-row structural mutations must be atomic: either
// the whole mutation is durably applied or none of it is.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *Department) error
	Save(ctx context.Context, dept *Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*Department, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Department, error)
	FindAll(ctx context.Context) ([]Department, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Department, error)
	SearchByName(ctx context.Context, substring string) ([]Department, error)

	// DeleteSubtree removes the given departments and unassigns their
	// employees in a single transaction. Callers pass the full pre-computed
	// subtree id set including the root of the deletion.
	DeleteSubtree(ctx context.Context, ids []uuid.UUID) error
}

// PathRepository extends the node contract with materialized-path queries and
// the transactional subtree rewrite a move requires.
type PathRepository interface {
	DepartmentRepository

	// FindDescendantsByPath returns every department whose path lies strictly
	// inside the subtree denoted by the given path, ordered by path.
	FindDescendantsByPath(ctx context.Context, path string) ([]Department, error)

	// MoveSubtree persists the moved department and every rewritten
	// descendant path in one transaction.
	MoveSubtree(ctx context.Context, dept *Department, updates []PathUpdate) error
}

// ClosureRepository extends the node contract with the closure relation.
type ClosureRepository interface {
	DepartmentRepository

	// FindAncestorEntries returns all rows with the given descendant,
	// including the self row, ordered by ascending distance.
	FindAncestorEntries(ctx context.Context, descendantID uuid.UUID) ([]DepartmentClosure, error)

	// FindSubtreeEntries returns all rows with the given ancestor, including
	// the self row, ordered by ascending distance.
	FindSubtreeEntries(ctx context.Context, ancestorID uuid.UUID) ([]DepartmentClosure, error)

	// FindEntriesWithin returns the rows whose ancestor and descendant both
	// belong to the given id set.
	FindEntriesWithin(ctx context.Context, ids []uuid.UUID) ([]DepartmentClosure, error)

	// CreateWithClosure inserts the department and its closure rows in one
	// transaction. Entries must be ordered by ascending distance.
	CreateWithClosure(ctx context.Context, dept *Department, entries []DepartmentClosure) error

	// MoveSubtree deletes every row whose descendant belongs to the moving
	// subtree, inserts the rebuilt rows, and persists the moved department,
	// all in one transaction.
	MoveSubtree(ctx context.Context, dept *Department, subtreeIDs []uuid.UUID, inserts []DepartmentClosure) error

	// DeleteSubtreeWithClosure removes the departments leaves-first together
	// with every closure row referencing them, unassigning their employees,
	// in one transaction.
	DeleteSubtreeWithClosure(ctx context.Context, orderedIDs []uuid.UUID) error
}

// EmployeeRepository stores the assignment subsystem's employees.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *Employee) error
	Save(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindAll returns a page of employees. The filter's Search matches
	// against names and email; Page/PageSize are ignored when not positive.
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)

	// Count returns the number of employees matching the filter's Search.
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	FindByDepartment(ctx context.Context, departmentID uuid.UUID) ([]Employee, error)
}
