package hierarchy

import (
	"context"
	"sort"

	domain "github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClosureEngine stores every (ancestor, descendant, distance) pair in an
// auxiliary relation. Ancestry queries are a single lookup; the price is paid
// on mutation, where a move rebuilds the closure of the whole moving subtree.
// Once built, the closure relation is the sole source of truth for ancestry.
type ClosureEngine struct {
	baseEngine
	closures domain.ClosureRepository
}

// NewClosureEngine creates a closure-table hierarchy engine
func NewClosureEngine(repo domain.ClosureRepository, cfg Config, logger *zap.Logger) *ClosureEngine {
	return &ClosureEngine{
		baseEngine: baseEngine{repo: repo, cfg: cfg, logger: logger},
		closures:   repo,
	}
}

// Strategy returns the engine's strategy name
func (e *ClosureEngine) Strategy() Strategy {
	return StrategyClosure
}

// Create creates a department together with its closure rows: the mandatory
// self row plus one row per ancestor of the parent at distance+1, inserted in
// one batch ordered by ascending distance.
func (e *ClosureEngine) Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateName(input.Name); err != nil {
		return nil, err
	}

	dept := domain.NewDepartment(input.Name, input.ParentID)
	entries := []domain.DepartmentClosure{domain.SelfClosure(dept.ID)}

	if input.ParentID != nil {
		parentChain, err := e.closures.FindAncestorEntries(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		// No ancestor chain, not even a self row: the parent reference dangles.
		if len(parentChain) == 0 {
			return nil, domain.ErrParentNotFound
		}
		for _, entry := range parentChain {
			entries = append(entries, domain.DepartmentClosure{
				AncestorID:   entry.AncestorID,
				DescendantID: dept.ID,
				Distance:     entry.Distance + 1,
			})
		}
	}

	if err := e.closures.CreateWithClosure(ctx, dept, entries); err != nil {
		e.logger.Error("Failed to create department with closure", zap.Error(err))
		return nil, err
	}

	e.logger.Info("Department created",
		zap.String("department_id", dept.ID.String()),
		zap.Int("closure_rows", len(entries)))

	return toDepartmentDTO(dept), nil
}

// Update renames and/or moves a department. An accepted move discards the
// complete ancestor chain of every node in the moving subtree and rebuilds it
// against the new parent's chain.
func (e *ClosureEngine) Update(ctx context.Context, input UpdateDepartmentInput) (*DepartmentDTO, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dept, err := e.requireDepartment(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := e.validateName(*input.Name); err != nil {
			return nil, err
		}
	}

	moving := input.ChangeParent && !sameParent(dept.ParentID, input.ParentID)
	if !moving {
		if input.Name != nil {
			dept.SetName(*input.Name)
			if err := e.repo.Save(ctx, dept); err != nil {
				return nil, err
			}
		}
		return toDepartmentDTO(dept), nil
	}

	var parentChain []domain.DepartmentClosure
	if input.ParentID != nil {
		if *input.ParentID == dept.ID {
			return nil, domain.ErrCircularDependency
		}
		parentChain, err = e.closures.FindAncestorEntries(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if len(parentChain) == 0 {
			return nil, domain.ErrParentNotFound
		}
		// The move would place the department under its own subtree.
		for _, entry := range parentChain {
			if entry.AncestorID == dept.ID {
				return nil, domain.ErrCircularDependency
			}
		}
	}

	subtree, err := e.closures.FindSubtreeEntries(ctx, dept.ID)
	if err != nil {
		return nil, err
	}
	subtreeIDs := make([]uuid.UUID, len(subtree))
	for i, entry := range subtree {
		subtreeIDs[i] = entry.DescendantID
	}

	// Rows fully inside the subtree survive the rebuild untouched; they
	// include every member's self row.
	retained, err := e.closures.FindEntriesWithin(ctx, subtreeIDs)
	if err != nil {
		return nil, err
	}

	inserts := make([]domain.DepartmentClosure, 0, len(retained)+len(parentChain)*len(subtree))
	inserts = append(inserts, retained...)
	for _, ancestor := range parentChain {
		for _, member := range subtree {
			inserts = append(inserts, domain.DepartmentClosure{
				AncestorID:   ancestor.AncestorID,
				DescendantID: member.DescendantID,
				Distance:     ancestor.Distance + 1 + member.Distance,
			})
		}
	}
	sort.Slice(inserts, func(i, j int) bool {
		if inserts[i].Distance != inserts[j].Distance {
			return inserts[i].Distance < inserts[j].Distance
		}
		return inserts[i].DescendantID.String() < inserts[j].DescendantID.String()
	})

	dept.SetParent(input.ParentID)
	if input.Name != nil {
		dept.SetName(*input.Name)
	}

	if err := e.closures.MoveSubtree(ctx, dept, subtreeIDs, inserts); err != nil {
		e.logger.Error("Failed to move department subtree", zap.Error(err))
		return nil, err
	}

	e.logger.Info("Department moved",
		zap.String("department_id", dept.ID.String()),
		zap.Int("subtree_size", len(subtreeIDs)),
		zap.Int("closure_rows", len(inserts)))

	return toDepartmentDTO(dept), nil
}

// Delete removes a department and its entire subtree, leaves first, together
// with every closure row referencing a deleted node.
func (e *ClosureEngine) Delete(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.requireDepartment(ctx, id); err != nil {
		return err
	}

	// A department listed as its own proper ancestor means the relation
	// already holds a cycle; refuse to walk it.
	ancestors, err := e.closures.FindAncestorEntries(ctx, id)
	if err != nil {
		return err
	}
	for _, entry := range ancestors {
		if entry.AncestorID == id && entry.Distance > 0 {
			return domain.ErrCircularDependency
		}
	}

	subtree, err := e.closures.FindSubtreeEntries(ctx, id)
	if err != nil {
		return err
	}

	// Descending distance deletes leaves before their ancestors.
	orderedIDs := make([]uuid.UUID, len(subtree))
	for i, entry := range subtree {
		orderedIDs[len(subtree)-1-i] = entry.DescendantID
	}

	if err := e.closures.DeleteSubtreeWithClosure(ctx, orderedIDs); err != nil {
		e.logger.Error("Failed to delete department subtree", zap.Error(err))
		return err
	}

	e.logger.Info("Department deleted",
		zap.String("department_id", id.String()),
		zap.Int("subtree_size", len(orderedIDs)))
	return nil
}

// Descendants resolves the closure rows below a department, distance order
func (e *ClosureEngine) Descendants(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error) {
	if _, err := e.requireDepartment(ctx, id); err != nil {
		return nil, err
	}

	entries, err := e.closures.FindSubtreeEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if entry.IsSelf() {
			continue
		}
		ids = append(ids, entry.DescendantID)
	}
	return e.resolveInOrder(ctx, ids)
}

// Ancestors resolves the closure rows above a department, nearest first
func (e *ClosureEngine) Ancestors(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error) {
	if _, err := e.requireDepartment(ctx, id); err != nil {
		return nil, err
	}

	entries, err := e.closures.FindAncestorEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if entry.IsSelf() {
			continue
		}
		ids = append(ids, entry.AncestorID)
	}
	return e.resolveInOrder(ctx, ids)
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Ensure ClosureEngine implements Engine
var _ Engine = (*ClosureEngine)(nil)
