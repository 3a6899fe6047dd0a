package hierarchy

import (
	"context"
	"strings"

	domain "github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PathEngine stores each department's full ancestor chain as a delimited id
// string. Subtree queries become a single prefix match; a move rewrites the
// prefix of every descendant path.
type PathEngine struct {
	baseEngine
	paths domain.PathRepository
}

// NewPathEngine creates a materialized-path hierarchy engine
func NewPathEngine(repo domain.PathRepository, cfg Config, logger *zap.Logger) *PathEngine {
	return &PathEngine{
		baseEngine: baseEngine{repo: repo, cfg: cfg, logger: logger},
		paths:      repo,
	}
}

// Strategy returns the engine's strategy name
func (e *PathEngine) Strategy() Strategy {
	return StrategyPath
}

// Create creates a department whose path extends its parent's path. The id is
// generated before the insert, so the final path is written in one statement.
func (e *PathEngine) Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateName(input.Name); err != nil {
		return nil, err
	}

	prefix := domain.RootPathPrefix
	if input.ParentID != nil {
		parent, err := e.requireParent(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		prefix = parent.Path
	}

	dept := domain.NewDepartment(input.Name, input.ParentID)
	dept.Path = domain.ChildPath(prefix, dept.ID)

	if err := e.repo.Create(ctx, dept); err != nil {
		e.logger.Error("Failed to create department", zap.Error(err))
		return nil, err
	}

	e.logger.Info("Department created",
		zap.String("department_id", dept.ID.String()),
		zap.String("path", dept.Path))

	return toDepartmentDTO(dept), nil
}

// Update renames and/or moves a department. A move swaps the subtree's common
// path prefix and rewrites every descendant path in the same transaction.
func (e *PathEngine) Update(ctx context.Context, input UpdateDepartmentInput) (*DepartmentDTO, error) {
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

	prefix := domain.RootPathPrefix
	if input.ParentID != nil {
		if *input.ParentID == dept.ID {
			return nil, domain.ErrCircularDependency
		}
		parent, err := e.requireParent(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		// The new parent's path starting with the department's own path
		// means the target lies inside the moving subtree.
		if dept.IsDescendantPath(parent.Path) {
			return nil, domain.ErrCircularDependency
		}
		prefix = parent.Path
	}

	oldPath := dept.Path
	newPath := domain.ChildPath(prefix, dept.ID)

	descendants, err := e.paths.FindDescendantsByPath(ctx, oldPath)
	if err != nil {
		return nil, err
	}
	updates := make([]domain.PathUpdate, 0, len(descendants))
	for _, desc := range descendants {
		if !strings.HasPrefix(desc.Path, oldPath) {
			return nil, domain.ErrDataIntegrity
		}
		updates = append(updates, domain.PathUpdate{
			ID:   desc.ID,
			Path: newPath + strings.TrimPrefix(desc.Path, oldPath),
		})
	}

	dept.SetParent(input.ParentID)
	dept.Path = newPath
	if input.Name != nil {
		dept.SetName(*input.Name)
	}

	if err := e.paths.MoveSubtree(ctx, dept, updates); err != nil {
		e.logger.Error("Failed to move department subtree", zap.Error(err))
		return nil, err
	}

	e.logger.Info("Department moved",
		zap.String("department_id", dept.ID.String()),
		zap.String("old_path", oldPath),
		zap.String("new_path", newPath),
		zap.Int("descendants", len(updates)))

	return toDepartmentDTO(dept), nil
}

// Delete removes a department and every department under its path
func (e *PathEngine) Delete(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	dept, err := e.requireDepartment(ctx, id)
	if err != nil {
		return err
	}
	// A repeated segment in the stored path is a written-in cycle.
	if domain.HasRepeatedSegment(dept.Path) {
		return domain.ErrDataIntegrity
	}

	descendants, err := e.paths.FindDescendantsByPath(ctx, dept.Path)
	if err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(descendants)+1)
	ids = append(ids, dept.ID)
	for _, desc := range descendants {
		if domain.HasRepeatedSegment(desc.Path) {
			return domain.ErrDataIntegrity
		}
		ids = append(ids, desc.ID)
	}

	if err := e.repo.DeleteSubtree(ctx, ids); err != nil {
		e.logger.Error("Failed to delete department subtree", zap.Error(err))
		return err
	}

	e.logger.Info("Department deleted",
		zap.String("department_id", id.String()),
		zap.Int("subtree_size", len(ids)))
	return nil
}

// Descendants returns every department under the given path, path order
func (e *PathEngine) Descendants(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error) {
	dept, err := e.requireDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	descendants, err := e.paths.FindDescendantsByPath(ctx, dept.Path)
	if err != nil {
		return nil, err
	}
	return toDepartmentDTOs(descendants), nil
}

// Ancestors parses the department's own path, nearest ancestor first
func (e *PathEngine) Ancestors(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error) {
	dept, err := e.requireDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if domain.HasRepeatedSegment(dept.Path) {
		return nil, domain.ErrDataIntegrity
	}

	chain, err := dept.AncestorIDs()
	if err != nil {
		return nil, err
	}
	// Root first in the path, nearest first for callers.
	ids := make([]uuid.UUID, len(chain))
	for i, ancestorID := range chain {
		ids[len(chain)-1-i] = ancestorID
	}
	return e.resolveInOrder(ctx, ids)
}

// Ensure PathEngine implements Engine
var _ Engine = (*PathEngine)(nil)
