package hierarchy

import (
	"context"
	"errors"

	domain "github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdjacencyEngine stores the tree as a parent pointer per node. Moves are a
// single-row rewrite guarded by an explicit cycle check; ancestor and
// descendant queries traverse pointers.
type AdjacencyEngine struct {
	baseEngine
}

// NewAdjacencyEngine creates an adjacency-list hierarchy engine
func NewAdjacencyEngine(repo domain.DepartmentRepository, cfg Config, logger *zap.Logger) *AdjacencyEngine {
	return &AdjacencyEngine{baseEngine{repo: repo, cfg: cfg, logger: logger}}
}

// Strategy returns the engine's strategy name
func (e *AdjacencyEngine) Strategy() Strategy {
	return StrategyAdjacency
}

// Create creates a department, optionally linked under a parent
func (e *AdjacencyEngine) Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateName(input.Name); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if _, err := e.requireParent(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	dept := domain.NewDepartment(input.Name, input.ParentID)
	if err := e.repo.Create(ctx, dept); err != nil {
		e.logger.Error("Failed to create department", zap.Error(err))
		return nil, err
	}

	e.logger.Info("Department created",
		zap.String("department_id", dept.ID.String()),
		zap.String("name", dept.Name))

	return toDepartmentDTO(dept), nil
}

// Update renames and/or re-parents a department. Re-parenting under the
// department's own subtree is rejected before anything is written.
func (e *AdjacencyEngine) Update(ctx context.Context, input UpdateDepartmentInput) (*DepartmentDTO, error) {
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

	if input.ChangeParent {
		if input.ParentID != nil {
			if *input.ParentID == dept.ID {
				return nil, domain.ErrCircularDependency
			}
			if _, err := e.requireParent(ctx, *input.ParentID); err != nil {
				return nil, err
			}

			descendants, err := e.descendantIDs(ctx, dept.ID)
			if err != nil {
				return nil, err
			}
			for _, id := range descendants {
				if id == *input.ParentID {
					return nil, domain.ErrCircularDependency
				}
			}
		}
		dept.SetParent(input.ParentID)
	}

	if input.Name != nil {
		dept.SetName(*input.Name)
	}

	if err := e.repo.Save(ctx, dept); err != nil {
		e.logger.Error("Failed to update department", zap.Error(err))
		return nil, err
	}

	return toDepartmentDTO(dept), nil
}

// Delete removes a department and its entire subtree
func (e *AdjacencyEngine) Delete(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.requireDepartment(ctx, id); err != nil {
		return err
	}

	descendants, err := e.descendantIDs(ctx, id)
	if err != nil {
		return err
	}

	ids := append(descendants, id)
	if err := e.repo.DeleteSubtree(ctx, ids); err != nil {
		e.logger.Error("Failed to delete department subtree", zap.Error(err))
		return err
	}

	e.logger.Info("Department deleted",
		zap.String("department_id", id.String()),
		zap.Int("subtree_size", len(ids)))
	return nil
}

// Descendants returns the subtree below a department in pre-order
func (e *AdjacencyEngine) Descendants(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error) {
	if _, err := e.requireDepartment(ctx, id); err != nil {
		return nil, err
	}

	ids, err := e.descendantIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.resolveInOrder(ctx, ids)
}

// Ancestors walks parent links upward, nearest ancestor first
func (e *AdjacencyEngine) Ancestors(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error) {
	dept, err := e.requireDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	visited := map[uuid.UUID]struct{}{dept.ID: {}}
	var ancestors []DepartmentDTO
	current := dept
	for current.ParentID != nil {
		parent, err := e.repo.FindByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, domain.ErrDataIntegrity
			}
			return nil, err
		}
		// Revisiting a node means the parent links form a cycle.
		if _, ok := visited[parent.ID]; ok {
			return nil, domain.ErrDataIntegrity
		}
		visited[parent.ID] = struct{}{}
		ancestors = append(ancestors, *toDepartmentDTO(parent))
		current = parent
	}
	if ancestors == nil {
		ancestors = []DepartmentDTO{}
	}
	return ancestors, nil
}

// descendantIDs walks the child-pointer graph iteratively, pre-order, with a
// visited set; deep trees never grow the call stack and a revisit surfaces a
// corrupted invariant instead of looping.
func (e *AdjacencyEngine) descendantIDs(ctx context.Context, root uuid.UUID) ([]uuid.UUID, error) {
	visited := map[uuid.UUID]struct{}{root: {}}
	var result []uuid.UUID

	stack := []uuid.UUID{root}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current != root {
			result = append(result, current)
		}

		children, err := e.repo.FindChildren(ctx, current)
		if err != nil {
			return nil, err
		}
		// Push in reverse so the name-ordered children pop first-child first.
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if _, ok := visited[child.ID]; ok {
				return nil, domain.ErrDataIntegrity
			}
			visited[child.ID] = struct{}{}
			stack = append(stack, child.ID)
		}
	}
	return result, nil
}

// Ensure AdjacencyEngine implements Engine
var _ Engine = (*AdjacencyEngine)(nil)
