package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/orgchart/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Strategy names a hierarchy storage strategy.
type Strategy string

const (
	StrategyAdjacency Strategy = "adjacency"
	StrategyClosure   Strategy = "closure"
	StrategyPath      Strategy = "path"
)

// ParseStrategy validates a configured strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAdjacency, StrategyClosure, StrategyPath:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown hierarchy strategy %q (want adjacency, closure, or path)", s)
	}
}

// Config carries the construction-time settings shared by every engine.
type Config struct {
	MaxNameLength int
}

// Engine is the shared contract all three hierarchy storage strategies
// implement. A deployment selects exactly one engine.
//
// Every mutating operation is atomic: it either applies completely or not at
// all. Structural mutations are additionally serialized per engine instance;
// cross-process serialization relies on the store's transaction isolation.
type Engine interface {
	Create(ctx context.Context, input CreateDepartmentInput) (*DepartmentDTO, error)
	Update(ctx context.Context, input UpdateDepartmentInput) (*DepartmentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error)
	List(ctx context.Context) ([]DepartmentDTO, error)
	SearchByName(ctx context.Context, substring string) ([]DepartmentDTO, error)
	Children(ctx context.Context, parentID uuid.UUID) ([]DepartmentDTO, error)
	Parent(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error)
	Descendants(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error)
	Ancestors(ctx context.Context, id uuid.UUID) ([]DepartmentDTO, error)
	Strategy() Strategy
}

// NewEngine constructs the engine selected by the configured strategy.
func NewEngine(strategy Strategy, db *gorm.DB, cfg Config, logger *zap.Logger) (Engine, error) {
	switch strategy {
	case StrategyAdjacency:
		return NewAdjacencyEngine(persistence.NewGormDepartmentRepository(db), cfg, logger), nil
	case StrategyClosure:
		return NewClosureEngine(persistence.NewGormClosureRepository(db), cfg, logger), nil
	case StrategyPath:
		return NewPathEngine(persistence.NewGormDepartmentRepository(db), cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown hierarchy strategy %q", strategy)
	}
}

// baseEngine provides the node-level queries whose behavior does not depend
// on the storage strategy, plus the mutation lock shared by every engine.
type baseEngine struct {
	repo   domain.DepartmentRepository
	cfg    Config
	logger *zap.Logger

	// Serializes structural mutations within this process. Two concurrent
	// moves on overlapping subtrees would otherwise interleave their
	// multi-row writes.
	mu sync.Mutex
}

// Get retrieves a department by ID
func (e *baseEngine) Get(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	dept, err := e.requireDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDepartmentDTO(dept), nil
}

// List returns every department
func (e *baseEngine) List(ctx context.Context) ([]DepartmentDTO, error) {
	departments, err := e.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDepartmentDTOs(departments), nil
}

// SearchByName returns departments whose name contains the substring
func (e *baseEngine) SearchByName(ctx context.Context, substring string) ([]DepartmentDTO, error) {
	departments, err := e.repo.SearchByName(ctx, substring)
	if err != nil {
		return nil, err
	}
	return toDepartmentDTOs(departments), nil
}

// Children returns the direct children of a department
func (e *baseEngine) Children(ctx context.Context, parentID uuid.UUID) ([]DepartmentDTO, error) {
	if _, err := e.repo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, domain.ErrParentNotFound
		}
		return nil, err
	}

	children, err := e.repo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return toDepartmentDTOs(children), nil
}

// Parent returns the parent of a department
func (e *baseEngine) Parent(ctx context.Context, id uuid.UUID) (*DepartmentDTO, error) {
	dept, err := e.requireDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept.ParentID == nil {
		return nil, domain.ErrNoParent
	}

	parent, err := e.repo.FindByID(ctx, *dept.ParentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// A dangling parent reference means the tree invariant is broken.
			return nil, domain.ErrDataIntegrity
		}
		return nil, err
	}
	return toDepartmentDTO(parent), nil
}

func (e *baseEngine) validateName(name string) error {
	return domain.ValidateName(name, e.cfg.MaxNameLength)
}

func (e *baseEngine) requireDepartment(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	dept, err := e.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept, nil
}

func (e *baseEngine) requireParent(ctx context.Context, id uuid.UUID) (*domain.Department, error) {
	parent, err := e.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, domain.ErrParentNotFound
		}
		return nil, err
	}
	return parent, nil
}

// resolveInOrder loads the given departments and returns them in the order of
// the id slice. A missing id signals a broken invariant.
func (e *baseEngine) resolveInOrder(ctx context.Context, ids []uuid.UUID) ([]DepartmentDTO, error) {
	departments, err := e.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Department, len(departments))
	for i := range departments {
		byID[departments[i].ID] = &departments[i]
	}

	dtos := make([]DepartmentDTO, 0, len(ids))
	for _, id := range ids {
		dept, ok := byID[id]
		if !ok {
			return nil, domain.ErrDataIntegrity
		}
		dtos = append(dtos, *toDepartmentDTO(dept))
	}
	return dtos, nil
}
