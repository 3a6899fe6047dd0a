package persistence

import (
	"context"

	"github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClosureRepository implements hierarchy.ClosureRepository. It embeds the
// node repository and adds the materialized ancestor/descendant relation.
type GormClosureRepository struct {
	GormDepartmentRepository
}

// NewGormClosureRepository creates a new GormClosureRepository
func NewGormClosureRepository(db *gorm.DB) *GormClosureRepository {
	return &GormClosureRepository{GormDepartmentRepository{db: db}}
}

// FindAncestorEntries returns all rows with the given descendant, including
// the self row, ordered by ascending distance.
func (r *GormClosureRepository) FindAncestorEntries(ctx context.Context, descendantID uuid.UUID) ([]hierarchy.DepartmentClosure, error) {
	var rows []models.DepartmentClosureModel
	if err := r.db.WithContext(ctx).
		Where("descendant_id = ?", descendantID).
		Order("distance ASC, ancestor_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toClosureList(rows), nil
}

// FindSubtreeEntries returns all rows with the given ancestor, including the
// self row, ordered by ascending distance.
func (r *GormClosureRepository) FindSubtreeEntries(ctx context.Context, ancestorID uuid.UUID) ([]hierarchy.DepartmentClosure, error) {
	var rows []models.DepartmentClosureModel
	if err := r.db.WithContext(ctx).
		Where("ancestor_id = ?", ancestorID).
		Order("distance ASC, descendant_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toClosureList(rows), nil
}

// FindEntriesWithin returns the rows whose ancestor and descendant both
// belong to the given id set.
func (r *GormClosureRepository) FindEntriesWithin(ctx context.Context, ids []uuid.UUID) ([]hierarchy.DepartmentClosure, error) {
	if len(ids) == 0 {
		return []hierarchy.DepartmentClosure{}, nil
	}

	var rows []models.DepartmentClosureModel
	if err := r.db.WithContext(ctx).
		Where("ancestor_id IN ? AND descendant_id IN ?", ids, ids).
		Order("distance ASC, descendant_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toClosureList(rows), nil
}

// CreateWithClosure inserts the department and its closure rows in one
// transaction. The caller orders entries by ascending distance.
func (r *GormClosureRepository) CreateWithClosure(ctx context.Context, dept *hierarchy.Department, entries []hierarchy.DepartmentClosure) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.DepartmentModelFromDomain(dept)).Error; err != nil {
			return err
		}
		return insertClosureRows(tx, entries)
	})
}

// MoveSubtree rebuilds the closure relation of the moving subtree: every row
// whose descendant belongs to the subtree is dropped and replaced by the
// caller-computed rows, together with the moved department's node update,
// in one transaction.
func (r *GormClosureRepository) MoveSubtree(ctx context.Context, dept *hierarchy.Department, subtreeIDs []uuid.UUID, inserts []hierarchy.DepartmentClosure) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.DepartmentModelFromDomain(dept)).Error; err != nil {
			return err
		}
		if len(subtreeIDs) > 0 {
			if err := tx.Delete(&models.DepartmentClosureModel{}, "descendant_id IN ?", subtreeIDs).Error; err != nil {
				return err
			}
		}
		return insertClosureRows(tx, inserts)
	})
}

// DeleteSubtreeWithClosure removes the departments leaves-first together with
// every closure row referencing them, unassigning their employees.
func (r *GormClosureRepository) DeleteSubtreeWithClosure(ctx context.Context, orderedIDs []uuid.UUID) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EmployeeModel{}).
			Where("department_id IN ?", orderedIDs).
			Update("department_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DepartmentClosureModel{},
			"ancestor_id IN ? OR descendant_id IN ?", orderedIDs, orderedIDs).Error; err != nil {
			return err
		}
		// Leaves first: the ids arrive in descending-distance order so no
		// department row is ever deleted before its descendants.
		for _, id := range orderedIDs {
			if err := tx.Delete(&models.DepartmentModel{}, "id = ?", id).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func insertClosureRows(tx *gorm.DB, entries []hierarchy.DepartmentClosure) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]models.DepartmentClosureModel, len(entries))
	for i, entry := range entries {
		rows[i] = *models.ClosureModelFromDomain(entry)
	}
	return tx.Create(&rows).Error
}

func toClosureList(rows []models.DepartmentClosureModel) []hierarchy.DepartmentClosure {
	entries := make([]hierarchy.DepartmentClosure, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries
}

// Ensure GormClosureRepository implements ClosureRepository
var _ hierarchy.ClosureRepository = (*GormClosureRepository)(nil)
