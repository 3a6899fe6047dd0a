package persistence

import (
	"context"
	"errors"

	"github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/orgchart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDepartmentRepository implements hierarchy.DepartmentRepository and
// hierarchy.PathRepository using GORM. Subtree mutations run inside a single
// transaction so no partially rewritten tree is ever visible.
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository creates a new GormDepartmentRepository
func NewGormDepartmentRepository(db *gorm.DB) *GormDepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create saves a new department
func (r *GormDepartmentRepository) Create(ctx context.Context, dept *hierarchy.Department) error {
	model := models.DepartmentModelFromDomain(dept)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing department
func (r *GormDepartmentRepository) Save(ctx context.Context, dept *hierarchy.Department) error {
	model := models.DepartmentModelFromDomain(dept)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a department by ID
func (r *GormDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*hierarchy.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds departments by multiple IDs
func (r *GormDepartmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]hierarchy.Department, error) {
	if len(ids) == 0 {
		return []hierarchy.Department{}, nil
	}

	var deptModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDomainList(deptModels), nil
}

// FindAll returns every department ordered by name
func (r *GormDepartmentRepository) FindAll(ctx context.Context) ([]hierarchy.Department, error) {
	var deptModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Order("name ASC, id ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDomainList(deptModels), nil
}

// FindChildren finds all direct children of a department
func (r *GormDepartmentRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]hierarchy.Department, error) {
	var deptModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name ASC, id ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDomainList(deptModels), nil
}

// SearchByName finds departments whose name contains the substring
func (r *GormDepartmentRepository) SearchByName(ctx context.Context, substring string) ([]hierarchy.Department, error) {
	var deptModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+substring+"%").
		Order("name ASC, id ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDomainList(deptModels), nil
}

// DeleteSubtree removes the given departments and unassigns their employees
// in a single transaction.
func (r *GormDepartmentRepository) DeleteSubtree(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EmployeeModel{}).
			Where("department_id IN ?", ids).
			Update("department_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DepartmentModel{}, "id IN ?", ids).Error
	})
}

// FindDescendantsByPath returns every department whose path lies strictly
// inside the subtree denoted by the given path, ordered by path.
func (r *GormDepartmentRepository) FindDescendantsByPath(ctx context.Context, path string) ([]hierarchy.Department, error) {
	var deptModels []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("path LIKE ? AND path <> ?", path+"%", path).
		Order("path ASC").
		Find(&deptModels).Error; err != nil {
		return nil, err
	}
	return toDomainList(deptModels), nil
}

// MoveSubtree persists the moved department and every rewritten descendant
// path in one transaction.
func (r *GormDepartmentRepository) MoveSubtree(ctx context.Context, dept *hierarchy.Department, updates []hierarchy.PathUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.DepartmentModelFromDomain(dept)
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		for _, update := range updates {
			if err := tx.Model(&models.DepartmentModel{}).
				Where("id = ?", update.ID).
				Update("path", update.Path).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func toDomainList(deptModels []models.DepartmentModel) []hierarchy.Department {
	departments := make([]hierarchy.Department, len(deptModels))
	for i := range deptModels {
		departments[i] = *deptModels[i].ToDomain()
	}
	return departments
}

// Ensure GormDepartmentRepository implements the repository contracts
var (
	_ hierarchy.DepartmentRepository = (*GormDepartmentRepository)(nil)
	_ hierarchy.PathRepository       = (*GormDepartmentRepository)(nil)
)
