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

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create saves a new employee
func (r *GormEmployeeRepository) Create(ctx context.Context, emp *hierarchy.Employee) error {
	return r.db.WithContext(ctx).Create(models.EmployeeModelFromDomain(emp)).Error
}

// Save updates an existing employee
func (r *GormEmployeeRepository) Save(ctx context.Context, emp *hierarchy.Employee) error {
	result := r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(emp))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an employee by ID
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*hierarchy.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of employees ordered by last name
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]hierarchy.Employee, error) {
	query := applyEmployeeSearch(r.db.WithContext(ctx), filter.Search).
		Order("last_name ASC, first_name ASC, id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var empModels []models.EmployeeModel
	if err := query.Find(&empModels).Error; err != nil {
		return nil, err
	}
	return toEmployeeList(empModels), nil
}

// Count returns the number of employees matching the filter's search
func (r *GormEmployeeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var total int64
	query := applyEmployeeSearch(r.db.WithContext(ctx).Model(&models.EmployeeModel{}), filter.Search)
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func applyEmployeeSearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	pattern := "%" + search + "%"
	return query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", pattern, pattern, pattern)
}

// FindByDepartment finds all employees assigned to a department
func (r *GormEmployeeRepository) FindByDepartment(ctx context.Context, departmentID uuid.UUID) ([]hierarchy.Employee, error) {
	var empModels []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("last_name ASC, first_name ASC, id ASC").
		Find(&empModels).Error; err != nil {
		return nil, err
	}
	return toEmployeeList(empModels), nil
}

func toEmployeeList(empModels []models.EmployeeModel) []hierarchy.Employee {
	employees := make([]hierarchy.Employee, len(empModels))
	for i := range empModels {
		employees[i] = *empModels[i].ToDomain()
	}
	return employees
}

// Ensure GormEmployeeRepository implements EmployeeRepository
var _ hierarchy.EmployeeRepository = (*GormEmployeeRepository)(nil)
