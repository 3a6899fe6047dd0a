package hierarchy

import (
	"context"
	"errors"

	domain "github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateEmployeeInput contains input for creating an employee
type CreateEmployeeInput struct {
	FirstName    string
	LastName     string
	Email        string
	DepartmentID *uuid.UUID
}

// maxPageSize caps a single employee listing page.
const maxPageSize = 100

// UpdateEmployeeInput contains input for updating an employee
type UpdateEmployeeInput struct {
	ID        uuid.UUID
	FirstName *string
	LastName  *string
	Email     *string
}

// EmployeeService manages employees and their department assignments. It
// shares the department store with the hierarchy engine so assignment checks
// see the same tree.
type EmployeeService struct {
	employees   domain.EmployeeRepository
	departments domain.DepartmentRepository
	logger      *zap.Logger
}

// NewEmployeeService creates an employee service
func NewEmployeeService(employees domain.EmployeeRepository, departments domain.DepartmentRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employees:   employees,
		departments: departments,
		logger:      logger,
	}
}

// Create creates an employee, optionally assigned to a department
func (s *EmployeeService) Create(ctx context.Context, input CreateEmployeeInput) (*EmployeeDTO, error) {
	emp, err := domain.NewEmployee(input.FirstName, input.LastName, input.Email)
	if err != nil {
		return nil, err
	}

	if input.DepartmentID != nil {
		if err := s.requireDepartment(ctx, *input.DepartmentID); err != nil {
			return nil, err
		}
		emp.AssignTo(*input.DepartmentID)
	}

	if err := s.employees.Create(ctx, emp); err != nil {
		s.logger.Error("Failed to create employee", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.String("employee_id", emp.ID.String()),
		zap.String("email", emp.Email))

	return toEmployeeDTO(emp), nil
}

// Update updates an employee's name and/or email
func (s *EmployeeService) Update(ctx context.Context, input UpdateEmployeeInput) (*EmployeeDTO, error) {
	emp, err := s.requireEmployee(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil || input.LastName != nil {
		firstName := emp.FirstName
		lastName := emp.LastName
		if input.FirstName != nil {
			firstName = *input.FirstName
		}
		if input.LastName != nil {
			lastName = *input.LastName
		}
		if err := emp.SetName(firstName, lastName); err != nil {
			return nil, err
		}
	}
	if input.Email != nil {
		if err := emp.SetEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	if err := s.employees.Save(ctx, emp); err != nil {
		s.logger.Error("Failed to update employee", zap.Error(err))
		return nil, err
	}
	return toEmployeeDTO(emp), nil
}

// Delete removes an employee
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.requireEmployee(ctx, id); err != nil {
		return err
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete employee", zap.Error(err))
		return err
	}

	s.logger.Info("Employee deleted", zap.String("employee_id", id.String()))
	return nil
}

// Get retrieves an employee by ID
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error) {
	emp, err := s.requireEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeDTO(emp), nil
}

// List returns a page of employees with the total match count
func (s *EmployeeService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[EmployeeDTO], error) {
	defaults := shared.DefaultFilter()
	if filter.Page < 1 {
		filter.Page = defaults.Page
	}
	if filter.PageSize < 1 || filter.PageSize > maxPageSize {
		filter.PageSize = defaults.PageSize
	}

	employees, err := s.employees.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[EmployeeDTO]{}, err
	}
	total, err := s.employees.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[EmployeeDTO]{}, err
	}
	return shared.NewPaginated(toEmployeeDTOs(employees), total, filter.Page, filter.PageSize), nil
}

// ListByDepartment returns the employees assigned to a department
func (s *EmployeeService) ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]EmployeeDTO, error) {
	if err := s.requireDepartment(ctx, departmentID); err != nil {
		return nil, err
	}

	employees, err := s.employees.FindByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return toEmployeeDTOs(employees), nil
}

// Assign moves an employee into a department
func (s *EmployeeService) Assign(ctx context.Context, id, departmentID uuid.UUID) (*EmployeeDTO, error) {
	emp, err := s.requireEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireDepartment(ctx, departmentID); err != nil {
		return nil, err
	}

	emp.AssignTo(departmentID)
	if err := s.employees.Save(ctx, emp); err != nil {
		s.logger.Error("Failed to assign employee", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Employee assigned",
		zap.String("employee_id", id.String()),
		zap.String("department_id", departmentID.String()))

	return toEmployeeDTO(emp), nil
}

// Unassign detaches an employee from its department
func (s *EmployeeService) Unassign(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error) {
	emp, err := s.requireEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	emp.Unassign()
	if err := s.employees.Save(ctx, emp); err != nil {
		s.logger.Error("Failed to unassign employee", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Employee unassigned", zap.String("employee_id", id.String()))
	return toEmployeeDTO(emp), nil
}

func (s *EmployeeService) requireEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

func (s *EmployeeService) requireDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.departments.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return domain.ErrDepartmentNotFound
		}
		return err
	}
	return nil
}
