package hierarchy

import (
	"regexp"
	"strings"

	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Employee is a person attached to at most one department.
type Employee struct {
	shared.BaseEntity
	FirstName    string
	LastName     string
	Email        string
	DepartmentID *uuid.UUID
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewEmployee creates an employee after validating its fields.
func NewEmployee(firstName, lastName, email string) (*Employee, error) {
	if err := validateEmployeeName(firstName, "first name"); err != nil {
		return nil, err
	}
	if err := validateEmployeeName(lastName, "last name"); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	return &Employee{
		BaseEntity: shared.NewBaseEntity(),
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Email:      strings.ToLower(strings.TrimSpace(email)),
	}, nil
}

// FullName returns the display name.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AssignTo attaches the employee to a department.
func (e *Employee) AssignTo(departmentID uuid.UUID) {
	id := departmentID
	e.DepartmentID = &id
	e.Touch()
}

// Unassign detaches the employee from its department.
func (e *Employee) Unassign() {
	e.DepartmentID = nil
	e.Touch()
}

// SetName updates both name parts after validation.
func (e *Employee) SetName(firstName, lastName string) error {
	if err := validateEmployeeName(firstName, "first name"); err != nil {
		return err
	}
	if err := validateEmployeeName(lastName, "last name"); err != nil {
		return err
	}
	e.FirstName = strings.TrimSpace(firstName)
	e.LastName = strings.TrimSpace(lastName)
	e.Touch()
	return nil
}

// SetEmail updates the email after validation.
func (e *Employee) SetEmail(email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	e.Email = strings.ToLower(strings.TrimSpace(email))
	e.Touch()
	return nil
}

// ValidateEmail checks the employee email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Employee email is not a valid address")
	}
	return nil
}

func validateEmployeeName(name, field string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_EMPLOYEE_NAME", "Employee "+field+" cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_EMPLOYEE_NAME", "Employee "+field+" cannot exceed 100 characters")
	}
	return nil
}
