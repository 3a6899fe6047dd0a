package hierarchy

import "github.com/orgchart/backend/internal/domain/shared"

// Domain errors shared by every hierarchy engine. The engines differ in how
// they detect these conditions, not in how they report them.
var (
	ErrDepartmentNotFound = shared.NewDomainError("DEPARTMENT_NOT_FOUND", "Department not found")
	ErrParentNotFound     = shared.NewDomainError("PARENT_NOT_FOUND", "Parent department not found")
	ErrNoParent           = shared.NewDomainError("NO_PARENT", "Department has no parent")
	ErrCircularDependency = shared.NewDomainError("CIRCULAR_DEPENDENCY", "Department cannot become its own ancestor or descendant")
	ErrDataIntegrity      = shared.NewDomainError("DATA_INTEGRITY", "Hierarchy invariant violation detected")
	ErrEmployeeNotFound   = shared.NewDomainError("EMPLOYEE_NOT_FOUND", "Employee not found")
)
