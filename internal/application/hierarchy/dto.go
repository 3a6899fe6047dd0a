package hierarchy

import (
	"time"

	domain "github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/google/uuid"
)

// CreateDepartmentInput contains input for creating a department
type CreateDepartmentInput struct {
	Name     string
	ParentID *uuid.UUID
}

// UpdateDepartmentInput contains input for updating a department.
// ChangeParent distinguishes "re-parent to ParentID (nil means make root)"
// from "leave the parent alone".
type UpdateDepartmentInput struct {
	ID           uuid.UUID
	Name         *string
	ParentID     *uuid.UUID
	ChangeParent bool
}

// DepartmentDTO represents department data returned to callers
type DepartmentDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Path      string     `json:"path,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DepartmentTreeNode is a department with its nested children
type DepartmentTreeNode struct {
	ID       uuid.UUID            `json:"id"`
	Name     string               `json:"name"`
	ParentID *uuid.UUID           `json:"parent_id,omitempty"`
	Children []DepartmentTreeNode `json:"children"`
}

// EmployeeDTO represents employee data returned to callers
type EmployeeDTO struct {
	ID           uuid.UUID  `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toDepartmentDTO(d *domain.Department) *DepartmentDTO {
	return &DepartmentDTO{
		ID:        d.ID,
		Name:      d.Name,
		ParentID:  d.ParentID,
		Path:      d.Path,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDepartmentDTOs(departments []domain.Department) []DepartmentDTO {
	dtos := make([]DepartmentDTO, len(departments))
	for i := range departments {
		dtos[i] = *toDepartmentDTO(&departments[i])
	}
	return dtos
}

func toEmployeeDTO(e *domain.Employee) *EmployeeDTO {
	return &EmployeeDTO{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toEmployeeDTOs(employees []domain.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(employees))
	for i := range employees {
		dtos[i] = *toEmployeeDTO(&employees[i])
	}
	return dtos
}

// BuildDepartmentTree nests a flat department list into parent/child trees.
func BuildDepartmentTree(departments []DepartmentDTO) []DepartmentTreeNode {
	nodeMap := make(map[uuid.UUID]*DepartmentTreeNode, len(departments))
	order := make([]uuid.UUID, 0, len(departments))
	for _, dept := range departments {
		nodeMap[dept.ID] = &DepartmentTreeNode{
			ID:       dept.ID,
			Name:     dept.Name,
			ParentID: dept.ParentID,
			Children: []DepartmentTreeNode{},
		}
		order = append(order, dept.ID)
	}

	var rootIDs []uuid.UUID
	for _, id := range order {
		node := nodeMap[id]
		if node.ParentID == nil {
			rootIDs = append(rootIDs, id)
			continue
		}
		if parent, ok := nodeMap[*node.ParentID]; ok {
			parent.Children = append(parent.Children, DepartmentTreeNode{ID: id})
		} else {
			rootIDs = append(rootIDs, id)
		}
	}

	visited := make(map[uuid.UUID]bool, len(departments))
	var materialize func(id uuid.UUID) DepartmentTreeNode
	materialize = func(id uuid.UUID) DepartmentTreeNode {
		visited[id] = true
		node := *nodeMap[id]
		children := make([]DepartmentTreeNode, 0, len(node.Children))
		for _, child := range node.Children {
			// A child already visited means the parent pointers loop.
			if visited[child.ID] {
				continue
			}
			children = append(children, materialize(child.ID))
		}
		node.Children = children
		return node
	}

	roots := make([]DepartmentTreeNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, materialize(id))
	}

	// Nodes trapped in a parent cycle are reachable from no root.
	// Surface them as roots instead of dropping them.
	for _, id := range order {
		if !visited[id] {
			roots = append(roots, materialize(id))
		}
	}
	return roots
}
