package models

import (
	"time"

	"github.com/orgchart/backend/internal/domain/hierarchy"
	"github.com/orgchart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DepartmentModel is the persistence model for the Department domain entity.
// All three hierarchy engines share this table; the path column is only
// maintained when the materialized-path engine owns the tree.
type DepartmentModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name      string     `gorm:"type:varchar(200);not null;index"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	Path      string     `gorm:"type:varchar(2000);index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department entity.
func (m *DepartmentModel) ToDomain() *hierarchy.Department {
	return &hierarchy.Department{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:     m.Name,
		ParentID: m.ParentID,
		Path:     m.Path,
	}
}

// DepartmentModelFromDomain creates a persistence model from a domain entity.
func DepartmentModelFromDomain(d *hierarchy.Department) *DepartmentModel {
	return &DepartmentModel{
		ID:        d.ID,
		Name:      d.Name,
		ParentID:  d.ParentID,
		Path:      d.Path,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// DepartmentClosureModel is one row of the materialized ancestor/descendant
// relation used by the closure-table engine.
type DepartmentClosureModel struct {
	AncestorID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	DescendantID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Distance     int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DepartmentClosureModel) TableName() string {
	return "department_closure"
}

// ToDomain converts the persistence model to a domain closure entry.
func (m *DepartmentClosureModel) ToDomain() hierarchy.DepartmentClosure {
	return hierarchy.DepartmentClosure{
		AncestorID:   m.AncestorID,
		DescendantID: m.DescendantID,
		Distance:     m.Distance,
	}
}

// ClosureModelFromDomain creates a persistence model from a domain entry.
func ClosureModelFromDomain(c hierarchy.DepartmentClosure) *DepartmentClosureModel {
	return &DepartmentClosureModel{
		AncestorID:   c.AncestorID,
		DescendantID: c.DescendantID,
		Distance:     c.Distance,
	}
}

// EmployeeModel is the persistence model for the Employee domain entity.
type EmployeeModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	FirstName    string     `gorm:"type:varchar(100);not null"`
	LastName     string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee entity.
func (m *EmployeeModel) ToDomain() *hierarchy.Employee {
	return &hierarchy.Employee{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		DepartmentID: m.DepartmentID,
	}
}

// EmployeeModelFromDomain creates a persistence model from a domain entity.
func EmployeeModelFromDomain(e *hierarchy.Employee) *EmployeeModel {
	return &EmployeeModel{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
