package hierarchy

import "github.com/google/uuid"

// DepartmentClosure is one row of the materialized ancestor/descendant
// relation: the ancestor reaches the descendant in Distance parent steps.
// Every department owns exactly one self row with Distance zero.
type DepartmentClosure struct {
	AncestorID   uuid.UUID
	DescendantID uuid.UUID
	Distance     int
}

// SelfClosure builds the mandatory zero-distance self row for a department.
func SelfClosure(id uuid.UUID) DepartmentClosure {
	return DepartmentClosure{AncestorID: id, DescendantID: id, Distance: 0}
}

// IsSelf reports whether the row is a self row.
func (c DepartmentClosure) IsSelf() bool {
	return c.AncestorID == c.DescendantID
}
