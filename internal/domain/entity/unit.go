package entity

import "time"

// Unit is a named unit of measure ("pcs", "box", "dus").
// Name is unique and frozen once the unit is referenced as a product's base
// unit or by a conversion rule; Description stays editable.
type Unit struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
