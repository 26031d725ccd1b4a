package dto

import "time"

// CreateUnitRequest input for creating a unit of measure.
type CreateUnitRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description" validate:"max=255"`
}

// UpdateUnitRequest input for updating a unit. Renaming is refused while the
// unit is referenced by a product or conversion rule.
type UpdateUnitRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// UnitResponse output for a unit.
type UnitResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
