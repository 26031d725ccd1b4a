package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest input for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=255"`
}

// UpdateCategoryRequest input for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// CategoryResponse output for a category. ProductCount is filled on lists,
// Products on detail.
type CategoryResponse struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	ProductCount int                      `json:"product_count"`
	Products     []CategoryProductSummary `json:"products,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
}

// CategoryProductSummary slim product line inside a category detail.
type CategoryProductSummary struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Stock    decimal.Decimal `json:"stock"`
	UnitName string          `json:"unit_name"`
}

// CategoryListResponse list of categories with product counts.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
