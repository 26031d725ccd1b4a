package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/domain/entity"
)

// CategorySummary is a category with its product count (list views).
type CategorySummary struct {
	Category     entity.Category
	ProductCount int
}

// ProductSummary is the slim product projection embedded in a category detail.
type ProductSummary struct {
	ID       string
	Code     string
	Name     string
	Stock    decimal.Decimal
	UnitName string
}

// CategoryRepository defines the persistence port for Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]CategorySummary, error)
	ListProducts(categoryID string) ([]ProductSummary, error)
	CountProducts(categoryID string) (int, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
