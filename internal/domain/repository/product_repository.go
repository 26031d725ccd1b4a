package repository

import (
	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/domain/entity"
)

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID string
	Active     *bool
	Search     string // matches name, code or barcode
}

// ProductRepository defines the persistence port for Product and its owned
// conversion rules. GetForUpdate locks the product row for the duration of
// the surrounding transaction (stock mutations).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock decimal.Decimal) error
	ReplaceConversionRules(productID string, rules []entity.ConversionRule) error
	Delete(id string) error
}
