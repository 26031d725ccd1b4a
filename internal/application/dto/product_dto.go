package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/domain/conversion"
)

// ConversionRuleInput one conversion rule in a product create/update payload:
// 1 from_unit = factor base units. Override prices are optional.
type ConversionRuleInput struct {
	FromUnitID    string           `json:"from_unit_id" validate:"required,uuid4"`
	ToUnitID      string           `json:"to_unit_id" validate:"required,uuid4"`
	Factor        decimal.Decimal  `json:"factor"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
}

// CreateProductRequest input for creating a product with optional initial
// stock and conversion rules.
type CreateProductRequest struct {
	Code            string                `json:"code" validate:"required,min=1,max=100"`
	Name            string                `json:"name" validate:"required,min=1,max=255"`
	Description     string                `json:"description"`
	CategoryID      string                `json:"category_id" validate:"required,uuid4"`
	UnitID          string                `json:"unit_id" validate:"required,uuid4"`
	PurchasePrice   decimal.Decimal       `json:"purchase_price"`
	SalePrice       decimal.Decimal       `json:"sale_price"`
	MinimumStock    decimal.Decimal       `json:"minimum_stock"`
	Stock           decimal.Decimal       `json:"stock"`
	Location        string                `json:"location" validate:"max=100"`
	Barcode         string                `json:"barcode" validate:"max=100"`
	Image           string                `json:"image" validate:"max=255"`
	Active          *bool                 `json:"active"`
	ConversionRules []ConversionRuleInput `json:"conversion_rules" validate:"dive"`
}

// UpdateProductRequest input for updating a product. Stock is absent on
// purpose: it only moves through the stock ledger. A non-nil ConversionRules
// replaces the whole rule set transactionally; nil leaves rules untouched.
type UpdateProductRequest struct {
	Code            *string               `json:"code" validate:"omitempty,min=1,max=100"`
	Name            *string               `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string               `json:"description"`
	CategoryID      *string               `json:"category_id" validate:"omitempty,uuid4"`
	UnitID          *string               `json:"unit_id" validate:"omitempty,uuid4"`
	PurchasePrice   *decimal.Decimal      `json:"purchase_price"`
	SalePrice       *decimal.Decimal      `json:"sale_price"`
	MinimumStock    *decimal.Decimal      `json:"minimum_stock"`
	Location        *string               `json:"location" validate:"omitempty,max=100"`
	Barcode         *string               `json:"barcode" validate:"omitempty,max=100"`
	Image           *string               `json:"image" validate:"omitempty,max=255"`
	Active          *bool                 `json:"active"`
	ConversionRules []ConversionRuleInput `json:"conversion_rules" validate:"dive"`
}

// RefSummary id + name pair for embedded category/unit references.
type RefSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConversionRuleResponse output for one conversion rule.
type ConversionRuleResponse struct {
	ID            string           `json:"id"`
	FromUnit      RefSummary       `json:"from_unit"`
	ToUnit        RefSummary       `json:"to_unit"`
	Factor        decimal.Decimal  `json:"factor"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
}

// ProductResponse output for a product. Stock is the raw base-unit quantity;
// StockInUnits is the derived breakdown, largest unit first. Both are always
// reported side by side.
type ProductResponse struct {
	ID              string                    `json:"id"`
	Code            string                    `json:"code"`
	Name            string                    `json:"name"`
	Description     string                    `json:"description"`
	Category        RefSummary                `json:"category"`
	Unit            RefSummary                `json:"unit"`
	PurchasePrice   decimal.Decimal           `json:"purchase_price"`
	SalePrice       decimal.Decimal           `json:"sale_price"`
	MinimumStock    decimal.Decimal           `json:"minimum_stock"`
	Stock           decimal.Decimal           `json:"stock"`
	StockInUnits    []conversion.UnitQuantity `json:"stock_in_units"`
	Location        string                    `json:"location"`
	Barcode         string                    `json:"barcode"`
	Image           string                    `json:"image"`
	Active          bool                      `json:"active"`
	ConversionRules []ConversionRuleResponse  `json:"conversion_rules"`
	RecentLedger    []LedgerEntryResponse     `json:"recent_ledger,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// ProductListResponse list of products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
