package entity

import "github.com/shopspring/decimal"

// ConversionRule relates a larger unit to the owning product's base unit:
// 1 FromUnit = Factor ToUnits. Factor must be positive. Rules are owned by
// exactly one product and replaced as a whole set on product update.
//
// Factors are not composed across rules: "1 dus = 8 box" and "1 box = 10 pcs"
// each apply standalone against the base-unit quantity during decomposition.
type ConversionRule struct {
	ID            string
	ProductID     string
	FromUnitID    string
	ToUnitID      string
	Factor        decimal.Decimal
	PurchasePrice *decimal.Decimal // optional override
	SalePrice     *decimal.Decimal // optional override

	// Resolved unit names (populated on reads).
	FromUnitName string
	ToUnitName   string
}
