package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the central inventory entity. Stock is stored in the base unit
// (UnitID) and is only mutated through the stock ledger; ConversionRules
// re-express it in larger units for display.
type Product struct {
	ID            string
	Code          string // unique
	Name          string
	Description   string
	CategoryID    string
	UnitID        string // base unit
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	MinimumStock  decimal.Decimal
	Stock         decimal.Decimal // base-unit quantity, never negative
	Location      string
	Barcode       string
	Image         string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Resolved relations (populated on reads).
	CategoryName    string
	UnitName        string
	ConversionRules []ConversionRule
}
