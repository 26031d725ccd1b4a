package dto

import (
	"github.com/gudangku/gudang-api/internal/domain/conversion"
	"github.com/gudangku/gudang-api/internal/domain/entity"
)

// FromProduct maps a product entity to its response, deriving the per-unit
// stock breakdown from the product's conversion rules.
func FromProduct(p *entity.Product) ProductResponse {
	rules := make([]ConversionRuleResponse, 0, len(p.ConversionRules))
	for _, r := range p.ConversionRules {
		rules = append(rules, ConversionRuleResponse{
			ID:            r.ID,
			FromUnit:      RefSummary{ID: r.FromUnitID, Name: r.FromUnitName},
			ToUnit:        RefSummary{ID: r.ToUnitID, Name: r.ToUnitName},
			Factor:        r.Factor,
			PurchasePrice: r.PurchasePrice,
			SalePrice:     r.SalePrice,
		})
	}
	return ProductResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		Category:        RefSummary{ID: p.CategoryID, Name: p.CategoryName},
		Unit:            RefSummary{ID: p.UnitID, Name: p.UnitName},
		PurchasePrice:   p.PurchasePrice,
		SalePrice:       p.SalePrice,
		MinimumStock:    p.MinimumStock,
		Stock:           p.Stock,
		StockInUnits:    conversion.Decompose(p.Stock, p.ConversionRules),
		Location:        p.Location,
		Barcode:         p.Barcode,
		Image:           p.Image,
		Active:          p.Active,
		ConversionRules: rules,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromLedgerEntry maps a ledger entry entity to its response.
func FromLedgerEntry(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		Kind:        e.Kind,
		Quantity:    e.Quantity,
		StockBefore: e.StockBefore,
		StockAfter:  e.StockAfter,
		Note:        e.Note,
		Reference:   e.Reference,
		OccurredAt:  e.OccurredAt,
	}
}
