package conversion

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/domain/entity"
)

// UnitQuantity is one line of a stock breakdown: Quantity whole FromUnits.
type UnitQuantity struct {
	UnitName string `json:"unit_name"`
	Quantity int64  `json:"quantity"`
}

// Decompose re-expresses a base-unit stock quantity as a largest-unit-first
// breakdown across the product's conversion rules (domain service, pure).
//
// Greedy, like making change: rules are sorted descending by factor (stable,
// so equal factors keep their input order), each factor divides the remaining
// base-unit quantity, whole multiples are emitted and the remainder carries
// on to the next rule. Units contributing zero whole multiples are omitted.
// Factors are applied standalone against the base quantity, never composed
// across rules.
//
// The base unit itself and the final remainder are not part of the result;
// callers report the raw stock alongside the breakdown.
//
// base must be non-negative (caller's precondition). Rules with a
// non-positive factor are skipped.
func Decompose(base decimal.Decimal, rules []entity.ConversionRule) []UnitQuantity {
	out := []UnitQuantity{}
	if base.IsZero() || len(rules) == 0 {
		return out
	}

	sorted := make([]entity.ConversionRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Factor.GreaterThan(sorted[j].Factor)
	})

	remaining := base
	for _, rule := range sorted {
		if !rule.Factor.IsPositive() {
			continue
		}
		qty := remaining.Div(rule.Factor).Floor()
		if qty.IsPositive() {
			out = append(out, UnitQuantity{
				UnitName: rule.FromUnitName,
				Quantity: qty.IntPart(),
			})
			remaining = remaining.Mod(rule.Factor)
		}
	}
	return out
}

// Remainder returns the base-unit quantity left after subtracting every
// breakdown line times its rule's factor. Factors are matched by FromUnitName.
func Remainder(base decimal.Decimal, rules []entity.ConversionRule, breakdown []UnitQuantity) decimal.Decimal {
	factors := make(map[string]decimal.Decimal, len(rules))
	for _, rule := range rules {
		factors[rule.FromUnitName] = rule.Factor
	}
	remaining := base
	for _, line := range breakdown {
		factor, ok := factors[line.UnitName]
		if !ok {
			continue
		}
		remaining = remaining.Sub(factor.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return remaining
}
