package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock transaction kinds.
const (
	TxKindInbound    = "inbound"
	TxKindOutbound   = "outbound"
	TxKindAdjustment = "adjustment" // absolute set, not a delta
	TxKindReturn     = "return"
)

// ValidTxKind reports whether kind is one of the four transaction kinds.
func ValidTxKind(kind string) bool {
	switch kind {
	case TxKindInbound, TxKindOutbound, TxKindAdjustment, TxKindReturn:
		return true
	}
	return false
}

// LedgerEntry is the immutable record of one stock mutation. Entries are
// created only by the stock ledger use case, never updated or deleted.
// Quantity holds the mutation magnitude; for adjustments it is the raw
// absolute value that was set.
type LedgerEntry struct {
	ID          string
	ProductID   string
	Kind        string
	Quantity    decimal.Decimal
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	Note        string
	Reference   string
	OccurredAt  time.Time // server-assigned
	CreatedAt   time.Time
}
