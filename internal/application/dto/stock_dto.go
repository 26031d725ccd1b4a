package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMutationRequest input for the stock-mutation endpoint. Amount is a
// non-negative magnitude for inbound/outbound/return and the new absolute
// stock value for adjustment.
type StockMutationRequest struct {
	Kind      string          `json:"kind" validate:"required,oneof=inbound outbound adjustment return"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note" validate:"max=255"`
	Reference string          `json:"reference" validate:"max=100"`
}

// StockMutationResponse output of a stock mutation.
type StockMutationResponse struct {
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Product     ProductResponse `json:"product"`
}

// LedgerEntryResponse output for one ledger entry.
type LedgerEntryResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Note        string          `json:"note"`
	Reference   string          `json:"reference"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// LedgerHistoryResponse paginated ledger history, newest first.
type LedgerHistoryResponse struct {
	Entries    []LedgerEntryResponse `json:"entries"`
	Pagination PageResponse          `json:"pagination"`
}
