package repository

import "github.com/gudangku/gudang-api/internal/domain/entity"

// LedgerRepository defines the persistence port for the append-only stock
// ledger. There is deliberately no update or delete.
type LedgerRepository interface {
	Append(entry *entity.LedgerEntry) error
	ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error)
	CountByProduct(productID string) (int, error)
}
