package usecase

import (
	"context"

	"github.com/gudangku/gudang-api/internal/domain/repository"
)

// TxRunner executes a function inside one database transaction with
// repositories bound to that transaction. Used for create/update flows that
// touch a product and its conversion-rule set together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
