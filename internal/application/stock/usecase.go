package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/application/dto"
	"github.com/gudangku/gudang-api/internal/domain"
	"github.com/gudangku/gudang-api/internal/domain/entity"
	"github.com/gudangku/gudang-api/internal/domain/repository"
)

// LedgerUseCase is the authoritative stock-mutation path. Every change to a
// product's stock goes through ApplyMutation, which pairs the update with an
// immutable ledger entry inside one transaction.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	ledgerRepo  repository.LedgerRepository
}

// NewLedgerUseCase builds the use case. productRepo and ledgerRepo are the
// pool-bound repositories used for reads outside the mutation transaction.
func NewLedgerUseCase(txRunner TxRunner, productRepo repository.ProductRepository, ledgerRepo repository.LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ApplyMutation applies one stock mutation to a product:
//
//	inbound, return: stockAfter = stockBefore + amount
//	outbound:        stockAfter = stockBefore - amount
//	adjustment:      stockAfter = amount (absolute set)
//
// The product row is locked (SELECT FOR UPDATE) for the duration of the
// transaction, so concurrent mutations on the same product serialize at the
// storage layer. A mutation that would drive stock negative fails with
// ErrInsufficientStock and leaves both stock and ledger untouched.
func (uc *LedgerUseCase) ApplyMutation(ctx context.Context, productID string, in dto.StockMutationRequest) (*dto.StockMutationResponse, error) {
	if !entity.ValidTxKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var before, after decimal.Decimal
	now := time.Now().UTC()

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		before = product.Stock
		switch in.Kind {
		case entity.TxKindInbound, entity.TxKindReturn:
			after = before.Add(in.Amount)
		case entity.TxKindOutbound:
			after = before.Sub(in.Amount)
		case entity.TxKindAdjustment:
			after = in.Amount
		}
		if after.IsNegative() {
			return domain.ErrInsufficientStock
		}

		if err := productRepo.UpdateStock(productID, after); err != nil {
			return err
		}

		// Adjustments record the raw absolute value that was set; the other
		// kinds record the magnitude.
		quantity := in.Amount.Abs()
		if in.Kind == entity.TxKindAdjustment {
			quantity = in.Amount
		}
		return ledgerRepo.Append(&entity.LedgerEntry{
			ID:          uuid.New().String(),
			ProductID:   productID,
			Kind:        in.Kind,
			Quantity:    quantity,
			StockBefore: before,
			StockAfter:  after,
			Note:        in.Note,
			Reference:   in.Reference,
			OccurredAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", productID).
		Str("kind", in.Kind).
		Str("stock_before", before.String()).
		Str("stock_after", after.String()).
		Msg("stock mutation applied")

	// Reload with relations for the enriched response.
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.StockMutationResponse{
		StockBefore: before,
		StockAfter:  after,
		Product:     dto.FromProduct(product),
	}, nil
}

// GetLedger returns the product's most recent ledger entries, newest first,
// with total count and offset/limit pagination metadata.
func (uc *LedgerUseCase) GetLedger(ctx context.Context, productID string, page dto.PageRequest) (*dto.LedgerHistoryResponse, error) {
	page.DefaultPage()

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	entries, err := uc.ledgerRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.ledgerRepo.CountByProduct(productID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromLedgerEntry(e))
	}
	return &dto.LedgerHistoryResponse{
		Entries: out,
		Pagination: dto.PageResponse{
			Total:  total,
			Limit:  page.Limit,
			Offset: page.Offset,
		},
	}, nil
}
