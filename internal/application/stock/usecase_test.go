package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangku/gudang-api/internal/application/dto"
	"github.com/gudangku/gudang-api/internal/application/stock"
	"github.com/gudangku/gudang-api/internal/domain"
	"github.com/gudangku/gudang-api/internal/domain/entity"
	"github.com/gudangku/gudang-api/internal/domain/repository"
)

// In-memory fakes. The tx runner snapshots state before the callback and
// restores it on error, mirroring the rollback the real runner gets from
// PostgreSQL.

type memStore struct {
	products map[string]*entity.Product
	ledger   []*entity.LedgerEntry
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r *memProductRepo) UpdateStock(id string, qty decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = qty
	return nil
}

func (r *memProductRepo) ReplaceConversionRules(id string, rules []entity.ConversionRule) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ConversionRules = rules
	return nil
}

func (r *memProductRepo) Delete(id string) error { delete(r.s.products, id); return nil }

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Append(e *entity.LedgerEntry) error {
	r.s.ledger = append(r.s.ledger, e)
	return nil
}

// ListByProduct returns entries newest first (append order reversed).
func (r *memLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var all []*entity.LedgerEntry
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		if r.s.ledger[i].ProductID == productID {
			all = append(all, r.s.ledger[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memLedgerRepo) CountByProduct(productID string) (int, error) {
	n := 0
	for _, e := range r.s.ledger {
		if e.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.LedgerRepository) error) error {
	snapshot := memStore{
		products: make(map[string]*entity.Product, len(t.s.products)),
		ledger:   append([]*entity.LedgerEntry(nil), t.s.ledger...),
	}
	for id, p := range t.s.products {
		cp := *p
		snapshot.products[id] = &cp
	}
	if err := fn(&memProductRepo{s: t.s}, &memLedgerRepo{s: t.s}); err != nil {
		*t.s = snapshot
		return err
	}
	return nil
}

func newFixture(stockQty int64) (*stock.LedgerUseCase, *memStore) {
	s := &memStore{products: make(map[string]*entity.Product)}
	s.products["p1"] = &entity.Product{
		ID:       "p1",
		Code:     "INDOMIE-001",
		Name:     "Indomie Goreng",
		UnitName: "pcs",
		Stock:    decimal.NewFromInt(stockQty),
		ConversionRules: []entity.ConversionRule{
			{FromUnitName: "dus", Factor: decimal.NewFromInt(80)},
			{FromUnitName: "box", Factor: decimal.NewFromInt(10)},
		},
	}
	uc := stock.NewLedgerUseCase(&memTxRunner{s: s}, &memProductRepo{s: s}, &memLedgerRepo{s: s})
	return uc, s
}

func mutation(kind string, amount int64) dto.StockMutationRequest {
	return dto.StockMutationRequest{Kind: kind, Amount: decimal.NewFromInt(amount)}
}

func TestApplyMutation_Inbound(t *testing.T) {
	uc, s := newFixture(100)

	out, err := uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindInbound, 40))
	require.NoError(t, err)

	assert.True(t, out.StockBefore.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.StockAfter.Equal(decimal.NewFromInt(140)))
	assert.True(t, s.products["p1"].Stock.Equal(decimal.NewFromInt(140)))

	require.Len(t, s.ledger, 1)
	assert.Equal(t, entity.TxKindInbound, s.ledger[0].Kind)
	assert.True(t, s.ledger[0].Quantity.Equal(decimal.NewFromInt(40)))
}

func TestApplyMutation_OutboundAndReturn(t *testing.T) {
	uc, s := newFixture(100)

	_, err := uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindOutbound, 30))
	require.NoError(t, err)
	assert.True(t, s.products["p1"].Stock.Equal(decimal.NewFromInt(70)))

	_, err = uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindReturn, 5))
	require.NoError(t, err)
	assert.True(t, s.products["p1"].Stock.Equal(decimal.NewFromInt(75)))
}

func TestApplyMutation_InsufficientStock(t *testing.T) {
	uc, s := newFixture(10)

	_, err := uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindOutbound, 11))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// No state change: stock and ledger untouched.
	assert.True(t, s.products["p1"].Stock.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, s.ledger)
}

func TestApplyMutation_AdjustmentIsAbsolute(t *testing.T) {
	uc, s := newFixture(123)

	out, err := uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindAdjustment, 50))
	require.NoError(t, err)

	assert.True(t, out.StockAfter.Equal(decimal.NewFromInt(50)))
	assert.True(t, s.products["p1"].Stock.Equal(decimal.NewFromInt(50)))

	require.Len(t, s.ledger, 1)
	assert.True(t, s.ledger[0].StockBefore.Equal(decimal.NewFromInt(123)))
	assert.True(t, s.ledger[0].StockAfter.Equal(decimal.NewFromInt(50)))
	// Adjustment stores the raw amount that was set.
	assert.True(t, s.ledger[0].Quantity.Equal(decimal.NewFromInt(50)))
}

func TestApplyMutation_SequentialEntriesChain(t *testing.T) {
	uc, s := newFixture(100)

	_, err := uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindInbound, 20))
	require.NoError(t, err)
	_, err = uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindOutbound, 35))
	require.NoError(t, err)

	require.Len(t, s.ledger, 2)
	assert.True(t, s.ledger[0].StockAfter.Equal(s.ledger[1].StockBefore),
		"stockAfter of the first entry must equal stockBefore of the second")
}

func TestApplyMutation_InvalidInput(t *testing.T) {
	uc, _ := newFixture(10)

	_, err := uc.ApplyMutation(context.Background(), "p1", mutation("transfer", 5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindInbound, -5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMutation_ProductNotFound(t *testing.T) {
	uc, _ := newFixture(10)

	_, err := uc.ApplyMutation(context.Background(), "missing", mutation(entity.TxKindInbound, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMutation_ResponseCarriesBreakdown(t *testing.T) {
	uc, _ := newFixture(0)

	out, err := uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindInbound, 875))
	require.NoError(t, err)

	// 875 pcs with dus=80, box=10 -> 10 dus + 7 box (5 pcs raw remainder).
	require.Len(t, out.Product.StockInUnits, 2)
	assert.Equal(t, "dus", out.Product.StockInUnits[0].UnitName)
	assert.Equal(t, int64(10), out.Product.StockInUnits[0].Quantity)
	assert.Equal(t, "box", out.Product.StockInUnits[1].UnitName)
	assert.Equal(t, int64(7), out.Product.StockInUnits[1].Quantity)
	assert.True(t, out.Product.Stock.Equal(decimal.NewFromInt(875)))
}

func TestGetLedger_PaginationNewestFirst(t *testing.T) {
	uc, _ := newFixture(0)

	for i := 0; i < 5; i++ {
		_, err := uc.ApplyMutation(context.Background(), "p1", mutation(entity.TxKindInbound, int64(i+1)))
		require.NoError(t, err)
	}

	out, err := uc.GetLedger(context.Background(), "p1", dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.Limit)
	assert.Equal(t, 1, out.Pagination.Offset)
	require.Len(t, out.Entries, 2)
	// Newest first: the 4th mutation (amount 4) follows the 5th.
	assert.True(t, out.Entries[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, out.Entries[1].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestGetLedger_ProductNotFound(t *testing.T) {
	uc, _ := newFixture(0)

	_, err := uc.GetLedger(context.Background(), "missing", dto.PageRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
