package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gudangku/gudang-api/internal/application/dto"
	"github.com/gudangku/gudang-api/internal/domain"
	"github.com/gudangku/gudang-api/internal/domain/entity"
	"github.com/gudangku/gudang-api/internal/domain/repository"
)

// ProductUseCase CRUD for products and their conversion-rule sets. Stock is
// set once at creation; afterwards it only moves through the stock ledger.
type ProductUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.UnitRepository
	ledgerRepo   repository.LedgerRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.UnitRepository,
	ledgerRepo repository.LedgerRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Create creates a product with optional initial stock and conversion rules,
// in one transaction.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.productRepo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Stock.IsNegative() || in.MinimumStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(in.CategoryID, in.UnitID); err != nil {
		return nil, err
	}
	rules, err := uc.buildRules(in.ConversionRules)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		UnitID:        in.UnitID,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		MinimumStock:  in.MinimumStock,
		Stock:         in.Stock,
		Location:      in.Location,
		Barcode:       in.Barcode,
		Image:         in.Image,
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.LedgerRepository) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if len(rules) > 0 {
			return productRepo.ReplaceConversionRules(product.ID, rules)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(product.ID)
}

// GetByID returns a product enriched with its stock breakdown and the ten
// most recent ledger entries, or nil when it does not exist.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := dto.FromProduct(product)

	recent, err := uc.ledgerRepo.ListByProduct(id, 10, 0)
	if err != nil {
		return nil, err
	}
	out.RecentLedger = make([]dto.LedgerEntryResponse, 0, len(recent))
	for _, e := range recent {
		out.RecentLedger = append(out.RecentLedger, dto.FromLedgerEntry(e))
	}
	return &out, nil
}

// List returns products matching the filter, ordered by name, each with its
// derived stock breakdown.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Update patches a product. Stock is untouchable here (ledger only). A
// non-nil ConversionRules replaces the whole rule set in the same
// transaction as the product update; rules not resubmitted are lost.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Code != nil && *in.Code != product.Code {
		existing, _ := uc.productRepo.GetByCode(*in.Code)
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.Code = *in.Code
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		unit, err := uc.unitRepo.GetByID(*in.UnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, domain.ErrNotFound
		}
		product.UnitID = *in.UnitID
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.MinimumStock != nil {
		if in.MinimumStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.MinimumStock = *in.MinimumStock
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()

	var rules []entity.ConversionRule
	if in.ConversionRules != nil {
		rules, err = uc.buildRules(in.ConversionRules)
		if err != nil {
			return nil, err
		}
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.LedgerRepository) error {
		if err := productRepo.Update(product); err != nil {
			return err
		}
		if in.ConversionRules != nil {
			return productRepo.ReplaceConversionRules(id, rules)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(id)
}

// Delete removes a product. Conversion rules and ledger entries cascade.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

// checkRefs verifies the referenced category and base unit exist.
func (uc *ProductUseCase) checkRefs(categoryID, unitID string) error {
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	unit, err := uc.unitRepo.GetByID(unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	return nil
}

// buildRules validates rule inputs (factor > 0, units exist) and maps them
// to entities.
func (uc *ProductUseCase) buildRules(inputs []dto.ConversionRuleInput) ([]entity.ConversionRule, error) {
	rules := make([]entity.ConversionRule, 0, len(inputs))
	for _, in := range inputs {
		if !in.Factor.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		for _, unitID := range []string{in.FromUnitID, in.ToUnitID} {
			unit, err := uc.unitRepo.GetByID(unitID)
			if err != nil {
				return nil, err
			}
			if unit == nil {
				return nil, domain.ErrNotFound
			}
		}
		rules = append(rules, entity.ConversionRule{
			ID:            uuid.New().String(),
			FromUnitID:    in.FromUnitID,
			ToUnitID:      in.ToUnitID,
			Factor:        in.Factor,
			PurchasePrice: in.PurchasePrice,
			SalePrice:     in.SalePrice,
		})
	}
	return rules, nil
}

func (uc *ProductUseCase) reload(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}
