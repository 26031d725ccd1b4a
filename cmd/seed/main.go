// seed populates a development database with the common Indonesian warehouse
// setup: base units (pcs, pack, box, dus), a few categories and one sample
// product with conversion rules and initial stock.
//
// Usage: go run ./cmd/seed
// Reads the same DB_* / DATABASE_URL configuration as the API server.
// Running it twice is safe: existing rows are left alone.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/application/dto"
	"github.com/gudangku/gudang-api/internal/application/stock"
	"github.com/gudangku/gudang-api/internal/application/usecase"
	"github.com/gudangku/gudang-api/internal/infrastructure/postgres"
	"github.com/gudangku/gudang-api/pkg/config"
	"github.com/gudangku/gudang-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	unitRepo := postgres.NewUnitRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	unitUC := usecase.NewUnitUseCase(unitRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, categoryRepo, unitRepo, ledgerRepo)
	ledgerUC := stock.NewLedgerUseCase(txRunner, productRepo, ledgerRepo)

	units := map[string]string{}
	for _, u := range []dto.CreateUnitRequest{
		{Name: "pcs", Description: "piece, the base unit"},
		{Name: "pack", Description: "small bundle"},
		{Name: "box", Description: "carton box"},
		{Name: "dus", Description: "large carton"},
	} {
		existing, err := unitRepo.GetByName(u.Name)
		if err != nil {
			log.Fatal().Err(err).Str("unit", u.Name).Msg("lookup unit")
		}
		if existing != nil {
			units[u.Name] = existing.ID
			continue
		}
		created, err := unitUC.Create(u)
		if err != nil {
			log.Fatal().Err(err).Str("unit", u.Name).Msg("seed unit")
		}
		units[u.Name] = created.ID
		log.Info().Str("unit", u.Name).Msg("unit created")
	}

	categories := map[string]string{}
	for _, name := range []string{"Makanan", "Minuman", "Rokok"} {
		id, err := ensureCategory(categoryUC, name)
		if err != nil {
			log.Fatal().Err(err).Str("category", name).Msg("seed category")
		}
		categories[name] = id
	}

	existing, err := productRepo.GetByCode("INDOMIE-001")
	if err != nil {
		log.Fatal().Err(err).Msg("lookup product")
	}
	if existing != nil {
		log.Info().Msg("sample product already present, done")
		return
	}

	product, err := productUC.Create(ctx, dto.CreateProductRequest{
		Code:          "INDOMIE-001",
		Name:          "Indomie Goreng",
		Description:   "Instant fried noodles",
		CategoryID:    categories["Makanan"],
		UnitID:        units["pcs"],
		PurchasePrice: decimal.NewFromInt(2500),
		SalePrice:     decimal.NewFromInt(3000),
		MinimumStock:  decimal.NewFromInt(40),
		Location:      "Rak A1",
		Barcode:       "089686010947",
		ConversionRules: []dto.ConversionRuleInput{
			{FromUnitID: units["dus"], ToUnitID: units["pcs"], Factor: decimal.NewFromInt(80)},
			{FromUnitID: units["box"], ToUnitID: units["pcs"], Factor: decimal.NewFromInt(10)},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed product")
	}

	// Initial stock goes through the ledger so history starts with an entry.
	out, err := ledgerUC.ApplyMutation(ctx, product.ID, dto.StockMutationRequest{
		Kind:      "inbound",
		Amount:    decimal.NewFromInt(800),
		Note:      "initial stock",
		Reference: "SEED",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed initial stock")
	}

	log.Info().
		Str("product", product.Code).
		Str("stock", out.StockAfter.String()).
		Msg("seed complete")
}

func ensureCategory(uc *usecase.CategoryUseCase, name string) (string, error) {
	list, err := uc.List()
	if err != nil {
		return "", err
	}
	for _, c := range list.Items {
		if c.Name == name {
			return c.ID, nil
		}
	}
	created, err := uc.Create(dto.CreateCategoryRequest{Name: name})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
