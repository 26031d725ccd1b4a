package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/domain"
	"github.com/gudangku/gudang-api/internal/domain/entity"
	"github.com/gudangku/gudang-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository over PostgreSQL (pool or tx).
// Reads resolve category and unit names; conversion rules are loaded per
// product, ordered by factor descending.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter for products.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id, p.code, p.name, p.description, p.category_id, p.unit_id,
	p.purchase_price, p.sale_price, p.minimum_stock, p.stock,
	p.location, p.barcode, p.image, p.active, p.created_at, p.updated_at,
	c.name, u.name`

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, description, category_id, unit_id,
			purchase_price, sale_price, minimum_stock, stock,
			location, barcode, image, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description,
		product.CategoryID, product.UnitID,
		product.PurchasePrice, product.SalePrice, product.MinimumStock, product.Stock,
		product.Location, product.Barcode, product.Image, product.Active,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID returns a product with resolved names and rules, nil when missing.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN units u ON u.id = p.unit_id
		WHERE p.id = $1`
	return r.getOne(query, id)
}

// GetByCode returns a product by its unique code, nil when missing.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN units u ON u.id = p.unit_id
		WHERE p.code = $1`
	return r.getOne(query, code)
}

func (r *ProductRepo) getOne(query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID, &p.UnitID,
		&p.PurchasePrice, &p.SalePrice, &p.MinimumStock, &p.Stock,
		&p.Location, &p.Barcode, &p.Image, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.UnitName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	rules, err := r.loadRules([]string{p.ID})
	if err != nil {
		return nil, err
	}
	p.ConversionRules = rules[p.ID]
	return &p, nil
}

// GetForUpdate locks the product row (SELECT FOR UPDATE) for the duration of
// the surrounding transaction. No joins, no rules: stock mutations only need
// the quantity.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `
		SELECT id, code, name, description, category_id, unit_id,
		       purchase_price, sale_price, minimum_stock, stock,
		       location, barcode, image, active, created_at, updated_at
		FROM products WHERE id = $1
		FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID, &p.UnitID,
		&p.PurchasePrice, &p.SalePrice, &p.MinimumStock, &p.Stock,
		&p.Location, &p.Barcode, &p.Image, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return &p, nil
}

// List returns products matching the filter, ordered by name, with resolved
// names and rules.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN units u ON u.id = p.unit_id
		WHERE 1=1`
	var args []any
	pos := 1
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND p.category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	if filter.Active != nil {
		query += fmt.Sprintf(" AND p.active = $%d", pos)
		args = append(args, *filter.Active)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.code ILIKE $%d OR p.barcode ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	query += " ORDER BY p.name ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	var ids []string
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID, &p.UnitID,
			&p.PurchasePrice, &p.SalePrice, &p.MinimumStock, &p.Stock,
			&p.Location, &p.Barcode, &p.Image, &p.Active, &p.CreatedAt, &p.UpdatedAt,
			&p.CategoryName, &p.UnitName,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	rulesByProduct, err := r.loadRules(ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.ConversionRules = rulesByProduct[p.ID]
	}
	return list, nil
}

// loadRules fetches conversion rules for the given products, factor
// descending, with resolved unit names.
func (r *ProductRepo) loadRules(productIDs []string) (map[string][]entity.ConversionRule, error) {
	query := `
		SELECT cr.id, cr.product_id, cr.from_unit_id, cr.to_unit_id, cr.factor,
		       cr.purchase_price, cr.sale_price, uf.name, ut.name
		FROM conversion_rules cr
		JOIN units uf ON uf.id = cr.from_unit_id
		JOIN units ut ON ut.id = cr.to_unit_id
		WHERE cr.product_id = ANY($1)
		ORDER BY cr.factor DESC`
	rows, err := r.q.Query(context.Background(), query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load conversion rules: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.ConversionRule)
	for rows.Next() {
		var rule entity.ConversionRule
		if err := rows.Scan(
			&rule.ID, &rule.ProductID, &rule.FromUnitID, &rule.ToUnitID, &rule.Factor,
			&rule.PurchasePrice, &rule.SalePrice, &rule.FromUnitName, &rule.ToUnitName,
		); err != nil {
			return nil, fmt.Errorf("scan conversion rule: %w", err)
		}
		out[rule.ProductID] = append(out[rule.ProductID], rule)
	}
	return out, rows.Err()
}

// Update updates product fields. Stock is excluded on purpose: it only moves
// through UpdateStock inside a ledger transaction.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, category_id = $5,
			unit_id = $6, purchase_price = $7, sale_price = $8, minimum_stock = $9,
			location = $10, barcode = $11, image = $12, active = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.CategoryID,
		product.UnitID, product.PurchasePrice, product.SalePrice, product.MinimumStock,
		product.Location, product.Barcode, product.Image, product.Active, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock sets the base-unit stock quantity (ledger transactions only).
func (r *ProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// ReplaceConversionRules deletes the product's rule set and inserts the new
// one. Callers run this inside a transaction together with the product write.
func (r *ProductRepo) ReplaceConversionRules(productID string, rules []entity.ConversionRule) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM conversion_rules WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete conversion rules: %w", err)
	}
	for _, rule := range rules {
		_, err := r.q.Exec(ctx, `
			INSERT INTO conversion_rules (id, product_id, from_unit_id, to_unit_id, factor, purchase_price, sale_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rule.ID, productID, rule.FromUnitID, rule.ToUnitID, rule.Factor,
			rule.PurchasePrice, rule.SalePrice,
		)
		if err != nil {
			return fmt.Errorf("insert conversion rule: %w", err)
		}
	}
	return nil
}

// Delete removes a product. Conversion rules and ledger entries cascade at
// the schema level.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
