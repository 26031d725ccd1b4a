package usecase_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gudangku/gudang-api/internal/domain"
	"github.com/gudangku/gudang-api/internal/domain/entity"
	"github.com/gudangku/gudang-api/internal/domain/repository"
)

// memDB is the shared in-memory store behind the repository fakes. Reference
// counts are computed from the live product data, the same way the SQL
// implementations count rows.
type memDB struct {
	units      map[string]*entity.Unit
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	ledger     []*entity.LedgerEntry
}

func newMemDB() *memDB {
	return &memDB{
		units:      make(map[string]*entity.Unit),
		categories: make(map[string]*entity.Category),
		products:   make(map[string]*entity.Product),
	}
}

func (db *memDB) addUnit(id, name string) *entity.Unit {
	u := &entity.Unit{ID: id, Name: name}
	db.units[id] = u
	return u
}

func (db *memDB) addCategory(id, name string) *entity.Category {
	c := &entity.Category{ID: id, Name: name}
	db.categories[id] = c
	return c
}

type memUnitRepo struct{ db *memDB }

func (r *memUnitRepo) Create(u *entity.Unit) error {
	for _, existing := range r.db.units {
		if existing.Name == u.Name {
			return domain.ErrDuplicate
		}
	}
	r.db.units[u.ID] = u
	return nil
}

func (r *memUnitRepo) GetByID(id string) (*entity.Unit, error) {
	u, ok := r.db.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUnitRepo) GetByName(name string) (*entity.Unit, error) {
	for _, u := range r.db.units {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUnitRepo) List() ([]*entity.Unit, error) {
	out := make([]*entity.Unit, 0, len(r.db.units))
	for _, u := range r.db.units {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memUnitRepo) Update(u *entity.Unit) error { r.db.units[u.ID] = u; return nil }

func (r *memUnitRepo) CountReferences(id string) (int, error) {
	n := 0
	for _, p := range r.db.products {
		if p.UnitID == id {
			n++
		}
		for _, rule := range p.ConversionRules {
			if rule.FromUnitID == id || rule.ToUnitID == id {
				n++
			}
		}
	}
	return n, nil
}

func (r *memUnitRepo) Delete(id string) error { delete(r.db.units, id); return nil }

type memCategoryRepo struct{ db *memDB }

func (r *memCategoryRepo) Create(c *entity.Category) error {
	for _, existing := range r.db.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	r.db.categories[c.ID] = c
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) List() ([]repository.CategorySummary, error) {
	out := make([]repository.CategorySummary, 0, len(r.db.categories))
	for id, c := range r.db.categories {
		count, _ := r.CountProducts(id)
		out = append(out, repository.CategorySummary{Category: *c, ProductCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category.Name < out[j].Category.Name })
	return out, nil
}

func (r *memCategoryRepo) ListProducts(categoryID string) ([]repository.ProductSummary, error) {
	var out []repository.ProductSummary
	for _, p := range r.db.products {
		if p.CategoryID == categoryID {
			out = append(out, repository.ProductSummary{
				ID: p.ID, Code: p.Code, Name: p.Name, Stock: p.Stock, UnitName: p.UnitName,
			})
		}
	}
	return out, nil
}

func (r *memCategoryRepo) CountProducts(categoryID string) (int, error) {
	n := 0
	for _, p := range r.db.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error { r.db.categories[c.ID] = c; return nil }

func (r *memCategoryRepo) Delete(id string) error { delete(r.db.categories, id); return nil }

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.db.products {
		if existing.Code == p.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.resolveNames(&cp)
	r.db.products[p.ID] = &cp
	return nil
}

// resolveNames mimics the SQL joins that fill display names on reads.
func (r *memProductRepo) resolveNames(p *entity.Product) {
	if c, ok := r.db.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	if u, ok := r.db.units[p.UnitID]; ok {
		p.UnitName = u.Name
	}
	for i := range p.ConversionRules {
		if u, ok := r.db.units[p.ConversionRules[i].FromUnitID]; ok {
			p.ConversionRules[i].FromUnitName = u.Name
		}
		if u, ok := r.db.units[p.ConversionRules[i].ToUnitID]; ok {
			p.ConversionRules[i].ToUnitName = u.Name
		}
	}
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.ConversionRules = append([]entity.ConversionRule(nil), p.ConversionRules...)
	r.resolveNames(&cp)
	return &cp, nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.db.products {
		if p.Code == code {
			return r.GetByID(p.ID)
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.db.products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		cp, _ := r.GetByID(p.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	stored, ok := r.db.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rules := stored.ConversionRules
	cp := *p
	cp.ConversionRules = rules
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id string, qty decimal.Decimal) error {
	p, ok := r.db.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = qty
	return nil
}

func (r *memProductRepo) ReplaceConversionRules(id string, rules []entity.ConversionRule) error {
	p, ok := r.db.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ConversionRules = append([]entity.ConversionRule(nil), rules...)
	return nil
}

func (r *memProductRepo) Delete(id string) error { delete(r.db.products, id); return nil }

type memLedgerRepo struct{ db *memDB }

func (r *memLedgerRepo) Append(e *entity.LedgerEntry) error {
	r.db.ledger = append(r.db.ledger, e)
	return nil
}

func (r *memLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var all []*entity.LedgerEntry
	for i := len(r.db.ledger) - 1; i >= 0; i-- {
		if r.db.ledger[i].ProductID == productID {
			all = append(all, r.db.ledger[i])
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
	for _, e := range r.db.ledger {
		if e.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func productFilter(categoryID string, active *bool) repository.ProductFilter {
	return repository.ProductFilter{CategoryID: categoryID, Active: active}
}

type memTxRunner struct{ db *memDB }

func (t *memTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.LedgerRepository) error) error {
	return fn(&memProductRepo{db: t.db}, &memLedgerRepo{db: t.db})
}
