package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gudangku/gudang-api/internal/domain"
	"github.com/gudangku/gudang-api/internal/domain/entity"
	"github.com/gudangku/gudang-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implements UnitRepository over PostgreSQL (pool or tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository builds the persistence adapter for units.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persists a new unit.
func (r *UnitRepo) Create(unit *entity.Unit) error {
	query := `
		INSERT INTO units (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.Description, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID returns a unit by ID, nil when missing.
func (r *UnitRepo) GetByID(id string) (*entity.Unit, error) {
	return r.get(`SELECT id, name, description, created_at, updated_at FROM units WHERE id = $1`, id)
}

// GetByName returns a unit by its unique name, nil when missing.
func (r *UnitRepo) GetByName(name string) (*entity.Unit, error) {
	return r.get(`SELECT id, name, description, created_at, updated_at FROM units WHERE name = $1`, name)
}

func (r *UnitRepo) get(query string, arg any) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Name, &u.Description, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// List returns all units ordered by name.
func (r *UnitRepo) List() ([]*entity.Unit, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, created_at, updated_at FROM units ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Description, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update updates name and description.
func (r *UnitRepo) Update(unit *entity.Unit) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE units SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		unit.ID, unit.Name, unit.Description, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// CountReferences counts products using the unit as base unit plus
// conversion rules touching it from either side.
func (r *UnitRepo) CountReferences(id string) (int, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM products WHERE unit_id = $1)
		     + (SELECT COUNT(*) FROM conversion_rules WHERE from_unit_id = $1 OR to_unit_id = $1)`
	var count int
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unit references: %w", err)
	}
	return count, nil
}

// Delete removes a unit by ID.
func (r *UnitRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}
