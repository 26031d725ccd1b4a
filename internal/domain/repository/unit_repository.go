package repository

import "github.com/gudangku/gudang-api/internal/domain/entity"

// UnitRepository defines the persistence port for Unit.
// CountReferences counts products using the unit as base unit plus conversion
// rules pointing at it from either side; a referenced unit cannot be renamed
// or deleted.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	GetByName(name string) (*entity.Unit, error)
	List() ([]*entity.Unit, error)
	Update(unit *entity.Unit) error
	CountReferences(id string) (int, error)
	Delete(id string) error
}
