package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangku/gudang-api/internal/application/dto"
	"github.com/gudangku/gudang-api/internal/application/usecase"
	"github.com/gudangku/gudang-api/internal/domain"
)

func TestUnitRename_RefusedWhileReferenced(t *testing.T) {
	productUC, db := newProductFixture()
	uc := usecase.NewUnitUseCase(&memUnitRepo{db: db})

	_, err := productUC.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// pcs is the product's base unit and a rule target: rename refused.
	name := "pieces"
	_, err = uc.Update(unitPcs, dto.UpdateUnitRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Description stays editable on a referenced unit.
	desc := "satuan terkecil"
	out, err := uc.Update(unitPcs, dto.UpdateUnitRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, out.Description)
	assert.Equal(t, "pcs", out.Name)
}

func TestUnitDelete_RefusedWhileReferenced(t *testing.T) {
	productUC, db := newProductFixture()
	uc := usecase.NewUnitUseCase(&memUnitRepo{db: db})

	_, err := productUC.Create(context.Background(), createRequest())
	require.NoError(t, err)

	// dus only appears as a conversion-rule source, still a reference.
	assert.ErrorIs(t, uc.Delete(unitDus), domain.ErrConflict)
}

func TestUnitCRUD(t *testing.T) {
	db := newMemDB()
	uc := usecase.NewUnitUseCase(&memUnitRepo{db: db})

	created, err := uc.Create(dto.CreateUnitRequest{Name: "pack", Description: "Pack"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateUnitRequest{Name: "pack"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	name := "renteng"
	out, err := uc.Update(created.ID, dto.UpdateUnitRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renteng", out.Name)

	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.Delete(created.ID))
	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrNotFound)
}
