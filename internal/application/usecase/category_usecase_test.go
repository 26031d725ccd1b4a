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

func TestCategoryDelete_RefusedWhileReferenced(t *testing.T) {
	productUC, db := newProductFixture()
	uc := usecase.NewCategoryUseCase(&memCategoryRepo{db: db})

	_, err := productUC.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(catFood), domain.ErrConflict)

	// Empty category deletes fine.
	require.NoError(t, uc.Delete(catDrink))
	assert.ErrorIs(t, uc.Delete(catDrink), domain.ErrNotFound)
}

func TestCategoryList_CarriesProductCounts(t *testing.T) {
	productUC, db := newProductFixture()
	uc := usecase.NewCategoryUseCase(&memCategoryRepo{db: db})

	_, err := productUC.Create(context.Background(), createRequest())
	require.NoError(t, err)

	out, err := uc.List()
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	// Ordered by name: Makanan before Minuman.
	assert.Equal(t, "Makanan", out.Items[0].Name)
	assert.Equal(t, 1, out.Items[0].ProductCount)
	assert.Equal(t, 0, out.Items[1].ProductCount)
}

func TestCategoryGetByID_EmbedsProducts(t *testing.T) {
	productUC, db := newProductFixture()
	uc := usecase.NewCategoryUseCase(&memCategoryRepo{db: db})

	_, err := productUC.Create(context.Background(), createRequest())
	require.NoError(t, err)

	out, err := uc.GetByID(catFood)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "INDOMIE-001", out.Products[0].Code)
	assert.Equal(t, "pcs", out.Products[0].UnitName)

	missing, err := uc.GetByID("66666666-6666-4666-8666-666666666666")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryCreateUpdate(t *testing.T) {
	db := newMemDB()
	uc := usecase.NewCategoryUseCase(&memCategoryRepo{db: db})

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Rokok"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Rokok"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	desc := "Produk rokok"
	out, err := uc.Update(created.ID, dto.UpdateCategoryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, out.Description)
	assert.Equal(t, "Rokok", out.Name)
}
