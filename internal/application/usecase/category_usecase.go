package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/gudangku/gudang-api/internal/application/dto"
	"github.com/gudangku/gudang-api/internal/domain"
	"github.com/gudangku/gudang-api/internal/domain/entity"
	"github.com/gudangku/gudang-api/internal/domain/repository"
)

// CategoryUseCase CRUD for product categories. Deleting a category that
// still has products fails with ErrConflict.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase builds the use case.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create creates a category. Name must be unique.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category, 0), nil
}

// GetByID returns a category with its product summaries, or nil when it does
// not exist.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	products, err := uc.repo.ListProducts(id)
	if err != nil {
		return nil, err
	}
	out := toCategoryResponse(category, len(products))
	out.Products = make([]dto.CategoryProductSummary, 0, len(products))
	for _, p := range products {
		out.Products = append(out.Products, dto.CategoryProductSummary{
			ID:       p.ID,
			Code:     p.Code,
			Name:     p.Name,
			Stock:    p.Stock,
			UnitName: p.UnitName,
		})
	}
	return out, nil
}

// List returns all categories ordered by name, each with its product count.
func (uc *CategoryUseCase) List() (*dto.CategoryListResponse, error) {
	summaries, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(summaries))
	for _, s := range summaries {
		c := s.Category
		items = append(items, *toCategoryResponse(&c, s.ProductCount))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Update patches a category.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil {
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	count, err := uc.repo.CountProducts(id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category, count), nil
}

// Delete removes a category. Fails with ErrConflict while products still
// reference it.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category, productCount int) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: productCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
