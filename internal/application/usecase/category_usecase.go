package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/beanscene-api/internal/application/dto"
	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías del menú.
type CategoryUseCase struct {
	repo repository.Collection[entity.Category]
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.Collection[entity.Category]) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.Find(ctx, nil, repository.Asc(entity.CategoryFieldName))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *dto.ToCategoryResponse(c))
	}
	return out, nil
}

// Create crea una categoría. El nombre es único (ErrDuplicate).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category := &entity.Category{ID: domain.NewID(), Name: in.Name}
	if err := uc.repo.InsertOne(ctx, category); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(category), nil
}

// Delete elimina por ID. Un ID inexistente no es error: devuelve 0 eliminados.
// Los ítems que referencian la categoría por nombre no se modifican.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := domain.ParseID(id)
	if err != nil {
		return 0, err
	}
	return uc.repo.DeleteByID(ctx, oid)
}
