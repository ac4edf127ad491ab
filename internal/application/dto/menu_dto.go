package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemRequest entrada de creación y de actualización completa de un ítem.
// En update todos los campos se sobrescriben con el valor recibido, incluso los vacíos.
type ItemRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description" validate:"max=2000"`
	ImagePath    *string         `json:"imagePath" validate:"omitempty,max=1024"`
	Price        decimal.Decimal `json:"price"`
	Available    bool            `json:"available"`
	GlutenFree   bool            `json:"glutenFree"`
	DietType     string          `json:"dietType" validate:"omitempty,oneof=vegan vegetarian neither"`
	Allergens    string          `json:"allergens" validate:"max=500"`
	CategoryName string          `json:"categoryName" validate:"required,max=100"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImagePath    *string         `json:"imagePath"`
	Price        decimal.Decimal `json:"price"`
	Available    bool            `json:"available"`
	GlutenFree   bool            `json:"glutenFree"`
	DietType     string          `json:"dietType"`
	Allergens    string          `json:"allergens"`
	CategoryName string          `json:"categoryName"`
}

// ToCategoryResponse mapea la entidad.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID.Hex(), Name: c.Name}
}

// ToItemResponse mapea la entidad.
func ToItemResponse(it *entity.Item) *ItemResponse {
	if it == nil {
		return nil
	}
	return &ItemResponse{
		ID:           it.ID.Hex(),
		Name:         it.Name,
		Description:  it.Description,
		ImagePath:    it.ImagePath,
		Price:        it.Price,
		Available:    it.Available,
		GlutenFree:   it.GlutenFree,
		DietType:     string(it.DietType),
		Allergens:    it.Allergens,
		CategoryName: it.CategoryName,
	}
}
