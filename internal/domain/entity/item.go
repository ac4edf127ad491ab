package entity

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietType clasificación dietaria de un ítem.
type DietType string

const (
	DietVegan      DietType = "vegan"
	DietVegetarian DietType = "vegetarian"
	DietNeither    DietType = "neither"
)

// ParseDietType normaliza el tipo de dieta; vacío equivale a "neither".
func ParseDietType(s string) (DietType, bool) {
	switch DietType(s) {
	case "", DietNeither:
		return DietNeither, true
	case DietVegan, DietVegetarian:
		return DietType(s), true
	default:
		return "", false
	}
}

// Item representa un plato o bebida del menú.
// CategoryName es una referencia blanda: no se valida contra Categories.
type Item struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	ImagePath    *string            `bson:"imagepath"`
	Price        decimal.Decimal    `bson:"price"`
	Available    bool               `bson:"available"`
	GlutenFree   bool               `bson:"glutenfree"`
	DietType     DietType           `bson:"diettype"`
	Allergens    string             `bson:"allergens"`
	CategoryName string             `bson:"categoryname"`
}

// Campos persistidos de Item (nombres bson), usados en filtros, orden y actualizaciones.
const (
	ItemFieldName         = "name"
	ItemFieldDescription  = "description"
	ItemFieldImagePath    = "imagepath"
	ItemFieldPrice        = "price"
	ItemFieldAvailable    = "available"
	ItemFieldGlutenFree   = "glutenfree"
	ItemFieldDietType     = "diettype"
	ItemFieldAllergens    = "allergens"
	ItemFieldCategoryName = "categoryname"
)
