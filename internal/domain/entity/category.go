package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category agrupa los ítems del menú. Los ítems la referencian por Name, no por ID:
// renombrar una categoría no se propaga a los ítems.
type Category struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// Campos persistidos de Category.
const CategoryFieldName = "name"
