package domain

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID convierte la representación hexadecimal (24 caracteres) en un ObjectID.
// Un identificador mal formado es un error del cliente (ErrInvalidID), nunca del servidor.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// NewID genera un identificador nuevo.
func NewID() primitive.ObjectID {
	return primitive.NewObjectID()
}
