package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/beanscene-api/internal/domain"
)

// FieldID nombre del campo identificador primario en todas las colecciones.
const FieldID = "_id"

// Filter igualdad sobre campos del documento (nombres bson). Vacío selecciona toda la colección.
type Filter map[string]any

// ByID filtro por identificador primario.
func ByID(id primitive.ObjectID) Filter {
	return Filter{FieldID: id}
}

// Sort criterio de orden sobre un campo.
type Sort struct {
	Field string
	Desc  bool
}

// Asc orden ascendente.
func Asc(field string) Sort { return Sort{Field: field} }

// Desc orden descendente.
func Desc(field string) Sort { return Sort{Field: field, Desc: true} }

// Fields conjunto de campos a sobrescribir (semántica $set, sin merge profundo).
type Fields map[string]any

// UpdateResult conteos reportados por el almacén para una actualización.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Outcome traduce los conteos: sin coincidencias es ErrNotFound; coincidencia sin cambios es NoChange.
func (r UpdateResult) Outcome() (domain.UpdateOutcome, error) {
	if r.Matched == 0 {
		return "", domain.ErrNotFound
	}
	if r.Modified == 0 {
		return domain.OutcomeNoChange, nil
	}
	return domain.OutcomeUpdated, nil
}

// Collection puerto genérico de persistencia sobre una colección de documentos (DIP).
// FindOne y FindByID devuelven (nil, nil) cuando no hay documento.
// Los errores de conectividad o timeout se envuelven con domain.ErrUnavailable y
// las violaciones de unicidad se reportan como domain.ErrDuplicate.
type Collection[T any] interface {
	Find(ctx context.Context, filter Filter, sort ...Sort) ([]*T, error)
	FindOne(ctx context.Context, filter Filter) (*T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	InsertOne(ctx context.Context, doc *T) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, set Fields) (UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}
