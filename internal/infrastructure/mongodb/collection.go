package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

var _ repository.Collection[struct{}] = (*Collection[struct{}])(nil)

// Collection implementación genérica del puerto Collection sobre una colección MongoDB.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection envuelve una colección del driver.
func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

// Find lista documentos por filtro de igualdad y orden opcional.
func (c *Collection[T]) Find(ctx context.Context, filter repository.Filter, sort ...repository.Sort) ([]*T, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sortDoc(sort))
	}
	cur, err := c.coll.Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, c.wrap("find", err)
	}
	defer cur.Close(ctx)

	var list []*T
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", c.coll.Name(), err)
		}
		list = append(list, &doc)
	}
	if err := cur.Err(); err != nil {
		return nil, c.wrap("cursor", err)
	}
	return list, nil
}

// FindOne devuelve el primer documento o nil si no existe.
func (c *Collection[T]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, toBSON(filter)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, c.wrap("find one", err)
	}
	return &doc, nil
}

// FindByID busca por _id.
func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, repository.ByID(id))
}

// InsertOne persiste el documento con su _id ya asignado.
func (c *Collection[T]) InsertOne(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return c.wrap("insert", err)
	}
	return nil
}

// UpdateByID aplica $set sobre los campos indicados.
func (c *Collection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set repository.Fields) (repository.UpdateResult, error) {
	res, err := c.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M(set)})
	if err != nil {
		return repository.UpdateResult{}, c.wrap("update", err)
	}
	return repository.UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// DeleteByID elimina por _id y devuelve la cantidad eliminada (0 si no existía).
func (c *Collection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{repository.FieldID: id})
	if err != nil {
		return 0, c.wrap("delete", err)
	}
	return res.DeletedCount, nil
}

// wrap traduce errores del driver a la taxonomía de dominio.
func (c *Collection[T]) wrap(op string, err error) error {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrDuplicate
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsTimeout(err),
		mongo.IsNetworkError(err):
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, op, c.coll.Name(), err)
	default:
		return fmt.Errorf("%s %s: %w", op, c.coll.Name(), err)
	}
}

func toBSON(filter repository.Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

func sortDoc(sort []repository.Sort) bson.D {
	d := make(bson.D, 0, len(sort))
	for _, s := range sort {
		dir := 1
		if s.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: s.Field, Value: dir})
	}
	return d
}
