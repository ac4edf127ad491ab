// Package memory implementa el almacén de documentos en memoria del proceso.
// Los documentos pasan por el mismo registro BSON que MongoDB, así que filtros,
// conteos de coincidencias/modificaciones y orden se comportan igual que en el almacén real.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/beanscene-api/internal/domain"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/codec"
)

var _ repository.Collection[struct{}] = (*Collection[struct{}])(nil)

// Collection colección genérica en memoria. Segura para uso concurrente.
type Collection[T any] struct {
	mu     sync.RWMutex
	docs   []bson.M
	unique []string
}

// NewCollection construye una colección; unique lista campos con índice único.
func NewCollection[T any](unique ...string) *Collection[T] {
	return &Collection[T]{unique: unique}
}

// Find devuelve los documentos que cumplen el filtro, ordenados por sort (orden de inserción si no hay sort).
func (c *Collection[T]) Find(ctx context.Context, filter repository.Filter, sort ...repository.Sort) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	c.mu.RLock()
	matched := make([]bson.M, 0, len(c.docs))
	for _, d := range c.docs {
		if matches(d, filter) {
			matched = append(matched, d)
		}
	}
	c.mu.RUnlock()

	if len(sort) > 0 {
		slices.SortStableFunc(matched, func(a, b bson.M) int {
			for _, s := range sort {
				r := compareValues(a[s.Field], b[s.Field])
				if s.Desc {
					r = -r
				}
				if r != 0 {
					return r
				}
			}
			return 0
		})
	}

	list := make([]*T, 0, len(matched))
	for _, d := range matched {
		doc, err := decode[T](d)
		if err != nil {
			return nil, err
		}
		list = append(list, doc)
	}
	return list, nil
}

// FindOne devuelve el primer documento que cumple el filtro o nil.
func (c *Collection[T]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.docs {
		if matches(d, filter) {
			return decode[T](d)
		}
	}
	return nil, nil
}

// FindByID busca por identificador primario.
func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, repository.ByID(id))
}

// InsertOne agrega el documento. El documento debe traer su _id asignado.
func (c *Collection[T]) InsertOne(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	m, err := encode(doc)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(m[repository.FieldID]) >= 0 {
		return domain.ErrDuplicate
	}
	if c.violatesUnique(m, -1) {
		return domain.ErrDuplicate
	}
	c.docs = append(c.docs, m)
	return nil
}

// UpdateByID aplica $set; Modified es 0 cuando todos los campos ya tenían ese valor.
func (c *Collection[T]) UpdateByID(ctx context.Context, id primitive.ObjectID, set repository.Fields) (repository.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return repository.UpdateResult{}, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	normalized, err := encode(bson.M(set))
	if err != nil {
		return repository.UpdateResult{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return repository.UpdateResult{}, nil
	}
	current := c.docs[i]
	next := make(bson.M, len(current))
	for k, v := range current {
		next[k] = v
	}
	changed := false
	for k, v := range normalized {
		if !reflect.DeepEqual(current[k], v) {
			changed = true
		}
		next[k] = v
	}
	if !changed {
		return repository.UpdateResult{Matched: 1}, nil
	}
	if c.violatesUnique(next, i) {
		return repository.UpdateResult{}, domain.ErrDuplicate
	}
	c.docs[i] = next
	return repository.UpdateResult{Matched: 1, Modified: 1}, nil
}

// DeleteByID elimina por identificador; devuelve 0 si no existía.
func (c *Collection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	c.docs = slices.Delete(c.docs, i, i+1)
	return 1, nil
}

func (c *Collection[T]) indexOf(id any) int {
	for i, d := range c.docs {
		if reflect.DeepEqual(d[repository.FieldID], id) {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) violatesUnique(m bson.M, skip int) bool {
	for _, field := range c.unique {
		v, ok := m[field]
		if !ok {
			continue
		}
		for i, d := range c.docs {
			if i != skip && reflect.DeepEqual(d[field], v) {
				return true
			}
		}
	}
	return false
}

func matches(d bson.M, filter repository.Filter) bool {
	for k, v := range filter {
		if !reflect.DeepEqual(d[k], v) {
			return false
		}
	}
	return true
}

// compareValues orden binario como el de MongoDB para los tipos que se usan al ordenar.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case int32:
		if bv, ok := b.(int32); ok {
			return cmp.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok && av != bv {
			if av {
				return 1
			}
			return -1
		}
		return 0
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	if b == nil {
		return 1
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func encode(doc any) (bson.M, error) {
	raw, err := codec.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("memory: codificar documento: %w", err)
	}
	var m bson.M
	if err := codec.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("memory: normalizar documento: %w", err)
	}
	return m, nil
}

func decode[T any](m bson.M) (*T, error) {
	raw, err := codec.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("memory: codificar documento: %w", err)
	}
	var doc T
	if err := codec.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("memory: decodificar documento: %w", err)
	}
	return &doc, nil
}
