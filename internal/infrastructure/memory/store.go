package memory

import (
	"context"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store almacén en memoria con las cuatro colecciones y los mismos índices únicos que MongoDB.
type Store struct {
	categories *Collection[entity.Category]
	items      *Collection[entity.Item]
	staff      *Collection[entity.Staff]
	orders     *Collection[entity.Order]
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: NewCollection[entity.Category](entity.CategoryFieldName),
		items:      NewCollection[entity.Item](),
		staff:      NewCollection[entity.Staff](entity.StaffFieldUsername),
		orders:     NewCollection[entity.Order](),
	}
}

func (s *Store) Categories() repository.Collection[entity.Category] { return s.categories }
func (s *Store) Items() repository.Collection[entity.Item]           { return s.items }
func (s *Store) Staff() repository.Collection[entity.Staff]          { return s.staff }
func (s *Store) Orders() repository.Collection[entity.Order]         { return s.orders }

// Ping siempre disponible.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Close no libera nada.
func (s *Store) Close(context.Context) error { return nil }
