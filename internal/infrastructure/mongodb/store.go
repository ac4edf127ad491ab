package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store almacén de documentos sobre una base MongoDB.
type Store struct {
	client     *mongo.Client
	db         *mongo.Database
	categories *Collection[entity.Category]
	items      *Collection[entity.Item]
	staff      *Collection[entity.Staff]
	orders     *Collection[entity.Order]
}

// NewStore construye el almacén sobre la base indicada.
func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:     client,
		db:         db,
		categories: NewCollection[entity.Category](db.Collection(repository.CollectionCategories)),
		items:      NewCollection[entity.Item](db.Collection(repository.CollectionItems)),
		staff:      NewCollection[entity.Staff](db.Collection(repository.CollectionStaff)),
		orders:     NewCollection[entity.Order](db.Collection(repository.CollectionOrders)),
	}
}

func (s *Store) Categories() repository.Collection[entity.Category] { return s.categories }
func (s *Store) Items() repository.Collection[entity.Item]           { return s.items }
func (s *Store) Staff() repository.Collection[entity.Staff]          { return s.staff }
func (s *Store) Orders() repository.Collection[entity.Order]         { return s.orders }

// EnsureIndexes crea los índices únicos (username, nombre de categoría) y los de orden de listados.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		repository.CollectionStaff: {{
			Keys:    bson.D{{Key: entity.StaffFieldUsername, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("staff_username_unique"),
		}},
		repository.CollectionCategories: {{
			Keys:    bson.D{{Key: entity.CategoryFieldName, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("categories_name_unique"),
		}},
		repository.CollectionItems: {{
			Keys:    bson.D{{Key: entity.ItemFieldCategoryName, Value: 1}, {Key: entity.ItemFieldName, Value: 1}},
			Options: options.Index().SetName("items_menu_order"),
		}},
		repository.CollectionOrders: {{
			Keys:    bson.D{{Key: entity.OrderFieldDateTime, Value: -1}},
			Options: options.Index().SetName("orders_datetime_desc"),
		}},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("crear índices de %s: %w", name, err)
		}
	}
	return nil
}

// Ping verifica la conexión con el primario.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close cierra el pool del cliente.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
