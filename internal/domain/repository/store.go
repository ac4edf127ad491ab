package repository

import (
	"context"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
)

// Nombres de las colecciones.
const (
	CollectionCategories = "Categories"
	CollectionItems      = "Items"
	CollectionStaff      = "Staff"
	CollectionOrders     = "Orders"
)

// Store agrupa las colecciones del sistema sobre un único almacén lógico.
// La conexión es compartida por todo el proceso y segura para uso concurrente.
type Store interface {
	Categories() Collection[entity.Category]
	Items() Collection[entity.Item]
	Staff() Collection[entity.Staff]
	Orders() Collection[entity.Order]
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
