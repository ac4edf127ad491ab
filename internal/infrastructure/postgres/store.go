package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// schemaLockKey clave del advisory lock que serializa EnsureSchema entre réplicas que arrancan a la vez.
const schemaLockKey = 7_101_984

// Tablas del almacén documental (una por colección).
const (
	tableCategories = "categories"
	tableItems      = "items"
	tableStaff      = "staff"
	tableOrders     = "orders"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS categories (id TEXT PRIMARY KEY, seq BIGSERIAL, doc JSONB NOT NULL);
CREATE TABLE IF NOT EXISTS items      (id TEXT PRIMARY KEY, seq BIGSERIAL, doc JSONB NOT NULL);
CREATE TABLE IF NOT EXISTS staff      (id TEXT PRIMARY KEY, seq BIGSERIAL, doc JSONB NOT NULL);
CREATE TABLE IF NOT EXISTS orders     (id TEXT PRIMARY KEY, seq BIGSERIAL, doc JSONB NOT NULL);
CREATE UNIQUE INDEX IF NOT EXISTS categories_name_unique ON categories ((doc->>'name'));
CREATE UNIQUE INDEX IF NOT EXISTS staff_username_unique ON staff ((doc->>'username'));
CREATE INDEX IF NOT EXISTS items_menu_order ON items ((doc->>'categoryname') COLLATE "C", (doc->>'name') COLLATE "C");
CREATE INDEX IF NOT EXISTS orders_datetime_desc ON orders ((doc->>'datetime') COLLATE "C" DESC);
`

// Store almacén de documentos sobre PostgreSQL (JSONB).
type Store struct {
	pool       *pgxpool.Pool
	tx         *TxRunner
	categories *DocumentCollection[entity.Category]
	items      *DocumentCollection[entity.Item]
	staff      *DocumentCollection[entity.Staff]
	orders     *DocumentCollection[entity.Order]
}

// NewStore construye el almacén sobre el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:       pool,
		tx:         NewTxRunner(pool),
		categories: NewDocumentCollection[entity.Category](pool, tableCategories),
		items:      NewDocumentCollection[entity.Item](pool, tableItems),
		staff:      NewDocumentCollection[entity.Staff](pool, tableStaff),
		orders:     NewDocumentCollection[entity.Order](pool, tableOrders),
	}
}

func (s *Store) Categories() repository.Collection[entity.Category] { return s.categories }
func (s *Store) Items() repository.Collection[entity.Item]           { return s.items }
func (s *Store) Staff() repository.Collection[entity.Staff]          { return s.staff }
func (s *Store) Orders() repository.Collection[entity.Order]         { return s.orders }

// EnsureSchema crea tablas e índices si no existen (idempotente). Todo el DDL se aplica
// en una sola transacción bajo un advisory lock.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", schemaLockKey); err != nil {
			return fmt.Errorf("bloquear esquema: %w", err)
		}
		for _, stmt := range strings.Split(schemaDDL, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("aplicar esquema: %w", err)
			}
		}
		return nil
	})
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close cierra el pool.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}
