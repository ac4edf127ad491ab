// Package storage selecciona e inicializa el almacén de documentos según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/beanscene-api/internal/domain/repository"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/memory"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/postgres"
	"github.com/jhoicas/beanscene-api/pkg/config"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

// Open conecta el almacén configurado y prepara índices/esquema.
// La conexión resultante se comparte por todo el proceso; cerrarla con Store.Close.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Store.Mongo, cfg.App.Name)
		if err != nil {
			return nil, err
		}
		store := mongodb.NewStore(client, cfg.Store.Mongo.Database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Str("database", cfg.Store.Mongo.Database).Msg("almacén conectado")
		return store, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Store.Postgres)
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.Driver).Msg("almacén conectado")
		return store, nil

	case config.DriverMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("storage: driver %q no soportado", cfg.Store.Driver)
	}
}
