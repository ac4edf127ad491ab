// beanscene-admin tareas de operación sobre el almacén configurado (mismas variables que la API):
// alta de empleados, cambio de contraseña y carga del menú desde YAML.
//
// Uso:
//
//	beanscene-admin staff create --username jo --password ... --role Manager --first-name Jo --last-name Doe --email jo@example.com
//	beanscene-admin staff password --username jo --password ...
//	beanscene-admin menu seed --file menu.yaml [--latin1]
//	beanscene-admin menu list
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/storage"
	"github.com/jhoicas/beanscene-api/pkg/config"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "beanscene-admin",
	Short:         "Operación del backend BeanScene (empleados y menú)",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newStaffCmd(), newMenuCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env dependencias abiertas para un comando.
type env struct {
	store      repository.Store
	categories *usecase.CategoryUseCase
	items      *usecase.ItemUseCase
	staff      *usecase.StaffUseCase
	log        *logger.Logger
}

// openEnv carga la configuración y abre el almacén; llamar a close al terminar.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "beanscene-admin"})
	store, err := storage.Open(ctx, *cfg, log)
	if err != nil {
		return nil, fmt.Errorf("abrir almacén: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	return &env{
		store:      store,
		categories: usecase.NewCategoryUseCase(store.Categories()),
		items:      usecase.NewItemUseCase(store.Items(), nil),
		staff:      usecase.NewStaffUseCase(store.Staff(), hasher),
		log:        log,
	}, nil
}

func (e *env) close() {
	if err := e.store.Close(context.Background()); err != nil {
		e.log.Warn().Err(err).Msg("cierre del almacén")
	}
}
