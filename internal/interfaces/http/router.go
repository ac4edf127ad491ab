package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	"github.com/jhoicas/beanscene-api/internal/domain/entity"
	"github.com/jhoicas/beanscene-api/internal/domain/repository"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CategoryUC   *usecase.CategoryUseCase
	ItemUC       *usecase.ItemUseCase
	StaffUC      *usecase.StaffUseCase
	OrderUC      *usecase.OrderUseCase
	Store        repository.Store
	StoreTimeout time.Duration
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Store != nil {
			ctx := c.UserContext()
			if deps.StoreTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, deps.StoreTimeout)
				defer cancel()
			}
			if err := deps.Store.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health: almacén no responde")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", StoreTimeout(deps.StoreTimeout))

	staffHandler := NewStaffHandler(deps.StaffUC, deps.AuthUC)

	// Login (público). Se registra antes del grupo protegido.
	api.Post("/staff/login", staffHandler.Login)

	// Rutas protegidas (Basic auth en cada petición)
	protected := api.Group("/", BasicAuth(deps.AuthUC))
	manager := RequireRole(entity.RoleManager)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Delete("/:id", manager, categoryHandler.Delete)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", manager, itemHandler.Create)
	items.Put("/:id", manager, itemHandler.Update)
	items.Put("/:id/image", manager, itemHandler.UploadImage)
	items.Delete("/:id", manager, itemHandler.Delete)

	// Orders (cualquier empleado autenticado)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/items", orderHandler.Items)
	orders.Get("/:id/ticket", orderHandler.Ticket)

	// Staff (solo Manager)
	staff := protected.Group("/staff", manager)
	staff.Get("/", staffHandler.List)
	staff.Post("/", staffHandler.Create)
	staff.Put("/:id", staffHandler.Update)
	staff.Put("/:id/password", staffHandler.UpdatePassword)
	staff.Delete("/:id", staffHandler.Delete)
}
