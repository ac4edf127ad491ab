package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/beanscene-api/internal/application/auth"
	"github.com/jhoicas/beanscene-api/internal/application/ports"
	"github.com/jhoicas/beanscene-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/beanscene-api/internal/infrastructure/pdf"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/rabbitmq"
	infras3 "github.com/jhoicas/beanscene-api/internal/infrastructure/s3"
	"github.com/jhoicas/beanscene-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/beanscene-api/internal/interfaces/http"
	"github.com/jhoicas/beanscene-api/pkg/config"
	"github.com/jhoicas/beanscene-api/pkg/logger"
)

// bodyLimit admite la imagen de un ítem (5 MB) más el sobre multipart.
const bodyLimit = 6 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacén")
	}

	// Eventos de pedidos: RabbitMQ si AMQP_URL está definido; si no, se descartan.
	var events ports.OrderEventPublisher = ports.NopPublisher{}
	var publisher *rabbitmq.Publisher
	if cfg.AMQP.Enabled() {
		conn, err := rabbitmq.Dial(cfg.AMQP, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		publisher = rabbitmq.NewPublisher(conn, log)
		events = publisher
	}

	// Imágenes de ítems en S3; sin bucket la subida responde 501.
	var images ports.ImageStore
	if cfg.S3.Enabled() {
		s3Store, err := infras3.New(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		images = s3Store
	}

	tickets := infrapdf.NewKitchenTicketGenerator(infrapdf.TicketOptions{
		Venue:          cfg.Ticket.Venue,
		Locale:         cfg.Ticket.Locale,
		CurrencySymbol: cfg.Ticket.CurrencySymbol,
	})

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	authUC := auth.NewAuthUseCase(store.Staff(), hasher)
	categoryUC := usecase.NewCategoryUseCase(store.Categories())
	itemUC := usecase.NewItemUseCase(store.Items(), images)
	staffUC := usecase.NewStaffUseCase(store.Staff(), hasher)
	orderUC := usecase.NewOrderUseCase(
		store.Orders(), store.Items(), events, tickets,
		usecase.OrderOptions{StrictTransitions: cfg.Orders.StrictTransitions},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.NewErrorHandler(log),
		BodyLimit:    bodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "BeanScene API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CategoryUC:   categoryUC,
		ItemUC:       itemUC,
		StaffUC:      staffUC,
		OrderUC:      orderUC,
		Store:        store,
		StoreTimeout: cfg.Store.Timeout,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("cierre de RabbitMQ")
		}
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del almacén")
	}

	log.Info().Msg("aplicación detenida")
}
