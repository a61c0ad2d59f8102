package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-compliance/internal/common/api"
	"go-compliance/internal/config"
	"go-compliance/internal/connectors"
	"go-compliance/internal/database"
	"go-compliance/internal/features/audit"
	"go-compliance/internal/features/catalog"
	"go-compliance/internal/features/export"
	"go-compliance/internal/features/report"
	"go-compliance/internal/features/system"
	"go-compliance/internal/logger"
	"go-compliance/internal/middleware"
	"go-compliance/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// NewRecordStore builds the connector the config asks for. External
// SQL stores get a lifecycle hook so the pool is connected before the
// server takes traffic; each catalog source id doubles as its table
// name.
func NewRecordStore(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (connectors.Connector, error) {
	tables := make(map[string]string)
	for _, src := range catalog.MockSources() {
		tables[src.ID] = src.ID
	}

	conn, err := connectors.ForStore(cfg.RecordStore, tables)
	if err != nil {
		return nil, err
	}

	if conn.GetType() != "mock" {
		log.Info("using external record store", zap.String("type", cfg.RecordStore))
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return conn.Connect(ctx, map[string]interface{}{
					"host":     cfg.RecordDBHost,
					"port":     float64(cfg.RecordDBPort),
					"database": cfg.RecordDBName,
					"username": cfg.RecordDBUser,
					"password": cfg.RecordDBPassword,
				})
			},
			OnStop: conn.Disconnect,
		})
	}

	return conn, nil
}

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			report.NewReportRepository,
			audit.NewAuditRepository,

			// Collaborators
			catalog.NewMockProvider,
			NewRecordStore,
			func(c connectors.Connector) connectors.RecordFetcher { return c },
			export.NewExporter,

			// Services
			catalog.NewCatalogService,
			audit.NewAuditService,
			audit.NewRetentionScheduler,
			report.NewReportService,

			// Controllers
			catalog.NewCatalogController,
			report.NewReportController,

			// API Routes
			AsRoute(catalog.NewCatalogApi),
			AsRoute(report.NewReportApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduler *audit.RetentionScheduler) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start()
					},
					OnStop: func(ctx context.Context) error {
						return scheduler.Stop()
					},
				})
			},
		),
	)

	app.Run()
}
