package report

import (
	"go-compliance/internal/config"
	"go-compliance/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		ReportController: reportController,
		Config:           config,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.ReportController.Create)
	group.Get("/", api.ReportController.List)
	group.Post("/preview", api.ReportController.Preview)
	group.Post("/export", api.ReportController.ExportConfig)
	group.Get("/:id", api.ReportController.Get)
	group.Put("/:id", api.ReportController.Update)
	group.Delete("/:id", api.ReportController.Delete)
	group.Get("/:id/run", api.ReportController.Run)
	group.Get("/:id/export", api.ReportController.Export)
}
