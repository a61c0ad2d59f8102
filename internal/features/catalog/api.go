package catalog

import (
	"go-compliance/internal/config"
	"go-compliance/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type CatalogApi struct {
	CatalogController *CatalogController
	Config            *config.Config
}

func NewCatalogApi(catalogController *CatalogController, config *config.Config) *CatalogApi {
	return &CatalogApi{
		CatalogController: catalogController,
		Config:            config,
	}
}

func (api *CatalogApi) Setup(app *fiber.App) {
	group := app.Group("/api/catalog", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/sources", api.CatalogController.ListSources)
	group.Get("/sources/:id", api.CatalogController.GetSource)
}
