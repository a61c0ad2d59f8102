package catalog

import (
	"go-compliance/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type CatalogController struct {
	CatalogService CatalogService
}

func NewCatalogController(catalogService CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListSources godoc
func (c *CatalogController) ListSources(ctx *fiber.Ctx) error {
	sources, err := c.CatalogService.ListSources(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(sources)
}

// GetSource godoc
func (c *CatalogController) GetSource(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	source, err := c.CatalogService.GetSource(ctx.Context(), id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data source not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(source)
}
