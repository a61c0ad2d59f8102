package report

import (
	"errors"
	"fmt"

	"go-compliance/internal/common/apperr"
	"go-compliance/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Create godoc
func (c *ReportController) Create(ctx *fiber.Ctx) error {
	var def ReportDefinition
	if err := ctx.BodyParser(&def); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	def.CreatedBy = middleware.UserID(ctx)

	if err := c.ReportService.CreateReport(ctx.Context(), &def); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(def)
}

// List godoc
func (c *ReportController) List(ctx *fiber.Ctx) error {
	defs, err := c.ReportService.ListReports(ctx.Context())
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(defs)
}

// Get godoc
func (c *ReportController) Get(ctx *fiber.Ctx) error {
	def, err := c.ReportService.GetReport(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(def)
}

// Update godoc
func (c *ReportController) Update(ctx *fiber.Ctx) error {
	var def ReportDefinition
	if err := ctx.BodyParser(&def); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	def.CreatedBy = middleware.UserID(ctx)

	if err := c.ReportService.UpdateReport(ctx.Context(), ctx.Params("id"), &def); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(def)
}

// Delete godoc
func (c *ReportController) Delete(ctx *fiber.Ctx) error {
	if err := c.ReportService.DeleteReport(ctx.Context(), ctx.Params("id"), middleware.UserID(ctx)); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// Preview godoc
func (c *ReportController) Preview(ctx *fiber.Ctx) error {
	var cfg ReportConfig
	if err := ctx.BodyParser(&cfg); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)

	result, err := c.ReportService.Preview(ctx.Context(), &cfg, page, limit)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(result)
}

// Run godoc previews a saved report definition.
func (c *ReportController) Run(ctx *fiber.Ctx) error {
	def, err := c.ReportService.GetReport(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)

	result, err := c.ReportService.Preview(ctx.Context(), &def.ReportConfig, page, limit)
	if err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(result)
}

// ExportConfig godoc exports an unsaved config from the request body.
func (c *ReportController) ExportConfig(ctx *fiber.Ctx) error {
	var cfg ReportConfig
	if err := ctx.BodyParser(&cfg); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	return c.export(ctx, &cfg)
}

// Export godoc exports a saved report definition.
func (c *ReportController) Export(ctx *fiber.Ctx) error {
	def, err := c.ReportService.GetReport(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}
	return c.export(ctx, &def.ReportConfig)
}

func (c *ReportController) export(ctx *fiber.Ctx, cfg *ReportConfig) error {
	format := ctx.Query("format", "csv")

	payload, err := c.ReportService.Export(ctx.Context(), cfg, format, middleware.UserID(ctx))
	if err != nil {
		return errorResponse(ctx, err)
	}
	if payload == nil {
		// Empty result set: nothing to download
		return ctx.SendStatus(fiber.StatusNoContent)
	}

	ctx.Set("Content-Type", payload.ContentType)
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", payload.Filename))
	return ctx.Send(payload.Data)
}

// errorResponse maps the error taxonomy onto HTTP statuses so handlers
// never leak raw 500s for user-correctable problems.
func errorResponse(ctx *fiber.Ctx, err error) error {
	var validationErr *apperr.ValidationError
	var mismatchErr *apperr.TypeMismatchError
	var exportErr *apperr.ExportError

	switch {
	case apperr.IsNotFound(err):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.As(err, &validationErr), errors.As(err, &mismatchErr):
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &exportErr):
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
