package report

import (
	"errors"

	"splice-reports/internal/features/filter"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Items returns one page of check-ins matching the filter, with totals.
func (c *ReportController) Items(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	search := ctx.Query("search")
	offset := int64(ctx.QueryInt("offset", 0))
	pageSize := int64(ctx.QueryInt("page_size", defaultPageSize))

	result, err := c.ReportService.Items(ctx.Context(), id, search, offset, pageSize)
	if err != nil {
		return reportError(ctx, err)
	}

	return ctx.JSON(result)
}

// InstanceCheckins returns the per-instance check-in history bounded by the
// filter's window end.
func (c *ReportController) InstanceCheckins(ctx *fiber.Ctx) error {
	filterID := ctx.Query("filter")
	if filterID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "filter parameter required"})
	}

	rows, err := c.ReportService.InstanceCheckins(ctx.Context(), filterID, ctx.Params("id"))
	if err != nil {
		return reportError(ctx, err)
	}

	return ctx.JSON(rows)
}

func (c *ReportController) Record(ctx *fiber.Ctx) error {
	doc, err := c.ReportService.Record(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	}

	return ctx.JSON(doc)
}

func (c *ReportController) Facts(ctx *fiber.Ctx) error {
	facts, err := c.ReportService.Facts(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record not found"})
	}

	return ctx.JSON(facts)
}

func (c *ReportController) Summary(ctx *fiber.Ctx) error {
	summary, err := c.ReportService.Summary(ctx.Context(), ctx.Params("id"), ctx.Query("search"))
	if err != nil {
		return reportError(ctx, err)
	}

	return ctx.JSON(summary)
}

// Export streams the bundle back as a download.
func (c *ReportController) Export(ctx *fiber.Ctx) error {
	opts := ExportOptions{
		Format:       ctx.Query("format", "csv"),
		SkipExpanded: ctx.QueryBool("skip_expanded", false),
		Encrypt:      ctx.QueryBool("encrypt", false),
	}

	data, filename, err := c.ReportService.Export(ctx.Context(), ctx.Params("id"), opts)
	if err != nil {
		return reportError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	ctx.Set(fiber.HeaderContentType, "application/octet-stream")
	return ctx.Send(data)
}

func reportError(ctx *fiber.Ctx, err error) error {
	var invalid *filter.InvalidCriteriaError
	if errors.As(err, &invalid) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": invalid.Messages()})
	}

	// Configuration, encryption, archive and store failures are all fatal to
	// the request and never retried.
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
