package filter

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type FilterController struct {
	FilterService FilterService
}

func NewFilterController(filterService FilterService) *FilterController {
	return &FilterController{FilterService: filterService}
}

func (c *FilterController) CreateFilter(ctx *fiber.Ctx) error {
	var filter Filter
	if err := ctx.BodyParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.FilterService.CreateFilter(ctx.Context(), &filter); err != nil {
		var invalid *InvalidCriteriaError
		if errors.As(err, &invalid) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": invalid.Messages()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(filter)
}

func (c *FilterController) GetFilter(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	filter, err := c.FilterService.GetFilter(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Filter not found"})
	}

	return ctx.JSON(filter)
}

func (c *FilterController) ListFilters(ctx *fiber.Ctx) error {
	filters, err := c.FilterService.ListFilters(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(filters)
}

func (c *FilterController) UpdateFilter(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	filter, err := c.FilterService.UpdateFilter(ctx.Context(), id, body.Name, body.Description)
	if err != nil {
		var invalid *InvalidCriteriaError
		if errors.As(err, &invalid) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": invalid.Messages()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(filter)
}

func (c *FilterController) DeleteFilter(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	if err := c.FilterService.DeleteFilter(ctx.Context(), id); err != nil {
		if errors.Is(err, ErrLockedFilter) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
