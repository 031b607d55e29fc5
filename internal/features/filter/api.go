package filter

import (
	"splice-reports/internal/config"
	"splice-reports/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FilterApi struct {
	FilterController *FilterController
	Config           *config.Config
}

func NewFilterApi(filterController *FilterController, config *config.Config) *FilterApi {
	return &FilterApi{
		FilterController: filterController,
		Config:           config,
	}
}

func (api *FilterApi) Setup(app *fiber.App) {
	group := app.Group("/api/filters", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/", api.FilterController.CreateFilter)
	group.Get("/", api.FilterController.ListFilters)
	group.Get("/:id", api.FilterController.GetFilter)
	group.Put("/:id", api.FilterController.UpdateFilter)
	group.Delete("/:id", api.FilterController.DeleteFilter)
}
