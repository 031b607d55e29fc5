package report

import (
	"splice-reports/internal/config"
	"splice-reports/internal/middleware"

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

	group.Get("/record/:id", api.ReportController.Record)
	group.Get("/record/:id/facts", api.ReportController.Facts)
	group.Get("/instance/:id/checkins", api.ReportController.InstanceCheckins)
	group.Get("/:id/items", api.ReportController.Items)
	group.Get("/:id/summary", api.ReportController.Summary)
	group.Get("/:id/export", api.ReportController.Export)
}
