package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	dashboardhandler "hr-pipeline-backend/lib/dashboard"
	apimodels "hr-pipeline-backend/models/api"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Get("stats", controller.stats)
		router.Get("export", controller.export)
	})
}

// @Summary Сводка
// @Tags Сводка
// @Description Кандидаты по статусам, подразделениям и источникам, заявки по статусам, стоимость найма
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.DashboardStats}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/stats [get]
func (c *dashboardApiController) stats(ctx *fiber.Ctx) error {
	resp, err := dashboardhandler.Instance.GetStats()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сводки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка сводки в Excel
// @Tags Сводка
// @Description Выгрузка сводки в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dashboard/export [get]
func (c *dashboardApiController) export(ctx *fiber.Ctx) error {
	body, err := dashboardhandler.Instance.ExportXls()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки сводки")
	}
	return c.SendAttachment(ctx, body.Bytes(), "application/vnd.ms-excel", "tableau_de_bord.xlsx")
}
