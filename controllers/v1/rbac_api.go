package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	"hr-pipeline-backend/lib/rbac"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
)

type rbacApiController struct {
	controllers.BaseAPIController
}

func InitRbacApiRouters(app *fiber.App) {
	controller := rbacApiController{}
	app.Route("rbac", func(router fiber.Router) {
		router.Get("permissions", controller.permissions)
	})
}

// @Summary Права текущего пользователя
// @Tags Права доступа
// @Description Права текущего пользователя по модулям
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]rbac.ModulePermissions}
// @Failure 403
// @router /api/v1/rbac/permissions [get]
func (c *rbacApiController) permissions(ctx *fiber.Ctx) error {
	resp := rbac.Instance.GetPermissionsView(middleware.GetUserRole(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
