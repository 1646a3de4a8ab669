package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	usershandler "hr-pipeline-backend/lib/users"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	userapimodels "hr-pipeline-backend/models/api/user"
)

type usersApiController struct {
	controllers.BaseAPIController
}

func InitUsersApiRouters(app *fiber.App) {
	controller := usersApiController{}
	app.Route("users", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Put(":id/active", controller.setActive)
	})
}

// @Summary Список пользователей
// @Tags Пользователи
// @Description Список пользователей
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   page				query		int		false	"Страница"
// @Param   limit				query		int		false	"Записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]userapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users [get]
func (c *usersApiController) list(ctx *fiber.Ctx) error {
	pagination := apimodels.Pagination{
		Page:  ctx.QueryInt("page"),
		Limit: ctx.QueryInt("limit"),
	}
	list, rowCount, err := usershandler.Instance.List(pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание пользователя
// @Tags Пользователи
// @Description Создание пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 userapimodels.UserCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users [post]
func (c *usersApiController) create(ctx *fiber.Ctx) error {
	var payload userapimodels.UserCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := usershandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Блокировка/разблокировка пользователя
// @Tags Пользователи
// @Description Блокировка/разблокировка пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "user ID"
// @Param	body body	 userapimodels.UserActiveData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/{id}/active [put]
func (c *usersApiController) setActive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload userapimodels.UserActiveData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = usershandler.Instance.SetActive(middleware.GetActor(ctx), id, payload.IsActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
