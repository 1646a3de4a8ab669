package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	hiringrequesthandler "hr-pipeline-backend/lib/hiring-request"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	hiringrequestapimodels "hr-pipeline-backend/models/api/hiring-request"
)

type hiringRequestApiController struct {
	controllers.BaseAPIController
}

func InitHiringRequestApiRouters(app *fiber.App) {
	controller := hiringRequestApiController{}
	app.Route("hiring_requests", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("validate", controller.validate)           // решение по шагу согласования
			idRoute.Put("change_status", controller.changeStatus)  // ручная смена статуса
			idRoute.Get("validations", controller.validations)     // журнал согласования
		})
	})
}

// @Summary Список заявок
// @Tags Заявка на подбор
// @Description Список заявок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 hiringrequestapimodels.HiringRequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]hiringrequestapimodels.HiringRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests/list [post]
func (c *hiringRequestApiController) list(ctx *fiber.Ctx) error {
	var payload hiringrequestapimodels.HiringRequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := hiringrequesthandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Создание
// @Tags Заявка на подбор
// @Description Создание, заявка создаётся в статусе PENDING_VALIDATION
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 hiringrequestapimodels.HiringRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests [post]
func (c *hiringRequestApiController) create(ctx *fiber.Ctx) error {
	var payload hiringrequestapimodels.HiringRequestData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := hiringrequesthandler.Instance.Create(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Заявка на подбор
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=hiringrequestapimodels.HiringRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests/{id} [get]
func (c *hiringRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := hiringrequesthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Заявка на подбор
// @Description Обновление, доступно автору заявки и RH
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 hiringrequestapimodels.HiringRequestData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests/{id} [put]
func (c *hiringRequestApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload hiringrequestapimodels.HiringRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = hiringrequesthandler.Instance.Update(middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Заявка на подбор
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests/{id} [delete]
func (c *hiringRequestApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = hiringrequesthandler.Instance.Delete(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Решение по шагу согласования
// @Tags Заявка на подбор
// @Description Решение по шагу согласования (RH, Manager, Recrutement). Отклонение отменяет заявку, три согласования переводят её в VACANT
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 hiringrequestapimodels.ValidateData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=hiringrequestapimodels.HiringRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests/{id}/validate [put]
func (c *hiringRequestApiController) validate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload hiringrequestapimodels.ValidateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := hiringrequesthandler.Instance.Validate(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Смена статуса
// @Tags Заявка на подбор
// @Description Ручная смена статуса (IN_PROGRESS, COMPLETED, CANCELLED)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 hiringrequestapimodels.StatusChangeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests/{id}/change_status [put]
func (c *hiringRequestApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload hiringrequestapimodels.StatusChangeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = hiringrequesthandler.Instance.ChangeStatus(ctx.UserContext(), middleware.GetActor(ctx), id, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Журнал согласования
// @Tags Заявка на подбор
// @Description Журнал согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]hiringrequestapimodels.ValidationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hiring_requests/{id}/validations [get]
func (c *hiringRequestApiController) validations(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := hiringrequesthandler.Instance.ValidationHistory(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения журнала согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
