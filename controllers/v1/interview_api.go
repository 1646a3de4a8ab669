package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	interviewhandler "hr-pipeline-backend/lib/interview"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	interviewapimodels "hr-pipeline-backend/models/api/interview"
)

type interviewApiController struct {
	controllers.BaseAPIController
}

func InitInterviewApiRouters(app *fiber.App) {
	controller := interviewApiController{}
	app.Route("candidates/:id/interviews", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
	})
	app.Route("interviews/:id", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("", controller.update)
		router.Delete("", controller.delete)
		router.Put("result", controller.result)
	})
}

// @Summary Собеседования кандидата
// @Tags Собеседование
// @Description Собеседования кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/interviews [get]
func (c *interviewApiController) list(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := interviewhandler.Instance.ListByCandidate(candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка собеседований")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначить собеседование
// @Tags Собеседование
// @Description Назначить собеседование
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.InterviewCreateData	true	"request body"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/interviews [post]
func (c *interviewApiController) create(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload interviewapimodels.InterviewCreateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := interviewhandler.Instance.Create(middleware.GetActor(ctx), candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания собеседования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Собеседование
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews/{id} [get]
func (c *interviewApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := interviewhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения собеседования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Собеседование
// @Description Обновление, переданный результат меняет статус кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.InterviewEditData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews/{id} [put]
func (c *interviewApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload interviewapimodels.InterviewEditData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := interviewhandler.Instance.Update(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления собеседования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Собеседование
// @Description Удаление, только без результата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews/{id} [delete]
func (c *interviewApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = interviewhandler.Instance.Delete(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления собеседования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Результат собеседования
// @Tags Собеседование
// @Description Результат собеседования (ADMITTED, REJECTED), меняет статус кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 interviewapimodels.InterviewResultData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interviews/{id}/result [put]
func (c *interviewApiController) result(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload interviewapimodels.InterviewResultData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := interviewhandler.Instance.SetResult(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения результата собеседования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
