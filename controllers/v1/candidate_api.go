package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	candidatehandler "hr-pipeline-backend/lib/candidate"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
)

const resumeBodyLimit = 11 << 20

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("opinion", controller.opinion)
			idRoute.Put("change_status", controller.changeStatus)
			idRoute.Get("history", controller.history)
			idRoute.Post("upload-resume", middleware.WithBodyLimit(resumeBodyLimit), controller.uploadResume)
			idRoute.Get("resume", controller.resume)
		})
	})
}

// @Summary Список кандидатов
// @Tags Кандидат
// @Description Список кандидатов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/list [post]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := candidatehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка списка в Excel
// @Tags Кандидат
// @Description Выгрузка списка в Excel, пагинация игнорируется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/export [post]
func (c *candidateApiController) export(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, err := candidatehandler.Instance.ExportList(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки кандидатов")
	}
	return c.SendAttachment(ctx, body.Bytes(), "application/vnd.ms-excel", "candidats.xlsx")
}

// @Summary Создание
// @Tags Кандидат
// @Description Создание, кандидат создаётся в статусе NEW
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates [post]
func (c *candidateApiController) create(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := candidatehandler.Instance.Create(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Получение по ИД
// @Tags Кандидат
// @Description Получение по ИД вместе с собеседованиями, офером и медосмотром
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := candidatehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Кандидат
// @Description Обновление, версия записи обязательна
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateEditData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id} [put]
func (c *candidateApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload candidateapimodels.CandidateEditData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.Update(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Кандидат
// @Description Удаление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id} [delete]
func (c *candidateApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = candidatehandler.Instance.Delete(ctx.UserContext(), middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Мнение руководителя и RH
// @Tags Кандидат
// @Description Мнение руководителя и RH, совпадающие мнения меняют статус кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.OpinionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/opinion [put]
func (c *candidateApiController) opinion(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload candidateapimodels.OpinionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.SetOpinions(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения мнения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Смена статуса
// @Tags Кандидат
// @Description Смена статуса по правилам переходов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.StatusChangeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/change_status [put]
func (c *candidateApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload candidateapimodels.StatusChangeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidatehandler.Instance.ChangeStatus(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary История статусов
// @Tags Кандидат
// @Description История статусов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]candidateapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/history [get]
func (c *candidateApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := candidatehandler.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Загрузить резюме
// @Tags Кандидат
// @Description Загрузить резюме (pdf, doc, docx, odt, rtf, txt; до 10 МБ)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   resume          	formData    file  				    	true         "Резюме"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 413 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/upload-resume [post]
func (c *candidateApiController) uploadResume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	file, body, err := c.ReadFormFile(ctx, "resume")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения резюме")
	}
	err = candidatehandler.Instance.UploadResume(ctx.UserContext(), id, file.Filename, file.Header.Get(fiber.HeaderContentType), body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки резюме")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Скачать резюме
// @Tags Кандидат
// @Description Скачать резюме
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/resume [get]
func (c *candidateApiController) resume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	body, fileName, err := candidatehandler.Instance.GetResume(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения резюме")
	}
	return c.SendAttachment(ctx, body, "", fileName)
}
