package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	jobofferhandler "hr-pipeline-backend/lib/job-offer"
	medicalvisithandler "hr-pipeline-backend/lib/medical-visit"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	offerapimodels "hr-pipeline-backend/models/api/offer"
)

type offerApiController struct {
	controllers.BaseAPIController
}

func InitOfferApiRouters(app *fiber.App) {
	controller := offerApiController{}
	app.Route("candidates/:id", func(router fiber.Router) {
		router.Route("offer", func(offerRoute fiber.Router) {
			offerRoute.Get("", controller.getOffer)
			offerRoute.Post("", controller.sendOffer)
			offerRoute.Put("response", controller.offerResponse)
			offerRoute.Get("pdf", controller.offerLetter)
		})
		router.Route("medical_visit", func(visitRoute fiber.Router) {
			visitRoute.Get("", controller.getMedicalVisit)
			visitRoute.Post("", controller.scheduleMedicalVisit)
			visitRoute.Put("result", controller.medicalVisitResult)
		})
	})
}

// @Summary Офер кандидата
// @Tags Офер и медосмотр
// @Description Офер кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=offerapimodels.OfferView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/offer [get]
func (c *offerApiController) getOffer(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := jobofferhandler.Instance.Get(candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения офера")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отправить офер
// @Tags Офер и медосмотр
// @Description Отправить офер, кандидат переходит в OFFER_SENT
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 offerapimodels.OfferSendData	true	"request body"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/offer [post]
func (c *offerApiController) sendOffer(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload offerapimodels.OfferSendData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobofferhandler.Instance.Send(ctx.UserContext(), middleware.GetActor(ctx), candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки офера")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Ответ кандидата на офер
// @Tags Офер и медосмотр
// @Description Ответ кандидата на офер (ACCEPTED, DECLINED)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 offerapimodels.OfferResponseData	true	"request body"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/offer/response [put]
func (c *offerApiController) offerResponse(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload offerapimodels.OfferResponseData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobofferhandler.Instance.SetResponse(ctx.UserContext(), middleware.GetActor(ctx), candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения ответа на офер")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Письмо-офер в PDF
// @Tags Офер и медосмотр
// @Description Письмо-офер в PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/offer/pdf [get]
func (c *offerApiController) offerLetter(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	body, fileName, err := jobofferhandler.Instance.GenerateLetter(ctx.UserContext(), candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования письма-офера")
	}
	return c.SendAttachment(ctx, body, "application/pdf", fileName)
}

// @Summary Медосмотр кандидата
// @Tags Офер и медосмотр
// @Description Медосмотр кандидата
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=offerapimodels.MedicalVisitView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/medical_visit [get]
func (c *offerApiController) getMedicalVisit(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	resp, err := medicalvisithandler.Instance.Get(candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения медосмотра")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначить медосмотр
// @Tags Офер и медосмотр
// @Description Назначить медосмотр, кандидат переходит в MEDICAL_VISIT
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 offerapimodels.MedicalVisitData	true	"request body"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/medical_visit [post]
func (c *offerApiController) scheduleMedicalVisit(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload offerapimodels.MedicalVisitData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := medicalvisithandler.Instance.Schedule(ctx.UserContext(), middleware.GetActor(ctx), candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения медосмотра")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Результат медосмотра
// @Tags Офер и медосмотр
// @Description Результат медосмотра (FIT, UNFIT)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 offerapimodels.MedicalVisitResultData	true	"request body"
// @Param   id          		path    string  				    	true         "ИД кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{id}/medical_visit/result [put]
func (c *offerApiController) medicalVisitResult(ctx *fiber.Ctx) error {
	candidateID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload offerapimodels.MedicalVisitResultData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := medicalvisithandler.Instance.SetResult(ctx.UserContext(), middleware.GetActor(ctx), candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения результата медосмотра")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
