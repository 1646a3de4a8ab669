package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	notificationhandler "hr-pipeline-backend/lib/notification"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	notificationapimodels "hr-pipeline-backend/models/api/notification"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notifications", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read_all", controller.readAll)
		router.Put(":id/read", controller.read)
	})
}

// @Summary Мои уведомления
// @Tags Уведомления
// @Description Уведомления текущего пользователя, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/list [post]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	list, rowCount, err := notificationhandler.Instance.List(middleware.GetActor(ctx).UserID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Количество непрочитанных
// @Tags Уведомления
// @Description Количество непрочитанных
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCountView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(middleware.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения количества уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCountView{Count: count}))
}

// @Summary Отметить прочитанным
// @Tags Уведомления
// @Description Отметить прочитанным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/{id}/read [put]
func (c *notificationApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	err = notificationhandler.Instance.MarkRead(middleware.GetActor(ctx).UserID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отметить все прочитанными
// @Tags Уведомления
// @Description Отметить все прочитанными
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/read_all [put]
func (c *notificationApiController) readAll(ctx *fiber.Ctx) error {
	err := notificationhandler.Instance.MarkAllRead(middleware.GetActor(ctx).UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
