package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hr-pipeline-backend/controllers"
	authhandler "hr-pipeline-backend/lib/auth"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
	authapimodels "hr-pipeline-backend/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

// InitAuthApiRouters маршруты входа подключаются до общей проверки JWT, поэтому me и change-password защищены отдельно
func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Post("refresh-token", controller.refreshToken)
		router.Get("me", middleware.AuthorizationRequired(), controller.me)
		router.Put("change-password", middleware.AuthorizationRequired(), controller.changePassword)
	})
}

// @Summary Вход по логину и паролю
// @Tags Аутентификация
// @Description Возвращает access и refresh токены
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(payload.Username, payload.Password)
	if err != nil {
		return c.sendAuthError(ctx, err, "Ошибка входа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Текущий пользователь
// @Tags Аутентификация
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	resp, err := authhandler.Instance.Me(middleware.GetActor(ctx).UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return ctx.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновить токены
// @Tags Аутентификация
// @Description Принимает только refresh токен
// @Param	body				body		authapimodels.JWTRefreshRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/refresh-token [post]
func (c *authApiController) refreshToken(ctx *fiber.Ctx) error {
	var payload authapimodels.JWTRefreshRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.RefreshToken(payload.RefreshToken)
	if err != nil {
		return c.sendAuthError(ctx, err, "Ошибка обновления токена")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сменить свой пароль
// @Tags Аутентификация
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		authapimodels.ChangePasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/change-password [put]
func (c *authApiController) changePassword(ctx *fiber.Ctx) error {
	var payload authapimodels.ChangePasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := authhandler.Instance.ChangePassword(middleware.GetActor(ctx).UserID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены пароля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// отказ в доступе отдаётся как 401, остальное по общим правилам
func (c *authApiController) sendAuthError(ctx *fiber.Ctx, err error, msg string) error {
	if apperrors.IsForbidden(err) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, msg)
}
