package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/lib/rbac"
	apimodels "hr-pipeline-backend/models/api"
)

// RbacMiddleware проверка прав роли по зарегистрированным правилам; маршрут без правила доступен любому авторизованному
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID, role := GetUserID(ctx), GetUserRole(ctx)
		if userID == "" || role == "" {
			return denyRbac(ctx, userID, "нет пользователя или роли в токене")
		}
		check, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if found && !check(userID, role, ctx.Path()) {
			return denyRbac(ctx, userID, "роль "+string(role)+" не допускается")
		}
		return ctx.Next()
	}
}

func denyRbac(ctx *fiber.Ctx, userID, reason string) error {
	log.
		WithField("user_id", userID).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path()).
		Warn("доступ запрещён: " + reason)
	return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("недостаточно прав"))
}
