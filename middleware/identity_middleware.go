package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if value, ok := sub.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, ok := claims["name"].(string); ok {
		return name
	}
	return ""
}

// GetActor пользователь запроса из claims JWT
func GetActor(ctx *fiber.Ctx) models.Actor {
	actor := models.Actor{
		Username: GetUserName(ctx),
		Role:     GetUserRole(ctx),
	}
	if id, err := strconv.ParseUint(GetUserID(ctx), 10, 64); err == nil {
		actor.UserID = uint(id)
	}
	return actor
}

func RoleRequired(roles ...models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).In(roles...) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
