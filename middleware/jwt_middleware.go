package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/fiberlog"
	apimodels "hr-pipeline-backend/models/api"
)

// AuthorizationRequired проверка access токена; refresh токен роли не содержит и отклоняется
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		SuccessHandler: func(ctx *fiber.Ctx) error {
			actor := GetActor(ctx)
			if actor.UserID == 0 || actor.Role == "" {
				return unauthorized(ctx)
			}
			ctx.Locals(fiberlog.LocalsUserID, actor.UserID)
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return unauthorized(ctx)
		},
	})
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
}
