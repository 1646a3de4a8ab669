package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	apimodels "hr-pipeline-backend/models/api"
)

// WithBodyLimit отклоняет запрос по заявленному Content-Length, до чтения multipart
func WithBodyLimit(limit int64) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if size := int64(ctx.Request().Header.ContentLength()); size > limit {
			msg := fmt.Sprintf("размер запроса %d байт превышает допустимые %d байт", size, limit)
			return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(msg))
		}
		return ctx.Next()
	}
}
