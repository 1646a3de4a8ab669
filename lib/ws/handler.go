package ws

import (
	wsclient "hr-pipeline-backend/lib/ws/client"
	connectionhub "hr-pipeline-backend/lib/ws/hub/connection-hub"
	"hr-pipeline-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		actor := middleware.GetActor(ctx)
		if actor.UserID == 0 {
			return ctx.SendStatus(fiber.StatusForbidden)
		}
		ctx.Locals("userID", actor.UserID)
		return ctx.Next()
	})
	app.Get("/", websocket.New(notificationHandler))
}

// @Summary Уведомления в реальном времени
// @Tags Websocket
// @Description При подключении отправляются непрочитанные уведомления, далее новые по мере появления
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 403
// @Failure 426
// @router /ws [get]
func notificationHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(uint)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer connectionhub.Instance.DeleteClient(userID, c)
	client.Dispatch()
}
