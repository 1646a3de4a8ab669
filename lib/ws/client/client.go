package wsclient

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// PongWait клиент считается отключённым, если за это время не пришёл pong
	PongWait = 60 * time.Second
	// PingPeriod должен быть меньше PongWait
	PingPeriod = PongWait * 9 / 10
)

// WsClient читающая сторона соединения с уведомлениями.
// Клиент ничего не присылает, чтение держит соединение и обрабатывает pong/close
type WsClient struct {
	conn   *websocket.Conn
	userID uint
}

func NewClient(userID uint, conn *websocket.Conn) *WsClient {
	return &WsClient{
		conn:   conn,
		userID: userID,
	}
}

// Dispatch блокируется до закрытия соединения клиентом или истечения PongWait
func (c *WsClient) Dispatch() {
	if c.conn == nil {
		return
	}
	logger := log.WithField("user_id", c.userID)
	c.extendDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendDeadline()
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Warn("websocket соединение прервано")
			}
			return
		}
	}
}

func (c *WsClient) extendDeadline() {
	if err := c.conn.SetReadDeadline(time.Now().Add(PongWait)); err != nil {
		log.WithError(err).WithField("user_id", c.userID).Debug("не удалось продлить ожидание websocket")
	}
}
