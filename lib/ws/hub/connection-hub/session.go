package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	wsclient "hr-pipeline-backend/lib/ws/client"
)

type clientSession struct {
	conn *websocket.Conn

	// исходящие сообщения, буферизованы
	sendCh chan any
	ctx    context.Context
	stop   func()
}

func newSession(conn *websocket.Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		stop:   cancelFn,
		ctx:    ctx,
		conn:   conn,
		sendCh: make(chan any, 64),
	}
	go sess.startSend()
	return sess
}

func (s *clientSession) push(msg any) {
	select {
	case <-s.ctx.Done():
	case s.sendCh <- msg:
	default:
		log.Warn("очередь websocket сообщений переполнена, сообщение пропущено")
	}
}

// startSend единственный писатель в соединение: сообщения и ping
func (s *clientSession) startSend() {
	ticker := time.NewTicker(wsclient.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		case <-ticker.C:
			if err := s.ping(); err != nil {
				log.WithError(err).Debug("ошибка отправки ping")
			}
		}
	}
}

func (s *clientSession) ping() error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second))
}

func (s *clientSession) send(msg interface{}) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	return s.conn.WriteJSON(msg)
}

func (s *clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Millisecond))
	if err != nil {
		log.WithError(err).Debug("не удалось закрыть websocket")
	}
}
