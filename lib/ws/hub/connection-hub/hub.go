package connectionhub

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	notificationstore "hr-pipeline-backend/lib/notification/store"
	"hr-pipeline-backend/lib/utils/helpers"
	wsmodels "hr-pipeline-backend/models/ws"
)

const backlogLimit = 50

type Provider interface {
	AddClient(userID uint, conn *websocket.Conn)
	DeleteClient(userID uint, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage)
	IsConnected(userID uint) bool
}

var Instance Provider

func Init(DB *gorm.DB) {
	Instance = NewInstance(notificationstore.NewInstance(DB))
}

func NewInstance(store notificationstore.Provider) Provider {
	return &impl{
		clients: map[uint]*clientSession{},
		store:   store,
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[uint]*clientSession
	store   notificationstore.Provider
}

func (i *impl) DeleteClient(userID uint, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, userID)
	sess.stop()
}

func (i *impl) AddClient(userID uint, conn *websocket.Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	if ok {
		oldSess.stop()
	}
	i.clients[userID] = newSession(conn)
	i.mu.Unlock()
	go i.sendBacklog(userID)
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[msg.ToUserID]
	if ok {
		sess.push(msg)
	}
}

func (i *impl) IsConnected(userID uint) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}

// sendBacklog при подключении отправляем непрочитанные уведомления
func (i *impl) sendBacklog(userID uint) {
	if i.store == nil {
		return
	}
	logger := log.WithField("user_id", userID)
	list, err := i.store.ListUnread(userID, backlogLimit)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка непрочитанных уведомлений")
		return
	}
	for _, item := range list {
		if !i.IsConnected(userID) {
			return
		}
		i.SendMessage(wsmodels.ServerMessage{
			ToUserID:       userID,
			NotificationID: item.ID,
			Time:           helpers.FormatDateTime(item.CreatedAt),
			Code:           string(item.Type),
			Title:          item.Title,
			Msg:            item.Message,
		})
	}
}
