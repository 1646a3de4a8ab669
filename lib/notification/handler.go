package notificationhandler

import (
	"context"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"hr-pipeline-backend/lib/smtp"
	notificationstore "hr-pipeline-backend/lib/notification/store"
	usersstore "hr-pipeline-backend/lib/users/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	"hr-pipeline-backend/lib/utils/helpers"
	"hr-pipeline-backend/models"
	notificationapimodels "hr-pipeline-backend/models/api/notification"
	dbmodels "hr-pipeline-backend/models/db"
	wsmodels "hr-pipeline-backend/models/ws"
)

type Provider interface {
	Create(ctx context.Context, userID uint, data models.NotificationData) error
	NotifyUsers(ctx context.Context, userIDs []uint, data models.NotificationData) (created int)
	NotifyRoles(ctx context.Context, roles []models.UserRole, data models.NotificationData) (created int)
	List(userID uint, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID, id uint) error
	MarkAllRead(userID uint) error
}

// Pusher доставка уведомления подключенному по websocket пользователю
type Pusher interface {
	SendMessage(msg wsmodels.ServerMessage)
}

var Instance Provider

type Options struct {
	Pusher      Pusher
	Mailer      smtp.Provider
	EmailCopy   bool
	Parallelism int
}

func NewHandler(DB *gorm.DB, opts Options) {
	Instance = NewInstance(DB, opts)
}

func NewInstance(DB *gorm.DB, opts Options) Provider {
	if opts.Parallelism <= 0 {
		opts.Parallelism = 4
	}
	return &impl{
		store:       notificationstore.NewInstance(DB),
		usersStore:  usersstore.NewInstance(DB),
		pusher:      opts.Pusher,
		mailer:      opts.Mailer,
		emailCopy:   opts.EmailCopy,
		parallelism: opts.Parallelism,
	}
}

type impl struct {
	store       notificationstore.Provider
	usersStore  usersstore.Provider
	pusher      Pusher
	mailer      smtp.Provider
	emailCopy   bool
	parallelism int
}

func (i impl) Create(ctx context.Context, userID uint, data models.NotificationData) error {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if user == nil {
		return apperrors.NewNotFound("пользователь", userID)
	}
	return i.create(ctx, *user, data)
}

func (i impl) NotifyUsers(ctx context.Context, userIDs []uint, data models.NotificationData) int {
	users, err := i.usersStore.ListByIDs(uniqueIDs(userIDs))
	if err != nil {
		log.WithError(err).
			WithField("notification_type", data.Type).
			Error("ошибка получения получателей уведомления")
		return 0
	}
	return i.fanOut(ctx, users, data)
}

func (i impl) NotifyRoles(ctx context.Context, roles []models.UserRole, data models.NotificationData) int {
	users, err := i.usersStore.ListByRoles(roles)
	if err != nil {
		log.WithError(err).
			WithField("notification_type", data.Type).
			WithField("roles", roles).
			Error("ошибка получения получателей уведомления")
		return 0
	}
	return i.fanOut(ctx, users, data)
}

// fanOut уведомления получателям независимы, создаём их параллельно; ошибки только логируем
func (i impl) fanOut(ctx context.Context, users []dbmodels.User, data models.NotificationData) int {
	var created int32
	var g errgroup.Group
	g.SetLimit(i.parallelism)
	for _, user := range users {
		g.Go(func() error {
			if err := i.create(ctx, user, data); err != nil {
				log.WithError(err).
					WithField("user_id", user.ID).
					WithField("notification_type", data.Type).
					Error("ошибка создания уведомления")
				return nil
			}
			atomic.AddInt32(&created, 1)
			return nil
		})
	}
	_ = g.Wait()
	return int(created)
}

func (i impl) create(ctx context.Context, user dbmodels.User, data models.NotificationData) error {
	rec := dbmodels.Notification{
		UserID:      user.ID,
		Type:        data.Type,
		Title:       data.Title,
		Message:     data.Msg,
		RelatedID:   data.RelatedID,
		RelatedType: data.RelatedType,
		CreatedBy:   data.CreatedBy,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return err
	}
	rec.ID = id
	if i.pusher != nil {
		i.pusher.SendMessage(wsmodels.ServerMessage{
			ToUserID:       user.ID,
			NotificationID: id,
			Time:           helpers.FormatDateTime(time.Now()),
			Code:           string(data.Type),
			Title:          data.Title,
			Msg:            data.Msg,
		})
	}
	if i.emailCopy && i.mailer != nil && user.Email != "" && !helpers.IsContextDone(ctx) {
		if err = i.mailer.SendEMail(user.Email, data.Title, data.Msg); err != nil {
			log.WithError(err).
				WithField("user_id", user.ID).
				Warn("не удалось отправить копию уведомления на почту")
		}
	}
	return nil
}

func (i impl) List(userID uint, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(userID, filter)
	if err != nil {
		return nil, 0, apperrors.NewStorage(err, "ошибка получения списка уведомлений")
	}
	list = make([]notificationapimodels.NotificationView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, notificationapimodels.Convert(rec))
	}
	return list, rowCount, nil
}

func (i impl) UnreadCount(userID uint) (int64, error) {
	count, err := i.store.UnreadCount(userID)
	if err != nil {
		return 0, apperrors.NewStorage(err, "ошибка подсчёта уведомлений")
	}
	return count, nil
}

func (i impl) MarkRead(userID, id uint) error {
	found, err := i.store.MarkRead(userID, id, time.Now())
	if err != nil {
		return apperrors.NewStorage(err, "ошибка обновления уведомления")
	}
	if !found {
		return apperrors.NewNotFound("уведомление", id)
	}
	return nil
}

func (i impl) MarkAllRead(userID uint) error {
	err := i.store.MarkAllRead(userID, time.Now())
	if err != nil {
		return apperrors.NewStorage(err, "ошибка обновления уведомлений")
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := map[uint]bool{}
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
