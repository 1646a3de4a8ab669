package notificationstore

import (
	"time"

	"gorm.io/gorm"
	notificationapimodels "hr-pipeline-backend/models/api/notification"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id uint, err error)
	List(userID uint, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, rowCount int64, err error)
	ListUnread(userID uint, limit int) (list []dbmodels.Notification, err error)
	UnreadCount(userID uint) (count int64, err error)
	MarkRead(userID, id uint, readAt time.Time) (found bool, err error)
	MarkAllRead(userID uint, readAt time.Time) error
	CountByRelated(relatedType string, relatedID uint) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id uint, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) List(userID uint, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID)
	if filter.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	if err = tx.Session(&gorm.Session{}).Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	offset, limit := filter.GetOffsetLimit()
	list = []dbmodels.Notification{}
	err = tx.
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListUnread(userID uint, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Order("created_at, id").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UnreadCount(userID uint) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).
		Error
	return count, err
}

func (i impl) MarkRead(userID, id uint, readAt time.Time) (found bool, err error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) MarkAllRead(userID uint, readAt time.Time) error {
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": readAt,
		}).
		Error
}

func (i impl) CountByRelated(relatedType string, relatedID uint) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.Notification{}).
		Where("related_type = ?", relatedType).
		Where("related_id = ?", relatedID).
		Count(&count).
		Error
	return count, err
}
