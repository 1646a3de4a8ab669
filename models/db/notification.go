package dbmodels

import (
	"hr-pipeline-backend/models"
	"time"
)

type Notification struct {
	BaseModel
	UserID      uint                    `gorm:"index"`
	Type        models.NotificationType `gorm:"type:varchar(100)"`
	Title       string                  `gorm:"type:varchar(255)"`
	Message     string                  `gorm:"type:text"`
	RelatedID   uint
	RelatedType string `gorm:"type:varchar(50)"`
	IsRead      bool   `gorm:"index"`
	ReadAt      *time.Time
	CreatedBy   *uint
}
