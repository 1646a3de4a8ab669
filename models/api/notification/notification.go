package notificationapimodels

import (
	"hr-pipeline-backend/lib/utils/helpers"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

type NotificationFilter struct {
	apimodels.Pagination
	UnreadOnly bool `json:"unread_only"` // Только непрочитанные
}

type NotificationView struct {
	ID          uint                    `json:"id"`
	Type        models.NotificationType `json:"type"`
	Title       string                  `json:"title"`
	Message     string                  `json:"message"`
	RelatedID   uint                    `json:"related_id"`
	RelatedType string                  `json:"related_type"`
	IsRead      bool                    `json:"is_read"`
	CreatedAt   string                  `json:"created_at"`
}

func Convert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:          rec.ID,
		Type:        rec.Type,
		Title:       rec.Title,
		Message:     rec.Message,
		RelatedID:   rec.RelatedID,
		RelatedType: rec.RelatedType,
		IsRead:      rec.IsRead,
		CreatedAt:   helpers.FormatDateTime(rec.CreatedAt),
	}
}

type UnreadCountView struct {
	Count int64 `json:"count"`
}
