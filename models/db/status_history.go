package dbmodels

import "hr-pipeline-backend/models"

// StatusHistory журнал смены статусов кандидата, записи только добавляются
type StatusHistory struct {
	BaseModel
	CandidateID   uint                   `gorm:"index"`
	OldStatus     models.CandidateStatus `gorm:"type:varchar(50)"`
	NewStatus     models.CandidateStatus `gorm:"type:varchar(50)"`
	Label         string                 `gorm:"type:varchar(100)"`
	Trigger       string                 `gorm:"type:varchar(50)"`
	ChangedBy     uint
	ChangedByName string `gorm:"type:varchar(255)"`
	Comment       string `gorm:"type:text"`
}

func (StatusHistory) TableName() string {
	return "status_history"
}
