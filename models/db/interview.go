package dbmodels

import (
	"hr-pipeline-backend/models"
	"time"
)

type Interview struct {
	BaseModel
	CandidateID   uint                   `gorm:"index"`
	Candidate     *Candidate             `gorm:"foreignKey:CandidateID"`
	Type          models.InterviewType   `gorm:"type:varchar(50)"`
	ScheduledAt   time.Time              `gorm:"index"`
	Result        models.InterviewResult `gorm:"type:varchar(50)"`
	Comments      string                 `gorm:"type:text"`
	InterviewerID *uint
	Interviewer   *User `gorm:"foreignKey:InterviewerID"`
	ReminderSent  bool
}
