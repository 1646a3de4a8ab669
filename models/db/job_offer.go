package dbmodels

import (
	"hr-pipeline-backend/models"
	"time"
)

type JobOffer struct {
	BaseModel
	CandidateID      uint `gorm:"uniqueIndex"`
	SentDate         time.Time
	Response         models.OfferResponse `gorm:"type:varchar(50)"`
	ResponseDate     *time.Time
	ActualHiringDate *time.Time
	ProposedSalary   float64
	StartDate        *time.Time
	Comment          string `gorm:"type:text"`
}

type MedicalVisit struct {
	BaseModel
	CandidateID uint `gorm:"uniqueIndex"`
	ScheduledAt time.Time
	Result      models.MedicalResult `gorm:"type:varchar(50)"`
	Comment     string               `gorm:"type:text"`
}
