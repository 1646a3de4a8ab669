package dbmodels

import (
	"hr-pipeline-backend/models"
	"time"
)

type HiringRequest struct {
	BaseModel
	JobTitle                     string                  `gorm:"type:varchar(255)"`
	Service                      string                  `gorm:"type:varchar(255);index"`
	Description                  string                  `gorm:"type:text"`
	OpenedPositions              int
	Status                       models.HRStatus         `gorm:"type:varchar(50);index"`
	ValidationRHStatus           models.ValidationStatus `gorm:"type:varchar(50)"`
	ValidationPlantManagerStatus models.ValidationStatus `gorm:"type:varchar(50)"`
	ValidationRecruitmentStatus  models.ValidationStatus `gorm:"type:varchar(50)"`
	RequesterID                  uint                    `gorm:"index"`
	Requester                    *User                   `gorm:"foreignKey:RequesterID"`
	RecruiterID                  *uint
	Recruiter                    *User `gorm:"foreignKey:RecruiterID"`
	HiringCost                   float64
	ActualHiringDate             *time.Time
	Candidates                   []Candidate `gorm:"foreignKey:HiringRequestID"`
}

// ValidationFlags текущее состояние трёх шагов согласования
func (r HiringRequest) ValidationFlags() map[models.ValidationStep]models.ValidationStatus {
	return map[models.ValidationStep]models.ValidationStatus{
		models.ValidationStepRH:          r.ValidationRHStatus,
		models.ValidationStepManager:     r.ValidationPlantManagerStatus,
		models.ValidationStepRecruitment: r.ValidationRecruitmentStatus,
	}
}

// ValidationColumn колонка флага согласования для шага
func ValidationColumn(step models.ValidationStep) string {
	switch step {
	case models.ValidationStepRH:
		return "validation_rh_status"
	case models.ValidationStepManager:
		return "validation_plant_manager_status"
	case models.ValidationStepRecruitment:
		return "validation_recruitment_status"
	}
	return ""
}

// HiringRequestValidation журнал решений по шагам согласования заявки
type HiringRequestValidation struct {
	BaseModel
	HiringRequestID uint                    `gorm:"index"`
	Step            models.ValidationStep   `gorm:"type:varchar(50)"`
	Decision        models.ValidationStatus `gorm:"type:varchar(50)"`
	Comment         string                  `gorm:"type:text"`
	UserID          uint
	UserName        string `gorm:"type:varchar(255)"`
}
