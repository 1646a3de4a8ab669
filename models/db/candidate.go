package dbmodels

import (
	"fmt"
	"hr-pipeline-backend/models"
)

type Candidate struct {
	BaseModel
	FirstName       string                 `gorm:"type:varchar(150)"`
	LastName        string                 `gorm:"type:varchar(150)"`
	Email           string                 `gorm:"type:varchar(255);index"`
	Phone           string                 `gorm:"type:varchar(30)"`
	Position        string                 `gorm:"type:varchar(255)"`
	Department      string                 `gorm:"type:varchar(255);index"`
	Source          models.CandidateSource `gorm:"type:varchar(50)"`
	ExperienceYears int
	CurrentSalary   float64
	ExpectedSalary  float64
	HROpinion       models.Opinion         `gorm:"type:varchar(50)"`
	ManagerOpinion  models.Opinion         `gorm:"type:varchar(50)"`
	Status          models.CandidateStatus `gorm:"type:varchar(50);index"`
	HiringRequestID *uint                  `gorm:"index"`
	HiringRequest   *HiringRequest         `gorm:"foreignKey:HiringRequestID"`
	ResumeFileKey   string                 `gorm:"type:varchar(255)"`
	ResumeFileName  string                 `gorm:"type:varchar(255)"`
	Comment         string                 `gorm:"type:text"`
	Version         int                    `gorm:"not null;default:1"`
	Interviews      []Interview            `gorm:"foreignKey:CandidateID"`
	JobOffer        *JobOffer              `gorm:"foreignKey:CandidateID"`
	MedicalVisit    *MedicalVisit          `gorm:"foreignKey:CandidateID"`
}

func (r Candidate) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

// GetPosition должность из связанной заявки, иначе указанная у кандидата
func (r Candidate) GetPosition() string {
	if r.HiringRequest != nil && r.HiringRequest.JobTitle != "" {
		return r.HiringRequest.JobTitle
	}
	return r.Position
}
