package hiringrequestapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"hr-pipeline-backend/lib/utils/helpers"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

type HiringRequestData struct {
	JobTitle        string  `json:"job_title"`        // Название должности
	Service         string  `json:"service"`          // Служба/подразделение
	Description     string  `json:"description"`      // Описание
	OpenedPositions int     `json:"opened_positions"` // Кол-во позиций
	RecruiterID     *uint   `json:"recruiter_id"`     // Ответственный рекрутер
	HiringCost      float64 `json:"hiring_cost"`      // Стоимость подбора
}

func (r HiringRequestData) Validate() error {
	if strings.TrimSpace(r.JobTitle) == "" {
		return errors.New("не указано название должности")
	}
	if strings.TrimSpace(r.Service) == "" {
		return errors.New("не указана служба")
	}
	if r.OpenedPositions < 0 {
		return errors.New("некорректное количество позиций")
	}
	if r.HiringCost < 0 {
		return errors.New("стоимость подбора не может быть отрицательной")
	}
	return nil
}

func (r HiringRequestData) GetUpdMap() map[string]interface{} {
	updMap := map[string]interface{}{
		"job_title":        strings.TrimSpace(r.JobTitle),
		"service":          strings.TrimSpace(r.Service),
		"description":      r.Description,
		"opened_positions": r.OpenedPositions,
		"hiring_cost":      r.HiringCost,
	}
	if r.RecruiterID == nil || *r.RecruiterID == 0 {
		updMap["recruiter_id"] = nil
	} else {
		updMap["recruiter_id"] = *r.RecruiterID
	}
	return updMap
}

type ValidateData struct {
	Step     models.ValidationStep   `json:"step"`     // VALIDATE_RH/VALIDATE_MANAGER/VALIDATE_RECRUITMENT
	Decision models.ValidationStatus `json:"decision"` // APPROVED/REJECTED
	Comment  string                  `json:"comment"`  // Причина/коментарий
}

func (v ValidateData) Validate() error {
	if err := v.Step.Validate(); err != nil {
		return err
	}
	return v.Decision.ValidateDecision()
}

type StatusChangeData struct {
	Status models.HRStatus `json:"status"`
}

func (s StatusChangeData) Validate() error {
	if err := s.Status.Validate(); err != nil {
		return err
	}
	if !s.Status.IsManualAllowed() {
		return errors.Errorf("статус %v нельзя установить вручную", s.Status)
	}
	return nil
}

type HiringRequestFilter struct {
	apimodels.Pagination
	Search  string          `json:"search"`  // Поиск по названию должности
	Status  models.HRStatus `json:"status"`  // Статус
	Service string          `json:"service"` // Служба
}

func (f HiringRequestFilter) Validate() error {
	if f.Status != "" {
		return f.Status.Validate()
	}
	return nil
}

type HiringRequestView struct {
	HiringRequestData
	ID                           uint                    `json:"id"`
	Status                       models.HRStatus         `json:"status"`
	StatusName                   string                  `json:"status_name"`
	ValidationRHStatus           models.ValidationStatus `json:"validation_rh_status"`
	ValidationPlantManagerStatus models.ValidationStatus `json:"validation_plant_manager_status"`
	ValidationRecruitmentStatus  models.ValidationStatus `json:"validation_recruitment_status"`
	RequesterID                  uint                    `json:"requester_id"`
	RequesterName                string                  `json:"requester_name"`
	RecruiterName                string                  `json:"recruiter_name"`
	ActualHiringDate             string                  `json:"actual_hiring_date"`
	CreatedAt                    time.Time               `json:"created_at"`
}

func Convert(rec dbmodels.HiringRequest) HiringRequestView {
	result := HiringRequestView{
		HiringRequestData: HiringRequestData{
			JobTitle:        rec.JobTitle,
			Service:         rec.Service,
			Description:     rec.Description,
			OpenedPositions: rec.OpenedPositions,
			RecruiterID:     rec.RecruiterID,
			HiringCost:      rec.HiringCost,
		},
		ID:                           rec.ID,
		Status:                       rec.Status,
		StatusName:                   rec.Status.ToHuman(),
		ValidationRHStatus:           rec.ValidationRHStatus,
		ValidationPlantManagerStatus: rec.ValidationPlantManagerStatus,
		ValidationRecruitmentStatus:  rec.ValidationRecruitmentStatus,
		RequesterID:                  rec.RequesterID,
		ActualHiringDate:             helpers.FormatDate(rec.ActualHiringDate),
		CreatedAt:                    rec.CreatedAt,
	}
	if rec.Requester != nil {
		result.RequesterName = rec.Requester.GetFullName()
	}
	if rec.Recruiter != nil {
		result.RecruiterName = rec.Recruiter.GetFullName()
	}
	return result
}

type ValidationView struct {
	ID           uint                    `json:"id"`
	Step         models.ValidationStep   `json:"step"`
	StepName     string                  `json:"step_name"`
	Decision     models.ValidationStatus `json:"decision"`
	DecisionName string                  `json:"decision_name"`
	Comment      string                  `json:"comment"`
	UserID       uint                    `json:"user_id"`
	UserName     string                  `json:"user_name"`
	CreatedAt    string                  `json:"created_at"`
}

func ConvertValidation(rec dbmodels.HiringRequestValidation) ValidationView {
	return ValidationView{
		ID:           rec.ID,
		Step:         rec.Step,
		StepName:     rec.Step.ToHuman(),
		Decision:     rec.Decision,
		DecisionName: rec.Decision.ToHuman(),
		Comment:      rec.Comment,
		UserID:       rec.UserID,
		UserName:     rec.UserName,
		CreatedAt:    helpers.FormatDateTime(rec.CreatedAt),
	}
}
