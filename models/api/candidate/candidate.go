package candidateapimodels

import (
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"hr-pipeline-backend/lib/utils/helpers"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

type CandidateData struct {
	FirstName       string                 `json:"first_name"`        // Имя
	LastName        string                 `json:"last_name"`         // Фамилия
	Email           string                 `json:"email"`             // Емайл
	Phone           string                 `json:"phone"`             // Телефон
	Position        string                 `json:"position"`          // Желаемая должность
	Department      string                 `json:"department"`        // Подразделение
	Source          models.CandidateSource `json:"source"`            // Источник кандидата
	ExperienceYears int                    `json:"experience_years"`  // Опыт работы в годах
	CurrentSalary   float64                `json:"current_salary"`    // Текущая ЗП
	ExpectedSalary  float64                `json:"expected_salary"`   // Желаемая ЗП
	HiringRequestID *uint                  `json:"hiring_request_id"` // Идентификатор заявки на подбор
	Comment         string                 `json:"comment"`           // Коментарий
}

func (c CandidateData) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return errors.New("не указано имя кандидата")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return errors.New("не указана фамилия кандидата")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return errors.New("почта имеет неправильный формат")
		}
	}
	if c.ExperienceYears < 0 {
		return errors.New("опыт работы не может быть отрицательным")
	}
	if c.CurrentSalary < 0 || c.ExpectedSalary < 0 {
		return errors.New("зарплата не может быть отрицательной")
	}
	return c.Source.Validate()
}

// CandidateEditData частичное обновление кандидата, переданы только изменяемые поля
type CandidateEditData struct {
	FirstName       *string                 `json:"first_name"`
	LastName        *string                 `json:"last_name"`
	Email           *string                 `json:"email"`
	Phone           *string                 `json:"phone"`
	Position        *string                 `json:"position"`
	Department      *string                 `json:"department"`
	Source          *models.CandidateSource `json:"source"`
	ExperienceYears *int                    `json:"experience_years"`
	CurrentSalary   *float64                `json:"current_salary"`
	ExpectedSalary  *float64                `json:"expected_salary"`
	HiringRequestID *uint                   `json:"hiring_request_id"`
	Comment         *string                 `json:"comment"`
	HROpinion       *models.Opinion         `json:"hr_opinion"`      // Мнение RH
	ManagerOpinion  *models.Opinion         `json:"manager_opinion"` // Мнение руководителя
	Status          *models.CandidateStatus `json:"status"`          // Ручная смена статуса
	StatusComment   string                  `json:"status_comment"`  // Коментарий к смене статуса
}

func (c CandidateEditData) Validate() error {
	if c.FirstName != nil && strings.TrimSpace(*c.FirstName) == "" {
		return errors.New("не указано имя кандидата")
	}
	if c.LastName != nil && strings.TrimSpace(*c.LastName) == "" {
		return errors.New("не указана фамилия кандидата")
	}
	if c.Email != nil && *c.Email != "" {
		if _, err := mail.ParseAddress(*c.Email); err != nil {
			return errors.New("почта имеет неправильный формат")
		}
	}
	if c.Source != nil {
		if err := c.Source.Validate(); err != nil {
			return err
		}
	}
	if c.HROpinion != nil {
		if err := c.HROpinion.Validate(); err != nil {
			return err
		}
	}
	if c.ManagerOpinion != nil {
		if err := c.ManagerOpinion.Validate(); err != nil {
			return err
		}
	}
	if c.Status != nil {
		if err := c.Status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetUpdMap простые поля кандидата для обновления
func (c CandidateEditData) GetUpdMap() map[string]interface{} {
	updMap := map[string]interface{}{}
	if c.FirstName != nil {
		updMap["first_name"] = strings.TrimSpace(*c.FirstName)
	}
	if c.LastName != nil {
		updMap["last_name"] = strings.TrimSpace(*c.LastName)
	}
	if c.Email != nil {
		updMap["email"] = *c.Email
	}
	if c.Phone != nil {
		updMap["phone"] = *c.Phone
	}
	if c.Position != nil {
		updMap["position"] = *c.Position
	}
	if c.Department != nil {
		updMap["department"] = *c.Department
	}
	if c.Source != nil {
		updMap["source"] = *c.Source
	}
	if c.ExperienceYears != nil {
		updMap["experience_years"] = *c.ExperienceYears
	}
	if c.CurrentSalary != nil {
		updMap["current_salary"] = *c.CurrentSalary
	}
	if c.ExpectedSalary != nil {
		updMap["expected_salary"] = *c.ExpectedSalary
	}
	if c.HiringRequestID != nil {
		if *c.HiringRequestID == 0 {
			updMap["hiring_request_id"] = nil
		} else {
			updMap["hiring_request_id"] = *c.HiringRequestID
		}
	}
	if c.Comment != nil {
		updMap["comment"] = *c.Comment
	}
	return updMap
}

type OpinionData struct {
	HROpinion      *models.Opinion `json:"hr_opinion"`
	ManagerOpinion *models.Opinion `json:"manager_opinion"`
	Comment        string          `json:"comment"`
}

func (o OpinionData) Validate() error {
	if o.HROpinion == nil && o.ManagerOpinion == nil {
		return errors.New("не указано ни одного мнения")
	}
	if o.HROpinion != nil {
		if err := o.HROpinion.Validate(); err != nil {
			return err
		}
	}
	if o.ManagerOpinion != nil {
		return o.ManagerOpinion.Validate()
	}
	return nil
}

type StatusChangeData struct {
	Status  models.CandidateStatus `json:"status"`
	Comment string                 `json:"comment"`
}

func (s StatusChangeData) Validate() error {
	return s.Status.Validate()
}

type CandidateFilter struct {
	apimodels.Pagination
	Search          string                 `json:"search"`            // Поиск по ФИО/почте
	Status          models.CandidateStatus `json:"status"`            // Статус
	Department      string                 `json:"department"`        // Подразделение
	Source          models.CandidateSource `json:"source"`            // Источник
	HiringRequestID uint                   `json:"hiring_request_id"` // Заявка
}

func (f CandidateFilter) Validate() error {
	if f.Status != "" {
		return f.Status.Validate()
	}
	return nil
}

type CandidateView struct {
	CandidateData
	ID                 uint                   `json:"id"`
	FullName           string                 `json:"full_name"`
	Status             models.CandidateStatus `json:"status"`
	StatusName         string                 `json:"status_name"`
	HROpinion          models.Opinion         `json:"hr_opinion"`
	ManagerOpinion     models.Opinion         `json:"manager_opinion"`
	SourceName         string                 `json:"source_name"`
	HiringRequestTitle string                 `json:"hiring_request_title"`
	HasResume          bool                   `json:"has_resume"`
	ResumeFileName     string                 `json:"resume_file_name"`
	Version            int                    `json:"version"`
	CreatedAt          time.Time              `json:"created_at"`
}

func Convert(rec dbmodels.Candidate) CandidateView {
	result := CandidateView{
		CandidateData: CandidateData{
			FirstName:       rec.FirstName,
			LastName:        rec.LastName,
			Email:           rec.Email,
			Phone:           rec.Phone,
			Position:        rec.Position,
			Department:      rec.Department,
			Source:          rec.Source,
			ExperienceYears: rec.ExperienceYears,
			CurrentSalary:   rec.CurrentSalary,
			ExpectedSalary:  rec.ExpectedSalary,
			HiringRequestID: rec.HiringRequestID,
			Comment:         rec.Comment,
		},
		ID:             rec.ID,
		FullName:       rec.GetFullName(),
		Status:         rec.Status,
		StatusName:     rec.Status.ToHuman(),
		HROpinion:      rec.HROpinion,
		ManagerOpinion: rec.ManagerOpinion,
		SourceName:     rec.Source.ToHuman(),
		HasResume:      rec.ResumeFileKey != "",
		ResumeFileName: rec.ResumeFileName,
		Version:        rec.Version,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.HiringRequest != nil {
		result.HiringRequestTitle = rec.HiringRequest.JobTitle
	}
	return result
}

type HistoryView struct {
	ID            uint                   `json:"id"`
	OldStatus     models.CandidateStatus `json:"old_status"`
	NewStatus     models.CandidateStatus `json:"new_status"`
	Label         string                 `json:"label"`
	Trigger       string                 `json:"trigger"`
	ChangedBy     uint                   `json:"changed_by"`
	ChangedByName string                 `json:"changed_by_name"`
	Comment       string                 `json:"comment"`
	ChangedAt     string                 `json:"changed_at"`
}

func ConvertHistory(rec dbmodels.StatusHistory) HistoryView {
	return HistoryView{
		ID:            rec.ID,
		OldStatus:     rec.OldStatus,
		NewStatus:     rec.NewStatus,
		Label:         rec.Label,
		Trigger:       rec.Trigger,
		ChangedBy:     rec.ChangedBy,
		ChangedByName: rec.ChangedByName,
		Comment:       rec.Comment,
		ChangedAt:     helpers.FormatDateTime(rec.CreatedAt),
	}
}
