package offerapimodels

import (
	"time"

	"github.com/pkg/errors"
	"hr-pipeline-backend/lib/utils/helpers"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type OfferSendData struct {
	ProposedSalary float64    `json:"proposed_salary"` // Предлагаемая ЗП
	StartDate      *time.Time `json:"start_date"`      // Предполагаемая дата выхода
	Comment        string     `json:"comment"`
}

func (o OfferSendData) Validate() error {
	if o.ProposedSalary < 0 {
		return errors.New("зарплата не может быть отрицательной")
	}
	return nil
}

type OfferResponseData struct {
	Response         models.OfferResponse `json:"response"`           // Ответ кандидата
	ActualHiringDate *time.Time           `json:"actual_hiring_date"` // Фактическая дата выхода
	Comment          string               `json:"comment"`
}

func (o OfferResponseData) Validate() error {
	return o.Response.Validate()
}

type OfferView struct {
	ID               uint                 `json:"id"`
	CandidateID      uint                 `json:"candidate_id"`
	SentDate         string               `json:"sent_date"`
	Response         models.OfferResponse `json:"response"`
	ResponseName     string               `json:"response_name"`
	ResponseDate     string               `json:"response_date"`
	ActualHiringDate string               `json:"actual_hiring_date"`
	StartDate        string               `json:"start_date"`
	ProposedSalary   float64              `json:"proposed_salary"`
	Comment          string               `json:"comment"`
}

func Convert(rec dbmodels.JobOffer) OfferView {
	return OfferView{
		ID:               rec.ID,
		CandidateID:      rec.CandidateID,
		SentDate:         helpers.FormatDate(&rec.SentDate),
		Response:         rec.Response,
		ResponseName:     rec.Response.ToHuman(),
		ResponseDate:     helpers.FormatDate(rec.ResponseDate),
		ActualHiringDate: helpers.FormatDate(rec.ActualHiringDate),
		StartDate:        helpers.FormatDate(rec.StartDate),
		ProposedSalary:   rec.ProposedSalary,
		Comment:          rec.Comment,
	}
}

type MedicalVisitData struct {
	ScheduledAt time.Time `json:"scheduled_at"` // Дата медосмотра
	Comment     string    `json:"comment"`
}

func (m MedicalVisitData) Validate() error {
	if m.ScheduledAt.IsZero() {
		return errors.New("не указана дата медосмотра")
	}
	return nil
}

type MedicalVisitResultData struct {
	Result  models.MedicalResult `json:"result"`
	Comment string               `json:"comment"`
}

func (m MedicalVisitResultData) Validate() error {
	return m.Result.Validate()
}

type MedicalVisitView struct {
	ID          uint                 `json:"id"`
	CandidateID uint                 `json:"candidate_id"`
	ScheduledAt string               `json:"scheduled_at"`
	Result      models.MedicalResult `json:"result"`
	ResultName  string               `json:"result_name"`
	Comment     string               `json:"comment"`
}

func ConvertMedicalVisit(rec dbmodels.MedicalVisit) MedicalVisitView {
	return MedicalVisitView{
		ID:          rec.ID,
		CandidateID: rec.CandidateID,
		ScheduledAt: helpers.FormatDateTime(rec.ScheduledAt),
		Result:      rec.Result,
		ResultName:  rec.Result.ToHuman(),
		Comment:     rec.Comment,
	}
}
