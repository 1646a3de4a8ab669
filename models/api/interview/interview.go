package interviewapimodels

import (
	"time"

	"github.com/pkg/errors"
	"hr-pipeline-backend/lib/utils/helpers"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type InterviewCreateData struct {
	Type          models.InterviewType `json:"type"`           // Тип собеседования
	ScheduledAt   time.Time            `json:"scheduled_at"`   // Дата и время собеседования (RFC3339)
	InterviewerID *uint                `json:"interviewer_id"` // Интервьюер
	Comments      string               `json:"comments"`       // Коментарий
}

func (i InterviewCreateData) Validate() error {
	if err := i.Type.Validate(); err != nil {
		return err
	}
	if i.ScheduledAt.IsZero() {
		return errors.New("не указана дата собеседования")
	}
	return nil
}

type InterviewEditData struct {
	ScheduledAt   *time.Time              `json:"scheduled_at"`
	InterviewerID *uint                   `json:"interviewer_id"`
	Comments      *string                 `json:"comments"`
	Result        *models.InterviewResult `json:"result"` // Результат, ADMITTED/REJECTED меняют статус кандидата
}

func (i InterviewEditData) Validate() error {
	if i.ScheduledAt != nil && i.ScheduledAt.IsZero() {
		return errors.New("некорректная дата собеседования")
	}
	if i.Result != nil {
		return i.Result.Validate()
	}
	return nil
}

// GetUpdMap поля собеседования, не влияющие на статус кандидата
func (i InterviewEditData) GetUpdMap() map[string]interface{} {
	updMap := map[string]interface{}{}
	if i.ScheduledAt != nil {
		updMap["scheduled_at"] = *i.ScheduledAt
		updMap["reminder_sent"] = false
	}
	if i.InterviewerID != nil {
		if *i.InterviewerID == 0 {
			updMap["interviewer_id"] = nil
		} else {
			updMap["interviewer_id"] = *i.InterviewerID
		}
	}
	if i.Comments != nil {
		updMap["comments"] = *i.Comments
	}
	return updMap
}

type InterviewResultData struct {
	Result   models.InterviewResult `json:"result"`   // ADMITTED или REJECTED
	Comments *string                `json:"comments"` // Коментарий интервьюера
}

func (i InterviewResultData) Validate() error {
	if err := i.Result.Validate(); err != nil {
		return err
	}
	if i.Result == models.InterviewResultPending {
		return errors.New("результат собеседования не указан")
	}
	return nil
}

type InterviewView struct {
	ID              uint                   `json:"id"`
	CandidateID     uint                   `json:"candidate_id"`
	Type            models.InterviewType   `json:"type"`
	TypeName        string                 `json:"type_name"`
	ScheduledAt     time.Time              `json:"scheduled_at"`
	ScheduledAtText string                 `json:"scheduled_at_text"`
	Result          models.InterviewResult `json:"result"`
	ResultName      string                 `json:"result_name"`
	Comments        string                 `json:"comments"`
	InterviewerID   *uint                  `json:"interviewer_id"`
	InterviewerName string                 `json:"interviewer_name"`
}

func Convert(rec dbmodels.Interview) InterviewView {
	result := InterviewView{
		ID:              rec.ID,
		CandidateID:     rec.CandidateID,
		Type:            rec.Type,
		TypeName:        rec.Type.ToHuman(),
		ScheduledAt:     rec.ScheduledAt,
		ScheduledAtText: helpers.FormatDateTime(rec.ScheduledAt),
		Result:          rec.Result,
		ResultName:      rec.Result.ToHuman(),
		Comments:        rec.Comments,
		InterviewerID:   rec.InterviewerID,
	}
	if rec.Interviewer != nil {
		result.InterviewerName = rec.Interviewer.GetFullName()
	}
	return result
}
