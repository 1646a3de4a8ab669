package interviewhandler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	candidatelifecycle "hr-pipeline-backend/lib/candidate-lifecycle"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	interviewstore "hr-pipeline-backend/lib/interview/store"
	notificationhandler "hr-pipeline-backend/lib/notification"
	usersstore "hr-pipeline-backend/lib/users/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	"hr-pipeline-backend/lib/utils/helpers"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	interviewapimodels "hr-pipeline-backend/models/api/interview"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(actor models.Actor, candidateID uint, data interviewapimodels.InterviewCreateData) (*interviewapimodels.InterviewView, error)
	GetByID(id uint) (*interviewapimodels.InterviewView, error)
	ListByCandidate(candidateID uint) ([]interviewapimodels.InterviewView, error)
	Update(ctx context.Context, actor models.Actor, id uint, data interviewapimodels.InterviewEditData) (*interviewapimodels.InterviewView, error)
	SetResult(ctx context.Context, actor models.Actor, id uint, data interviewapimodels.InterviewResultData) (*candidateapimodels.CandidateViewExt, error)
	Delete(actor models.Actor, id uint) error
	SendReminders(ctx context.Context, now time.Time, lead time.Duration) (sent int, err error)
}

var Instance Provider

type Options struct {
	Lifecycle candidatelifecycle.Provider
	Notifier  notificationhandler.Provider
}

func NewHandler(DB *gorm.DB, opts Options) {
	Instance = NewInstance(DB, opts)
}

func NewInstance(DB *gorm.DB, opts Options) Provider {
	instance := impl{
		store:          interviewstore.NewInstance(DB),
		candidateStore: candidatestore.NewInstance(DB),
		userStore:      usersstore.NewInstance(DB),
		lifecycle:      opts.Lifecycle,
		notifier:       opts.Notifier,
	}
	initchecker.CheckInit(
		"lifecycle", instance.lifecycle,
		"notifier", instance.notifier,
	)
	return instance
}

type impl struct {
	store          interviewstore.Provider
	candidateStore candidatestore.Provider
	userStore      usersstore.Provider
	lifecycle      candidatelifecycle.Provider
	notifier       notificationhandler.Provider
}

func (i impl) Create(actor models.Actor, candidateID uint, data interviewapimodels.InterviewCreateData) (*interviewapimodels.InterviewView, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	cand, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if cand == nil {
		return nil, apperrors.NewNotFound("кандидат", candidateID)
	}
	if cand.Status.IsTerminal() {
		return nil, apperrors.NewValidationf("кандидат в статусе %q, назначение собеседования невозможно", cand.Status.ToHuman())
	}
	if err = i.checkInterviewer(data.InterviewerID); err != nil {
		return nil, err
	}
	if data.InterviewerID != nil && *data.InterviewerID == 0 {
		data.InterviewerID = nil
	}
	rec := dbmodels.Interview{
		CandidateID:   candidateID,
		Type:          data.Type,
		ScheduledAt:   data.ScheduledAt,
		Result:        models.InterviewResultPending,
		Comments:      data.Comments,
		InterviewerID: data.InterviewerID,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.
			WithField("candidate_id", candidateID).
			WithField("user_id", actor.UserID).
			WithError(err).
			Error("ошибка создания собеседования")
		return nil, apperrors.NewStorage(err, "ошибка создания собеседования")
	}
	return i.GetByID(id)
}

func (i impl) GetByID(id uint) (*interviewapimodels.InterviewView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения собеседования")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("собеседование", id)
	}
	result := interviewapimodels.Convert(*rec)
	return &result, nil
}

func (i impl) ListByCandidate(candidateID uint) ([]interviewapimodels.InterviewView, error) {
	cand, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if cand == nil {
		return nil, apperrors.NewNotFound("кандидат", candidateID)
	}
	list, err := i.store.ListByCandidate(candidateID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения списка собеседований")
	}
	result := make([]interviewapimodels.InterviewView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) Update(ctx context.Context, actor models.Actor, id uint, data interviewapimodels.InterviewEditData) (*interviewapimodels.InterviewView, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения собеседования")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("собеседование", id)
	}
	if err = i.checkInterviewer(data.InterviewerID); err != nil {
		return nil, err
	}
	if data.Result != nil {
		// результат меняет статус кандидата, остальные поля сохраняются в той же транзакции
		if _, err = i.lifecycle.UpdateInterviewWithResult(ctx, actor, id, *data.Result, data.GetUpdMap()); err != nil {
			return nil, err
		}
	} else if err = i.store.Update(id, data.GetUpdMap()); err != nil {
		return nil, apperrors.NewStorage(err, "ошибка обновления собеседования")
	}
	return i.GetByID(id)
}

func (i impl) SetResult(ctx context.Context, actor models.Actor, id uint, data interviewapimodels.InterviewResultData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	rec, err := i.lifecycle.SetInterviewResult(ctx, actor, id, data.Result, data.Comments)
	if err != nil {
		return nil, err
	}
	result := candidateapimodels.ConvertExt(*rec)
	return &result, nil
}

func (i impl) Delete(actor models.Actor, id uint) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения собеседования")
	}
	if rec == nil {
		return apperrors.NewNotFound("собеседование", id)
	}
	if rec.Result != models.InterviewResultPending {
		return apperrors.NewValidation("нельзя удалить собеседование с результатом")
	}
	if err = i.store.Delete(id); err != nil {
		return apperrors.NewStorage(err, "ошибка удаления собеседования")
	}
	log.
		WithField("interview_id", id).
		WithField("user_id", actor.UserID).
		Info("собеседование удалено")
	return nil
}

// SendReminders уведомляет о собеседованиях, которые начнутся в ближайшие lead
func (i impl) SendReminders(ctx context.Context, now time.Time, lead time.Duration) (sent int, err error) {
	list, err := i.store.ListForReminder(now, now.Add(lead))
	if err != nil {
		return 0, apperrors.NewStorage(err, "ошибка получения собеседований для напоминания")
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		candidateName := ""
		if rec.Candidate != nil {
			candidateName = rec.Candidate.GetFullName()
		}
		data := models.GetNotificationInterviewReminder(rec.ID, candidateName, rec.Type, helpers.FormatDateTime(rec.ScheduledAt))
		delivered := 0
		if rec.InterviewerID != nil {
			delivered = i.notifier.NotifyUsers(ctx, []uint{*rec.InterviewerID}, data)
		} else {
			delivered = i.notifier.NotifyRoles(ctx, []models.UserRole{models.RHRole}, data)
		}
		logger := log.
			WithField("interview_id", rec.ID).
			WithField("candidate_id", rec.CandidateID)
		if delivered == 0 {
			logger.Warn("напоминание о собеседовании некому отправить")
		}
		if err = i.store.Update(rec.ID, map[string]interface{}{"reminder_sent": true}); err != nil {
			logger.WithError(err).Error("ошибка отметки отправленного напоминания")
			continue
		}
		sent++
	}
	return sent, nil
}

func (i impl) checkInterviewer(interviewerID *uint) error {
	if interviewerID == nil || *interviewerID == 0 {
		return nil
	}
	user, err := i.userStore.GetByID(*interviewerID)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения интервьюера")
	}
	if user == nil {
		return apperrors.NewValidationf("интервьюер %v не найден", *interviewerID)
	}
	return nil
}
