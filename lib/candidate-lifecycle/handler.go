package candidatelifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	"hr-pipeline-backend/lib/events"
	hiringrequeststore "hr-pipeline-backend/lib/hiring-request/store"
	interviewstore "hr-pipeline-backend/lib/interview/store"
	jobofferstore "hr-pipeline-backend/lib/job-offer/store"
	medicalvisitstore "hr-pipeline-backend/lib/medical-visit/store"
	notificationhandler "hr-pipeline-backend/lib/notification"
	statushistoryhandler "hr-pipeline-backend/lib/status-history"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	offerapimodels "hr-pipeline-backend/models/api/offer"
	dbmodels "hr-pipeline-backend/models/db"
)

// Provider единая точка изменения состояния кандидата.
// Каждая операция выполняется в одной транзакции: поля кандидата, статус,
// журнал статусов и связанная заявка на подбор сохраняются вместе или не сохраняются совсем.
// Уведомления и события отправляются после фиксации транзакции.
type Provider interface {
	UpdateCandidate(ctx context.Context, actor models.Actor, candidateID uint, data candidateapimodels.CandidateEditData) (*dbmodels.Candidate, error)
	SetOpinions(ctx context.Context, actor models.Actor, candidateID uint, data candidateapimodels.OpinionData) (*dbmodels.Candidate, error)
	ChangeStatus(ctx context.Context, actor models.Actor, candidateID uint, status models.CandidateStatus, comment string) (*dbmodels.Candidate, error)
	SetInterviewResult(ctx context.Context, actor models.Actor, interviewID uint, result models.InterviewResult, comments *string) (*dbmodels.Candidate, error)
	UpdateInterviewWithResult(ctx context.Context, actor models.Actor, interviewID uint, result models.InterviewResult, updMap map[string]interface{}) (*dbmodels.Candidate, error)
	SendOffer(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferSendData) (*dbmodels.Candidate, error)
	SetOfferResponse(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferResponseData) (*dbmodels.Candidate, error)
	ScheduleMedicalVisit(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitData) (*dbmodels.Candidate, error)
	SetMedicalVisitResult(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitResultData) (*dbmodels.Candidate, error)
}

var Instance Provider

type Options struct {
	Notifier notificationhandler.Provider
	Events   events.Provider
	Now      func() time.Time
}

func NewHandler(DB *gorm.DB, opts Options) {
	Instance = NewInstance(DB, opts)
}

func NewInstance(DB *gorm.DB, opts Options) Provider {
	if opts.Events == nil {
		opts.Events = events.NewInstance(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	instance := impl{
		db:       DB,
		notifier: opts.Notifier,
		events:   opts.Events,
		now:      opts.Now,
	}
	initchecker.CheckInit(
		"db", instance.db,
		"notifier", instance.notifier,
	)
	return instance
}

type impl struct {
	db       *gorm.DB
	notifier notificationhandler.Provider
	events   events.Provider
	now      func() time.Time
}

// txStores хранилища, привязанные к текущей транзакции
type txStores struct {
	candidate candidatestore.Provider
	interview interviewstore.Provider
	offer     jobofferstore.Provider
	medical   medicalvisitstore.Provider
	request   hiringrequeststore.Provider
	history   statushistoryhandler.Provider
}

func newTxStores(tx *gorm.DB) txStores {
	return txStores{
		candidate: candidatestore.NewInstance(tx),
		interview: interviewstore.NewInstance(tx),
		offer:     jobofferstore.NewInstance(tx),
		medical:   medicalvisitstore.NewInstance(tx),
		request:   hiringrequeststore.NewInstance(tx),
		history:   statushistoryhandler.NewHandlerWithTx(tx),
	}
}

// change результат применения триггера к кандидату
type change struct {
	trigger       Trigger
	candidate     dbmodels.Candidate
	oldStatus     models.CandidateStatus
	newStatus     models.CandidateStatus
	upd           map[string]interface{}
	comment       string
	interview     *dbmodels.Interview
	requestHired  bool
	requestStatus models.HRStatus
	changedAt     time.Time
}

func (c change) statusChanged() bool {
	return c.oldStatus != c.newStatus
}

type mutation func(s txStores, cand dbmodels.Candidate, ch *change) error

func (i impl) UpdateCandidate(ctx context.Context, actor models.Actor, candidateID uint, data candidateapimodels.CandidateEditData) (*dbmodels.Candidate, error) {
	trigger := TriggerEdit
	if data.HROpinion != nil || data.ManagerOpinion != nil {
		trigger = TriggerOpinion
	}
	if data.Status != nil {
		trigger = TriggerManual
	}
	return i.execute(ctx, actor, func(s txStores) (*change, error) {
		return i.apply(s, actor, candidateID, trigger, data.StatusComment, func(s txStores, cand dbmodels.Candidate, ch *change) error {
			if trigger != TriggerEdit && !actor.Role.CanGiveOpinion() {
				return apperrors.NewForbidden("изменять мнения и статус кандидата могут только RH и руководитель")
			}
			for k, v := range data.GetUpdMap() {
				ch.upd[k] = v
			}
			if data.HiringRequestID != nil && *data.HiringRequestID != 0 {
				request, err := s.request.GetByID(*data.HiringRequestID)
				if err != nil {
					return apperrors.NewStorage(err, "ошибка получения заявки на подбор")
				}
				if request == nil {
					return apperrors.NewValidationf("заявка на подбор %v не найдена", *data.HiringRequestID)
				}
			}

			hr, manager := cand.HROpinion, cand.ManagerOpinion
			if data.HROpinion != nil {
				hr = *data.HROpinion
			}
			if data.ManagerOpinion != nil {
				manager = *data.ManagerOpinion
			}
			opinionsChanged := hr != cand.HROpinion || manager != cand.ManagerOpinion
			if opinionsChanged {
				ch.upd["hr_opinion"] = hr
				ch.upd["manager_opinion"] = manager
			}

			switch trigger {
			case TriggerManual:
				ch.newStatus = *data.Status
			case TriggerOpinion:
				if opinionsChanged {
					ch.newStatus = ResolveOpinionStatus(cand.Status, hr, manager)
				}
			}
			return nil
		})
	})
}

func (i impl) SetOpinions(ctx context.Context, actor models.Actor, candidateID uint, data candidateapimodels.OpinionData) (*dbmodels.Candidate, error) {
	return i.UpdateCandidate(ctx, actor, candidateID, candidateapimodels.CandidateEditData{
		HROpinion:      data.HROpinion,
		ManagerOpinion: data.ManagerOpinion,
		StatusComment:  data.Comment,
	})
}

func (i impl) ChangeStatus(ctx context.Context, actor models.Actor, candidateID uint, status models.CandidateStatus, comment string) (*dbmodels.Candidate, error) {
	return i.UpdateCandidate(ctx, actor, candidateID, candidateapimodels.CandidateEditData{
		Status:        &status,
		StatusComment: comment,
	})
}

func (i impl) SetInterviewResult(ctx context.Context, actor models.Actor, interviewID uint, result models.InterviewResult, comments *string) (*dbmodels.Candidate, error) {
	updMap := map[string]interface{}{}
	if comments != nil {
		updMap["comments"] = *comments
	}
	return i.UpdateInterviewWithResult(ctx, actor, interviewID, result, updMap)
}

// UpdateInterviewWithResult результат и прочие поля собеседования сохраняются в одной транзакции со статусом кандидата
func (i impl) UpdateInterviewWithResult(ctx context.Context, actor models.Actor, interviewID uint, result models.InterviewResult, updMap map[string]interface{}) (*dbmodels.Candidate, error) {
	return i.execute(ctx, actor, func(s txStores) (*change, error) {
		interview, err := s.interview.GetByID(interviewID)
		if err != nil {
			return nil, apperrors.NewStorage(err, "ошибка получения собеседования")
		}
		if interview == nil {
			return nil, apperrors.NewNotFound("собеседование", interviewID)
		}
		comment := fmt.Sprintf("Entretien %s : %s", interview.Type.ToHuman(), result.ToHuman())
		return i.apply(s, actor, interview.CandidateID, TriggerInterview, comment, func(s txStores, cand dbmodels.Candidate, ch *change) error {
			fields := make(map[string]interface{}, len(updMap)+1)
			for key, value := range updMap {
				fields[key] = value
			}
			fields["result"] = result
			if err := s.interview.Update(interview.ID, fields); err != nil {
				return apperrors.NewStorage(err, "ошибка обновления собеседования")
			}
			interview.Result = result
			ch.interview = interview
			ch.newStatus = ResolveInterviewStatus(cand.Status, interview.Type, result)
			return nil
		})
	})
}

func (i impl) SendOffer(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferSendData) (*dbmodels.Candidate, error) {
	return i.execute(ctx, actor, func(s txStores) (*change, error) {
		return i.apply(s, actor, candidateID, TriggerOfferSent, data.Comment, func(s txStores, cand dbmodels.Candidate, ch *change) error {
			if cand.Status.IsTerminal() {
				return apperrors.NewValidationf("кандидат в статусе %q, отправка предложения невозможна", cand.Status.ToHuman())
			}
			rec := dbmodels.JobOffer{
				CandidateID:    cand.ID,
				SentDate:       ch.changedAt,
				Response:       models.OfferResponsePending,
				ProposedSalary: data.ProposedSalary,
				StartDate:      data.StartDate,
				Comment:        data.Comment,
			}
			existing, err := s.offer.GetByCandidate(cand.ID)
			if err != nil {
				return apperrors.NewStorage(err, "ошибка получения предложения")
			}
			if existing != nil {
				rec.ID = existing.ID
				rec.CreatedAt = existing.CreatedAt
			}
			if _, err = s.offer.Save(rec); err != nil {
				return apperrors.NewStorage(err, "ошибка сохранения предложения")
			}
			ch.newStatus = models.CandidateStatusOfferSent
			return nil
		})
	})
}

func (i impl) SetOfferResponse(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferResponseData) (*dbmodels.Candidate, error) {
	return i.execute(ctx, actor, func(s txStores) (*change, error) {
		comment := fmt.Sprintf("Réponse à l'offre : %s", data.Response.ToHuman())
		if data.Comment != "" {
			comment = data.Comment
		}
		return i.apply(s, actor, candidateID, TriggerOffer, comment, func(s txStores, cand dbmodels.Candidate, ch *change) error {
			offer, err := s.offer.GetByCandidate(cand.ID)
			if err != nil {
				return apperrors.NewStorage(err, "ошибка получения предложения")
			}
			if offer == nil {
				return apperrors.NewValidation("кандидату не отправлялось предложение о работе")
			}
			updMap := map[string]interface{}{
				"response":      data.Response,
				"response_date": ch.changedAt,
			}
			if data.Response == models.OfferResponseAccepted {
				hiringDate := ch.changedAt
				if data.ActualHiringDate != nil {
					hiringDate = *data.ActualHiringDate
				}
				updMap["actual_hiring_date"] = hiringDate
			}
			if data.Comment != "" {
				updMap["comment"] = data.Comment
			}
			if err = s.offer.Update(offer.ID, updMap); err != nil {
				return apperrors.NewStorage(err, "ошибка обновления предложения")
			}
			ch.newStatus = ResolveOfferStatus(cand.Status, data.Response)
			return nil
		})
	})
}

func (i impl) ScheduleMedicalVisit(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitData) (*dbmodels.Candidate, error) {
	return i.execute(ctx, actor, func(s txStores) (*change, error) {
		return i.apply(s, actor, candidateID, TriggerMedicalVisit, data.Comment, func(s txStores, cand dbmodels.Candidate, ch *change) error {
			if cand.Status.IsTerminal() {
				return apperrors.NewValidationf("кандидат в статусе %q, назначение медосмотра невозможно", cand.Status.ToHuman())
			}
			rec := dbmodels.MedicalVisit{
				CandidateID: cand.ID,
				ScheduledAt: data.ScheduledAt,
				Result:      models.MedicalResultPending,
				Comment:     data.Comment,
			}
			existing, err := s.medical.GetByCandidate(cand.ID)
			if err != nil {
				return apperrors.NewStorage(err, "ошибка получения медосмотра")
			}
			if existing != nil {
				rec.ID = existing.ID
				rec.CreatedAt = existing.CreatedAt
			}
			if _, err = s.medical.Save(rec); err != nil {
				return apperrors.NewStorage(err, "ошибка сохранения медосмотра")
			}
			ch.newStatus = models.CandidateStatusMedicalVisit
			return nil
		})
	})
}

func (i impl) SetMedicalVisitResult(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitResultData) (*dbmodels.Candidate, error) {
	return i.execute(ctx, actor, func(s txStores) (*change, error) {
		comment := fmt.Sprintf("Visite médicale : %s", data.Result.ToHuman())
		if data.Comment != "" {
			comment = data.Comment
		}
		return i.apply(s, actor, candidateID, TriggerMedicalVisit, comment, func(s txStores, cand dbmodels.Candidate, ch *change) error {
			visit, err := s.medical.GetByCandidate(cand.ID)
			if err != nil {
				return apperrors.NewStorage(err, "ошибка получения медосмотра")
			}
			if visit == nil {
				return apperrors.NewValidation("медосмотр кандидату не назначался")
			}
			updMap := map[string]interface{}{
				"result": data.Result,
			}
			if data.Comment != "" {
				updMap["comment"] = data.Comment
			}
			if err = s.medical.Update(visit.ID, updMap); err != nil {
				return apperrors.NewStorage(err, "ошибка обновления медосмотра")
			}
			ch.newStatus = ResolveMedicalVisitStatus(cand.Status, data.Result)
			return nil
		})
	})
}

// execute выполняет изменение в транзакции, после фиксации рассылает уведомления
// и возвращает актуальное состояние кандидата
func (i impl) execute(ctx context.Context, actor models.Actor, fn func(s txStores) (*change, error)) (*dbmodels.Candidate, error) {
	var ch *change
	err := i.db.Transaction(func(tx *gorm.DB) (err error) {
		ch, err = fn(newTxStores(tx))
		return err
	})
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка изменения кандидата")
	}
	i.afterCommit(ctx, actor, *ch)

	rec, err := candidatestore.NewInstance(i.db).GetByIDExt(ch.candidate.ID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("кандидат", ch.candidate.ID)
	}
	return rec, nil
}

func (i impl) apply(s txStores, actor models.Actor, candidateID uint, trigger Trigger, comment string, mutate mutation) (*change, error) {
	cand, err := s.candidate.GetByID(candidateID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if cand == nil {
		return nil, apperrors.NewNotFound("кандидат", candidateID)
	}
	ch := &change{
		trigger:   trigger,
		candidate: *cand,
		oldStatus: cand.Status,
		newStatus: cand.Status,
		upd:       map[string]interface{}{},
		comment:   comment,
		changedAt: i.now(),
	}
	if err = mutate(s, *cand, ch); err != nil {
		return nil, err
	}
	if ch.statusChanged() {
		ch.upd["status"] = ch.newStatus
	}
	if len(ch.upd) != 0 {
		err = s.candidate.UpdateVersioned(cand.ID, cand.Version, ch.upd)
		if err != nil {
			if errors.Is(err, candidatestore.ErrVersionConflict) {
				return nil, apperrors.NewConflict(err.Error())
			}
			return nil, apperrors.NewStorage(err, "ошибка обновления кандидата")
		}
	}
	if !ch.statusChanged() {
		return ch, nil
	}

	s.history.Save(cand.ID, ch.oldStatus, ch.newStatus, string(trigger), actor, comment)

	if ch.newStatus == models.CandidateStatusHired && cand.HiringRequestID != nil {
		updMap := map[string]interface{}{
			"status":             models.HRStatusHired,
			"actual_hiring_date": ch.changedAt,
		}
		if err = s.request.Update(*cand.HiringRequestID, updMap); err != nil {
			return nil, apperrors.NewStorage(err, "ошибка обновления заявки на подбор")
		}
		ch.requestHired = true
		if cand.HiringRequest != nil {
			ch.requestStatus = cand.HiringRequest.Status
		}
	}
	return ch, nil
}

func (i impl) afterCommit(ctx context.Context, actor models.Actor, ch change) {
	if !ch.statusChanged() {
		return
	}
	cand := ch.candidate
	logger := log.
		WithField("candidate_id", cand.ID).
		WithField("trigger", ch.trigger).
		WithField("old_status", ch.oldStatus).
		WithField("new_status", ch.newStatus)
	logger.Info("статус кандидата изменён")

	i.events.Publish(ctx, models.EventCandidateStatusChanged, models.CandidateStatusEvent{
		CandidateID:     cand.ID,
		HiringRequestID: cand.HiringRequestID,
		OldStatus:       ch.oldStatus,
		NewStatus:       ch.newStatus,
		Trigger:         string(ch.trigger),
		ChangedBy:       actor.UserID,
		ChangedAt:       ch.changedAt,
	})

	if ch.interview != nil && ch.interview.Result == models.InterviewResultAdmitted {
		data := models.GetNotificationInterviewAdmitted(cand.ID, cand.GetFullName(), cand.GetPosition(), ch.interview.Type)
		data.CreatedBy = actorRef(actor)
		created := i.notifier.NotifyRoles(ctx, []models.UserRole{models.CORole, models.RHRole}, data)
		logger.WithField("notifications", created).Debug("уведомления о допуске к собеседованию отправлены")
	}

	if ch.newStatus == models.CandidateStatusHired && cand.HiringRequest != nil {
		recipients := []uint{cand.HiringRequest.RequesterID}
		if cand.HiringRequest.RecruiterID != nil && *cand.HiringRequest.RecruiterID != cand.HiringRequest.RequesterID {
			recipients = append(recipients, *cand.HiringRequest.RecruiterID)
		}
		data := models.GetNotificationCandidateHired(cand.ID, cand.GetFullName(), cand.GetPosition())
		data.CreatedBy = actorRef(actor)
		i.notifier.NotifyUsers(ctx, recipients, data)
	}

	if ch.requestHired {
		i.events.Publish(ctx, models.EventHiringRequestStatusChanged, models.HiringRequestStatusEvent{
			HiringRequestID: *cand.HiringRequestID,
			OldStatus:       ch.requestStatus,
			NewStatus:       models.HRStatusHired,
			ChangedBy:       actor.UserID,
			ChangedAt:       ch.changedAt,
		})
	}
}

func actorRef(actor models.Actor) *uint {
	if actor.UserID == 0 {
		return nil
	}
	id := actor.UserID
	return &id
}
