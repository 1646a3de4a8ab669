package hiringrequesthandler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"hr-pipeline-backend/lib/events"
	hiringrequeststore "hr-pipeline-backend/lib/hiring-request/store"
	hrvalidationstore "hr-pipeline-backend/lib/hiring-request/validation-store"
	notificationhandler "hr-pipeline-backend/lib/notification"
	usersstore "hr-pipeline-backend/lib/users/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/models"
	hiringrequestapimodels "hr-pipeline-backend/models/api/hiring-request"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(actor models.Actor, data hiringrequestapimodels.HiringRequestData) (id uint, err error)
	GetByID(id uint) (*hiringrequestapimodels.HiringRequestView, error)
	List(filter hiringrequestapimodels.HiringRequestFilter) (list []hiringrequestapimodels.HiringRequestView, rowCount int64, err error)
	Update(actor models.Actor, id uint, data hiringrequestapimodels.HiringRequestData) error
	Delete(actor models.Actor, id uint) error
	ChangeStatus(ctx context.Context, actor models.Actor, id uint, status models.HRStatus) error
	Validate(ctx context.Context, actor models.Actor, id uint, data hiringrequestapimodels.ValidateData) (*hiringrequestapimodels.HiringRequestView, error)
	ValidationHistory(id uint) ([]hiringrequestapimodels.ValidationView, error)
}

var Instance Provider

type Options struct {
	Notifier notificationhandler.Provider
	Events   events.Provider
}

func NewHandler(DB *gorm.DB, opts Options) {
	Instance = NewInstance(DB, opts)
}

func NewInstance(DB *gorm.DB, opts Options) Provider {
	if opts.Events == nil {
		opts.Events = events.NewInstance(nil)
	}
	instance := impl{
		db:         DB,
		store:      hiringrequeststore.NewInstance(DB),
		usersStore: usersstore.NewInstance(DB),
		notifier:   opts.Notifier,
		events:     opts.Events,
	}
	initchecker.CheckInit(
		"db", instance.db,
		"notifier", instance.notifier,
	)
	return instance
}

type impl struct {
	db         *gorm.DB
	store      hiringrequeststore.Provider
	usersStore usersstore.Provider
	notifier   notificationhandler.Provider
	events     events.Provider
}

func (i impl) Create(actor models.Actor, data hiringrequestapimodels.HiringRequestData) (id uint, err error) {
	if err = i.checkRecruiter(data.RecruiterID); err != nil {
		return 0, err
	}
	rec := dbmodels.HiringRequest{
		JobTitle:                     data.JobTitle,
		Service:                      data.Service,
		Description:                  data.Description,
		OpenedPositions:              data.OpenedPositions,
		Status:                       models.HRStatusPendingValidation,
		ValidationRHStatus:           models.ValidationPending,
		ValidationPlantManagerStatus: models.ValidationPending,
		ValidationRecruitmentStatus:  models.ValidationPending,
		RequesterID:                  actor.UserID,
		RecruiterID:                  data.RecruiterID,
		HiringCost:                   data.HiringCost,
	}
	if rec.OpenedPositions == 0 {
		rec.OpenedPositions = 1
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("user_id", actor.UserID).
			WithError(err).
			Error("ошибка создания заявки на подбор")
		return 0, apperrors.NewStorage(err, "ошибка создания заявки на подбор")
	}
	return id, nil
}

func (i impl) GetByID(id uint) (*hiringrequestapimodels.HiringRequestView, error) {
	rec, err := i.get(i.store, id)
	if err != nil {
		return nil, err
	}
	result := hiringrequestapimodels.Convert(*rec)
	return &result, nil
}

func (i impl) List(filter hiringrequestapimodels.HiringRequestFilter) (list []hiringrequestapimodels.HiringRequestView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, apperrors.NewStorage(err, "ошибка получения списка заявок на подбор")
	}
	list = make([]hiringrequestapimodels.HiringRequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, hiringrequestapimodels.Convert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Update(actor models.Actor, id uint, data hiringrequestapimodels.HiringRequestData) error {
	rec, err := i.get(i.store, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RHRole && rec.RequesterID != actor.UserID {
		return apperrors.NewForbidden("изменять заявку могут только её автор и RH")
	}
	if err = i.checkRecruiter(data.RecruiterID); err != nil {
		return err
	}
	if err = i.store.Update(id, data.GetUpdMap()); err != nil {
		return apperrors.NewStorage(err, "ошибка обновления заявки на подбор")
	}
	return nil
}

func (i impl) Delete(actor models.Actor, id uint) error {
	if actor.Role != models.RHRole {
		return apperrors.NewForbidden("удалять заявки на подбор может только RH")
	}
	if _, err := i.get(i.store, id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return apperrors.NewStorage(err, "ошибка удаления заявки на подбор")
	}
	log.
		WithField("request_id", id).
		WithField("user_id", actor.UserID).
		Info("заявка на подбор удалена")
	return nil
}

func (i impl) ChangeStatus(ctx context.Context, actor models.Actor, id uint, status models.HRStatus) error {
	if !actor.Role.CanGiveOpinion() {
		return apperrors.NewForbidden("менять статус заявки могут только RH и руководитель")
	}
	if !status.IsManualAllowed() {
		return apperrors.NewValidationf("статус %v нельзя установить вручную", status)
	}
	rec, err := i.get(i.store, id)
	if err != nil {
		return err
	}
	if rec.Status == status {
		return nil
	}
	if err = i.store.Update(id, map[string]interface{}{"status": status}); err != nil {
		return apperrors.NewStorage(err, "ошибка обновления статуса заявки на подбор")
	}
	i.publishStatus(ctx, actor, id, rec.Status, status)
	return nil
}

// Validate фиксирует решение по одному шагу согласования и пересчитывает статус заявки
func (i impl) Validate(ctx context.Context, actor models.Actor, id uint, data hiringrequestapimodels.ValidateData) (*hiringrequestapimodels.HiringRequestView, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	if !data.Step.IsAllowedFor(actor.Role) {
		return nil, apperrors.NewForbidden("роль пользователя не позволяет выполнить этот шаг согласования")
	}
	var rec *dbmodels.HiringRequest
	var newStatus models.HRStatus
	err := i.db.Transaction(func(tx *gorm.DB) (err error) {
		store := hiringrequeststore.NewInstance(tx)
		rec, err = i.get(store, id)
		if err != nil {
			return err
		}
		if rec.Status != models.HRStatusPendingValidation {
			return apperrors.NewValidationf("заявка в статусе %q не ожидает согласования", rec.Status.ToHuman())
		}
		flags := rec.ValidationFlags()
		flags[data.Step] = data.Decision
		newStatus = ResolveStatus(rec.Status, flags)

		updMap := map[string]interface{}{
			dbmodels.ValidationColumn(data.Step): data.Decision,
		}
		if newStatus != rec.Status {
			updMap["status"] = newStatus
		}
		if err = store.Update(id, updMap); err != nil {
			return apperrors.NewStorage(err, "ошибка обновления заявки на подбор")
		}
		i.saveAudit(tx, actor, id, data)
		return nil
	})
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка согласования заявки на подбор")
	}

	log.
		WithField("request_id", id).
		WithField("step", data.Step).
		WithField("decision", data.Decision).
		WithField("new_status", newStatus).
		Info("решение по заявке на подбор сохранено")
	i.notifyValidation(ctx, actor, *rec, data, newStatus)
	if newStatus != rec.Status {
		i.publishStatus(ctx, actor, id, rec.Status, newStatus)
	}
	return i.GetByID(id)
}

func (i impl) ValidationHistory(id uint) ([]hiringrequestapimodels.ValidationView, error) {
	if _, err := i.get(i.store, id); err != nil {
		return nil, err
	}
	list, err := hrvalidationstore.NewInstance(i.db).List(id)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения истории согласования")
	}
	result := make([]hiringrequestapimodels.ValidationView, 0, len(list))
	for _, rec := range list {
		result = append(result, hiringrequestapimodels.ConvertValidation(rec))
	}
	return result, nil
}

// ResolveStatus статус заявки по флагам согласования: отказ на любом шаге отменяет заявку,
// согласование всех трёх шагов открывает вакансию
func ResolveStatus(current models.HRStatus, flags map[models.ValidationStep]models.ValidationStatus) models.HRStatus {
	approved := 0
	for _, decision := range flags {
		if decision == models.ValidationRejected {
			return models.HRStatusCancelled
		}
		if decision == models.ValidationApproved {
			approved++
		}
	}
	if approved == 3 {
		return models.HRStatusVacant
	}
	return current
}

func (i impl) get(store hiringrequeststore.Provider, id uint) (*dbmodels.HiringRequest, error) {
	rec, err := store.GetByID(id)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения заявки на подбор")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("заявка на подбор", id)
	}
	return rec, nil
}

func (i impl) checkRecruiter(recruiterID *uint) error {
	if recruiterID == nil || *recruiterID == 0 {
		return nil
	}
	user, err := i.usersStore.GetByID(*recruiterID)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if user == nil {
		return apperrors.NewValidationf("рекрутер %v не найден", *recruiterID)
	}
	return nil
}

func (i impl) saveAudit(tx *gorm.DB, actor models.Actor, id uint, data hiringrequestapimodels.ValidateData) {
	rec := dbmodels.HiringRequestValidation{
		HiringRequestID: id,
		Step:            data.Step,
		Decision:        data.Decision,
		Comment:         data.Comment,
		UserID:          actor.UserID,
		UserName:        actor.GetName(),
	}
	err := tx.Transaction(func(tx *gorm.DB) error {
		_, err := hrvalidationstore.NewInstance(tx).Create(rec)
		return err
	})
	if err != nil {
		log.
			WithField("request_id", id).
			WithField("step", data.Step).
			WithError(err).
			Error("ошибка сохранения истории согласования заявки")
	}
}

func (i impl) notifyValidation(ctx context.Context, actor models.Actor, rec dbmodels.HiringRequest, data hiringrequestapimodels.ValidateData, newStatus models.HRStatus) {
	createdBy := actor.UserID
	switch {
	case data.Decision == models.ValidationRejected:
		msg := models.GetNotificationHRRejected(data.Step, rec.ID, rec.JobTitle, actor.GetName(), data.Comment)
		msg.CreatedBy = &createdBy
		i.notifier.NotifyUsers(ctx, []uint{rec.RequesterID}, msg)
	case data.Step == models.ValidationStepRH:
		msg := models.GetNotificationHRValidated(data.Step, rec.ID, rec.JobTitle, actor.GetName(), data.Comment)
		msg.CreatedBy = &createdBy
		i.notifier.NotifyRoles(ctx, []models.UserRole{models.ManagerRole}, msg)
	case data.Step == models.ValidationStepManager:
		msg := models.GetNotificationHRValidated(data.Step, rec.ID, rec.JobTitle, actor.GetName(), data.Comment)
		msg.CreatedBy = &createdBy
		i.notifier.NotifyRoles(ctx, []models.UserRole{models.RHRole}, msg)
	}
	if newStatus == models.HRStatusVacant {
		msg := models.GetNotificationHRApproved(rec.ID, rec.JobTitle)
		msg.CreatedBy = &createdBy
		i.notifier.NotifyUsers(ctx, []uint{rec.RequesterID}, msg)
	}
}

func (i impl) publishStatus(ctx context.Context, actor models.Actor, id uint, oldStatus, newStatus models.HRStatus) {
	i.events.Publish(ctx, models.EventHiringRequestStatusChanged, models.HiringRequestStatusEvent{
		HiringRequestID: id,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		ChangedBy:       actor.UserID,
		ChangedAt:       time.Now(),
	})
}
