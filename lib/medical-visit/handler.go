package medicalvisithandler

import (
	"context"

	"gorm.io/gorm"
	candidatelifecycle "hr-pipeline-backend/lib/candidate-lifecycle"
	medicalvisitstore "hr-pipeline-backend/lib/medical-visit/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	offerapimodels "hr-pipeline-backend/models/api/offer"
)

type Provider interface {
	Schedule(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitData) (*candidateapimodels.CandidateViewExt, error)
	SetResult(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitResultData) (*candidateapimodels.CandidateViewExt, error)
	Get(candidateID uint) (*offerapimodels.MedicalVisitView, error)
}

var Instance Provider

func NewHandler(DB *gorm.DB, lifecycle candidatelifecycle.Provider) {
	Instance = NewInstance(DB, lifecycle)
}

func NewInstance(DB *gorm.DB, lifecycle candidatelifecycle.Provider) Provider {
	instance := impl{
		store:     medicalvisitstore.NewInstance(DB),
		lifecycle: lifecycle,
	}
	initchecker.CheckInit(
		"lifecycle", instance.lifecycle,
	)
	return instance
}

type impl struct {
	store     medicalvisitstore.Provider
	lifecycle candidatelifecycle.Provider
}

func (i impl) Schedule(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	rec, err := i.lifecycle.ScheduleMedicalVisit(ctx, actor, candidateID, data)
	if err != nil {
		return nil, err
	}
	result := candidateapimodels.ConvertExt(*rec)
	return &result, nil
}

func (i impl) SetResult(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.MedicalVisitResultData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	if data.Result == models.MedicalResultPending {
		return nil, apperrors.NewValidation("результат медосмотра не указан")
	}
	rec, err := i.lifecycle.SetMedicalVisitResult(ctx, actor, candidateID, data)
	if err != nil {
		return nil, err
	}
	result := candidateapimodels.ConvertExt(*rec)
	return &result, nil
}

func (i impl) Get(candidateID uint) (*offerapimodels.MedicalVisitView, error) {
	rec, err := i.store.GetByCandidate(candidateID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения медосмотра")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("медосмотр кандидата", candidateID)
	}
	result := offerapimodels.ConvertMedicalVisit(*rec)
	return &result, nil
}
