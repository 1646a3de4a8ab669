package candidatehandler

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	candidatelifecycle "hr-pipeline-backend/lib/candidate-lifecycle"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	filestorage "hr-pipeline-backend/lib/file-storage"
	hiringrequeststore "hr-pipeline-backend/lib/hiring-request/store"
	statushistoryhandler "hr-pipeline-backend/lib/status-history"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

const resumeMaxSize = 10 << 20

var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".odt":  true,
	".rtf":  true,
	".txt":  true,
}

type Provider interface {
	Create(actor models.Actor, data candidateapimodels.CandidateData) (id uint, err error)
	GetByID(id uint) (*candidateapimodels.CandidateViewExt, error)
	List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error)
	Update(ctx context.Context, actor models.Actor, id uint, data candidateapimodels.CandidateEditData) (*candidateapimodels.CandidateViewExt, error)
	SetOpinions(ctx context.Context, actor models.Actor, id uint, data candidateapimodels.OpinionData) (*candidateapimodels.CandidateViewExt, error)
	ChangeStatus(ctx context.Context, actor models.Actor, id uint, data candidateapimodels.StatusChangeData) (*candidateapimodels.CandidateViewExt, error)
	Delete(ctx context.Context, actor models.Actor, id uint) error
	UploadResume(ctx context.Context, id uint, fileName, contentType string, body []byte) error
	GetResume(ctx context.Context, id uint) (body []byte, fileName string, err error)
	History(id uint) ([]candidateapimodels.HistoryView, error)
	ExportList(filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error)
}

var Instance Provider

type Options struct {
	Lifecycle   candidatelifecycle.Provider
	FileStorage filestorage.Provider
	Xls         xlsexport.Provider
}

func NewHandler(DB *gorm.DB, opts Options) {
	Instance = NewInstance(DB, opts)
}

func NewInstance(DB *gorm.DB, opts Options) Provider {
	if opts.FileStorage == nil {
		opts.FileStorage = filestorage.NewInstance(nil, "")
	}
	instance := impl{
		db:          DB,
		store:       candidatestore.NewInstance(DB),
		lifecycle:   opts.Lifecycle,
		history:     statushistoryhandler.NewHandlerWithTx(DB),
		fileStorage: opts.FileStorage,
		xls:         opts.Xls,
	}
	initchecker.CheckInit(
		"lifecycle", instance.lifecycle,
		"xls", instance.xls,
	)
	return instance
}

type impl struct {
	db          *gorm.DB
	store       candidatestore.Provider
	lifecycle   candidatelifecycle.Provider
	history     statushistoryhandler.Provider
	fileStorage filestorage.Provider
	xls         xlsexport.Provider
}

func (i impl) Create(actor models.Actor, data candidateapimodels.CandidateData) (id uint, err error) {
	if err = data.Validate(); err != nil {
		return 0, apperrors.NewValidation(err.Error())
	}
	if data.HiringRequestID != nil && *data.HiringRequestID == 0 {
		data.HiringRequestID = nil
	}
	if data.HiringRequestID != nil {
		request, err := hiringrequeststore.NewInstance(i.db).GetByID(*data.HiringRequestID)
		if err != nil {
			return 0, apperrors.NewStorage(err, "ошибка получения заявки на подбор")
		}
		if request == nil {
			return 0, apperrors.NewValidationf("заявка на подбор %v не найдена", *data.HiringRequestID)
		}
	}
	rec := dbmodels.Candidate{
		FirstName:       strings.TrimSpace(data.FirstName),
		LastName:        strings.TrimSpace(data.LastName),
		Email:           data.Email,
		Phone:           data.Phone,
		Position:        data.Position,
		Department:      data.Department,
		Source:          data.Source,
		ExperienceYears: data.ExperienceYears,
		CurrentSalary:   data.CurrentSalary,
		ExpectedSalary:  data.ExpectedSalary,
		Status:          models.CandidateStatusReceived,
		HiringRequestID: data.HiringRequestID,
		Comment:         data.Comment,
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		id, err = candidatestore.NewInstance(tx).Create(rec)
		if err != nil {
			return err
		}
		statushistoryhandler.NewHandlerWithTx(tx).
			Save(id, "", models.CandidateStatusReceived, string(candidatelifecycle.TriggerCreated), actor, "")
		return nil
	})
	if err != nil {
		log.
			WithField("user_id", actor.UserID).
			WithError(err).
			Error("ошибка создания кандидата")
		return 0, apperrors.NewStorage(err, "ошибка создания кандидата")
	}
	return id, nil
}

func (i impl) GetByID(id uint) (*candidateapimodels.CandidateViewExt, error) {
	rec, err := i.store.GetByIDExt(id)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("кандидат", id)
	}
	result := candidateapimodels.ConvertExt(*rec)
	return &result, nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []candidateapimodels.CandidateView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, apperrors.NewStorage(err, "ошибка получения списка кандидатов")
	}
	list = make([]candidateapimodels.CandidateView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, candidateapimodels.Convert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Update(ctx context.Context, actor models.Actor, id uint, data candidateapimodels.CandidateEditData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	return convertResult(i.lifecycle.UpdateCandidate(ctx, actor, id, data))
}

func (i impl) SetOpinions(ctx context.Context, actor models.Actor, id uint, data candidateapimodels.OpinionData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	return convertResult(i.lifecycle.SetOpinions(ctx, actor, id, data))
}

func (i impl) ChangeStatus(ctx context.Context, actor models.Actor, id uint, data candidateapimodels.StatusChangeData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	return convertResult(i.lifecycle.ChangeStatus(ctx, actor, id, data.Status, data.Comment))
}

func (i impl) Delete(ctx context.Context, actor models.Actor, id uint) error {
	if actor.Role != models.RHRole {
		return apperrors.NewForbidden("удалять кандидатов может только RH")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return apperrors.NewNotFound("кандидат", id)
	}
	if err = i.store.Delete(id); err != nil {
		return apperrors.NewStorage(err, "ошибка удаления кандидата")
	}
	logger := log.
		WithField("candidate_id", id).
		WithField("user_id", actor.UserID)
	if rec.ResumeFileKey != "" {
		if err = i.fileStorage.DeleteFile(ctx, rec.ResumeFileKey); err != nil {
			logger.WithError(err).Warn("не удалось удалить резюме кандидата")
		}
	}
	logger.Info("кандидат удалён")
	return nil
}

func (i impl) UploadResume(ctx context.Context, id uint, fileName, contentType string, body []byte) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !resumeExtensions[ext] {
		return apperrors.NewValidationf("недопустимый формат резюме: %q", ext)
	}
	if len(body) == 0 {
		return apperrors.NewValidation("файл резюме пуст")
	}
	if len(body) > resumeMaxSize {
		return apperrors.NewValidation("размер резюме превышает 10 МБ")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return apperrors.NewNotFound("кандидат", id)
	}
	key := fmt.Sprintf("candidates/%d/resume/%s%s", id, uuid.NewString(), ext)
	if err = i.fileStorage.UploadFile(ctx, key, body, contentType); err != nil {
		return apperrors.NewStorage(err, "ошибка загрузки резюме")
	}
	updMap := map[string]interface{}{
		"resume_file_key":  key,
		"resume_file_name": filepath.Base(fileName),
	}
	if err = i.store.Update(id, updMap); err != nil {
		return apperrors.NewStorage(err, "ошибка сохранения резюме")
	}
	if rec.ResumeFileKey != "" {
		if err = i.fileStorage.DeleteFile(ctx, rec.ResumeFileKey); err != nil {
			log.
				WithField("candidate_id", id).
				WithError(err).
				Warn("не удалось удалить предыдущее резюме")
		}
	}
	return nil
}

func (i impl) GetResume(ctx context.Context, id uint) (body []byte, fileName string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, "", apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, "", apperrors.NewNotFound("кандидат", id)
	}
	if rec.ResumeFileKey == "" {
		return nil, "", apperrors.NewNotFound("резюме кандидата", id)
	}
	body, err = i.fileStorage.GetFile(ctx, rec.ResumeFileKey)
	if err != nil {
		return nil, "", apperrors.NewStorage(err, "ошибка получения резюме")
	}
	return body, rec.ResumeFileName, nil
}

func (i impl) History(id uint) ([]candidateapimodels.HistoryView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("кандидат", id)
	}
	return i.history.List(id)
}

func (i impl) ExportList(filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error) {
	list, err := i.store.ListAll(filter)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения списка кандидатов")
	}
	buf, err := i.xls.ExportCandidateList(list)
	if err != nil {
		log.WithError(err).Error("ошибка выгрузки кандидатов в xlsx")
		return nil, apperrors.NewStorage(err, "ошибка выгрузки кандидатов")
	}
	return buf, nil
}

func convertResult(rec *dbmodels.Candidate, err error) (*candidateapimodels.CandidateViewExt, error) {
	if err != nil {
		return nil, err
	}
	result := candidateapimodels.ConvertExt(*rec)
	return &result, nil
}
