package jobofferhandler

import (
	"context"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	candidatelifecycle "hr-pipeline-backend/lib/candidate-lifecycle"
	candidatestore "hr-pipeline-backend/lib/candidate/store"
	pdfexport "hr-pipeline-backend/lib/export/pdf"
	filestorage "hr-pipeline-backend/lib/file-storage"
	jobofferstore "hr-pipeline-backend/lib/job-offer/store"
	usersstore "hr-pipeline-backend/lib/users/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	"hr-pipeline-backend/lib/utils/helpers"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	offerapimodels "hr-pipeline-backend/models/api/offer"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Send(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferSendData) (*candidateapimodels.CandidateViewExt, error)
	SetResponse(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferResponseData) (*candidateapimodels.CandidateViewExt, error)
	Get(candidateID uint) (*offerapimodels.OfferView, error)
	GenerateLetter(ctx context.Context, candidateID uint) (body []byte, fileName string, err error)
}

var Instance Provider

type Options struct {
	Lifecycle   candidatelifecycle.Provider
	FileStorage filestorage.Provider
	Company     models.CompanyInfo
	Template    string
}

func NewHandler(DB *gorm.DB, opts Options) {
	Instance = NewInstance(DB, opts)
}

func NewInstance(DB *gorm.DB, opts Options) Provider {
	if opts.FileStorage == nil {
		opts.FileStorage = filestorage.NewInstance(nil, "")
	}
	instance := impl{
		store:          jobofferstore.NewInstance(DB),
		candidateStore: candidatestore.NewInstance(DB),
		userStore:      usersstore.NewInstance(DB),
		lifecycle:      opts.Lifecycle,
		fileStorage:    opts.FileStorage,
		company:        opts.Company,
		template:       opts.Template,
	}
	initchecker.CheckInit(
		"lifecycle", instance.lifecycle,
	)
	return instance
}

type impl struct {
	store          jobofferstore.Provider
	candidateStore candidatestore.Provider
	userStore      usersstore.Provider
	lifecycle      candidatelifecycle.Provider
	fileStorage    filestorage.Provider
	company        models.CompanyInfo
	template       string
}

func (i impl) Send(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferSendData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	return convertResult(i.lifecycle.SendOffer(ctx, actor, candidateID, data))
}

func (i impl) SetResponse(ctx context.Context, actor models.Actor, candidateID uint, data offerapimodels.OfferResponseData) (*candidateapimodels.CandidateViewExt, error) {
	if err := data.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	if data.Response == models.OfferResponsePending {
		return nil, apperrors.NewValidation("ответ кандидата не указан")
	}
	return convertResult(i.lifecycle.SetOfferResponse(ctx, actor, candidateID, data))
}

func (i impl) Get(candidateID uint) (*offerapimodels.OfferView, error) {
	rec, err := i.store.GetByCandidate(candidateID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения предложения")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("предложение кандидату", candidateID)
	}
	result := offerapimodels.Convert(*rec)
	return &result, nil
}

// GenerateLetter письмо-предложение в pdf по данным отправленного предложения
func (i impl) GenerateLetter(ctx context.Context, candidateID uint) (body []byte, fileName string, err error) {
	cand, err := i.candidateStore.GetByIDExt(candidateID)
	if err != nil {
		return nil, "", apperrors.NewStorage(err, "ошибка получения кандидата")
	}
	if cand == nil {
		return nil, "", apperrors.NewNotFound("кандидат", candidateID)
	}
	if cand.JobOffer == nil {
		return nil, "", apperrors.NewNotFound("предложение кандидату", candidateID)
	}
	offer := cand.JobOffer
	tplData := models.OfferTemplateData{
		CandidateName:  cand.GetFullName(),
		JobTitle:       cand.GetPosition(),
		Department:     cand.Department,
		StartDate:      helpers.FormatDate(offer.StartDate),
		SentDate:       helpers.FormatDate(&offer.SentDate),
		CompanyName:    i.company.Name,
		CompanyAddress: i.company.Address,
		CompanyContact: i.company.Contact,
	}
	if offer.ProposedSalary > 0 {
		tplData.ProposedSalary = fmt.Sprintf("%.2f", offer.ProposedSalary)
	}
	if cand.HiringRequest != nil && cand.HiringRequest.RecruiterID != nil {
		recruiter, err := i.userStore.GetByID(*cand.HiringRequest.RecruiterID)
		if err != nil {
			return nil, "", apperrors.NewStorage(err, "ошибка получения рекрутера")
		}
		if recruiter != nil {
			tplData.RecruiterName = recruiter.GetFullName()
		}
	}
	tplData.Files.Logo = i.loadImage(ctx, i.company.LogoKey)
	tplData.Files.Sign = i.loadImage(ctx, i.company.SignKey)

	body, err = pdfexport.GenerateOffer(i.template, tplData)
	if err != nil {
		log.
			WithField("candidate_id", candidateID).
			WithError(err).
			Error("ошибка формирования письма-предложения")
		return nil, "", apperrors.NewStorage(err, "ошибка формирования письма-предложения")
	}
	return body, fmt.Sprintf("offre_%d.pdf", candidateID), nil
}

// loadImage без картинки письмо всё равно формируется
func (i impl) loadImage(ctx context.Context, key string) *models.File {
	if key == "" {
		return nil
	}
	body, err := i.fileStorage.GetFile(ctx, key)
	if err != nil {
		log.
			WithField("file_key", key).
			WithError(err).
			Warn("не удалось получить изображение для письма-предложения")
		return nil
	}
	return &models.File{
		FileName: filepath.Base(key),
		Body:     body,
	}
}

func convertResult(rec *dbmodels.Candidate, err error) (*candidateapimodels.CandidateViewExt, error) {
	if err != nil {
		return nil, err
	}
	result := candidateapimodels.ConvertExt(*rec)
	return &result, nil
}
