package statushistoryhandler

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	statushistorystore "hr-pipeline-backend/lib/status-history/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Save(candidateID uint, oldStatus, newStatus models.CandidateStatus, trigger string, actor models.Actor, comment string)
	List(candidateID uint) ([]candidateapimodels.HistoryView, error)
}

var Instance Provider

func NewHandler(DB *gorm.DB) {
	Instance = NewHandlerWithTx(DB)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		db: tx,
	}
}

type impl struct {
	db *gorm.DB
}

// Save добавляет запись в журнал статусов. Запись выполняется в точке сохранения,
// ошибка откатывает только её и не прерывает основную транзакцию.
func (i impl) Save(candidateID uint, oldStatus, newStatus models.CandidateStatus, trigger string, actor models.Actor, comment string) {
	rec := dbmodels.StatusHistory{
		CandidateID:   candidateID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		Label:         newStatus.ToHuman(),
		Trigger:       trigger,
		ChangedBy:     actor.UserID,
		ChangedByName: actor.GetName(),
		Comment:       comment,
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		_, err := statushistorystore.NewInstance(tx).Create(rec)
		return err
	})
	if err != nil {
		log.
			WithField("candidate_id", candidateID).
			WithField("old_status", oldStatus).
			WithField("new_status", newStatus).
			WithError(err).
			Error("ошибка сохранения истории статусов кандидата")
	}
}

func (i impl) List(candidateID uint) ([]candidateapimodels.HistoryView, error) {
	list, err := statushistorystore.NewInstance(i.db).List(candidateID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения истории статусов")
	}
	result := make([]candidateapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.ConvertHistory(rec))
	}
	return result, nil
}
