package interviewstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Interview) (id uint, err error)
	GetByID(id uint) (*dbmodels.Interview, error)
	Update(id uint, updMap map[string]interface{}) error
	Delete(id uint) error
	ListByCandidate(candidateID uint) (list []dbmodels.Interview, err error)
	ListForReminder(from, to time.Time) (list []dbmodels.Interview, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Interview) (id uint, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Interview, error) {
	rec := dbmodels.Interview{}
	err := i.db.
		Where("id = ?", id).
		Preload("Interviewer").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Interview{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i impl) Delete(id uint) error {
	return i.db.Delete(&dbmodels.Interview{}, id).Error
}

func (i impl) ListByCandidate(candidateID uint) (list []dbmodels.Interview, err error) {
	list = []dbmodels.Interview{}
	err = i.db.
		Where("candidate_id = ?", candidateID).
		Preload("Interviewer").
		Order("scheduled_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListForReminder собеседования без результата в интервале, по которым ещё не отправлено напоминание
func (i impl) ListForReminder(from, to time.Time) (list []dbmodels.Interview, err error) {
	list = []dbmodels.Interview{}
	err = i.db.
		Where("result = ?", models.InterviewResultPending).
		Where("reminder_sent = ?", false).
		Where("scheduled_at >= ? AND scheduled_at <= ?", from, to).
		Preload("Candidate").
		Order("scheduled_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
