package jobofferstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.JobOffer) (id uint, err error)
	GetByCandidate(candidateID uint) (*dbmodels.JobOffer, error)
	Update(id uint, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Save создаёт предложение или перезаписывает существующее (одно предложение на кандидата)
func (i impl) Save(rec dbmodels.JobOffer) (id uint, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByCandidate(candidateID uint) (*dbmodels.JobOffer, error) {
	rec := dbmodels.JobOffer{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
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
		Model(&dbmodels.JobOffer{}).
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
