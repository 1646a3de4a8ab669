package statushistorystore

import (
	"gorm.io/gorm"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.StatusHistory) (id uint, err error)
	List(candidateID uint) (list []dbmodels.StatusHistory, err error)
	Count(candidateID uint) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.StatusHistory) (id uint, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) List(candidateID uint) (list []dbmodels.StatusHistory, err error) {
	list = []dbmodels.StatusHistory{}
	err = i.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Count(candidateID uint) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.StatusHistory{}).
		Where("candidate_id = ?", candidateID).
		Count(&count).
		Error
	return count, err
}
