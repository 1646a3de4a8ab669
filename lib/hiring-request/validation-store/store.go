package hrvalidationstore

import (
	"gorm.io/gorm"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.HiringRequestValidation) (id uint, err error)
	List(requestID uint) (list []dbmodels.HiringRequestValidation, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.HiringRequestValidation) (id uint, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) List(requestID uint) (list []dbmodels.HiringRequestValidation, err error) {
	list = []dbmodels.HiringRequestValidation{}
	err = i.db.
		Where("hiring_request_id = ?", requestID).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
