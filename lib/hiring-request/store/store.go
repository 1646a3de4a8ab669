package hiringrequeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hr-pipeline-backend/lib/utils/helpers"
	hiringrequestapimodels "hr-pipeline-backend/models/api/hiring-request"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.HiringRequest) (id uint, err error)
	GetByID(id uint) (*dbmodels.HiringRequest, error)
	Update(id uint, updMap map[string]interface{}) error
	Delete(id uint) error
	List(filter hiringrequestapimodels.HiringRequestFilter) (list []dbmodels.HiringRequest, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.HiringRequest) (id uint, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.HiringRequest, error) {
	rec := dbmodels.HiringRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload("Requester").
		Preload("Recruiter").
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
		Model(&dbmodels.HiringRequest{}).
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
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&dbmodels.Candidate{}).
			Where("hiring_request_id = ?", id).
			Update("hiring_request_id", nil).
			Error
		if err != nil {
			return err
		}
		if err = tx.Where("hiring_request_id = ?", id).Delete(&dbmodels.HiringRequestValidation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbmodels.HiringRequest{}, id).Error
	})
}

func (i impl) List(filter hiringrequestapimodels.HiringRequestFilter) (list []dbmodels.HiringRequest, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.HiringRequest{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Service != "" {
		tx = tx.Where("service = ?", filter.Service)
	}
	if filter.Search != "" {
		tx = tx.Where("LOWER(job_title) LIKE ?", helpers.LikeValue(filter.Search))
	}
	if err = tx.Session(&gorm.Session{}).Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	offset, limit := filter.GetOffsetLimit()
	list = []dbmodels.HiringRequest{}
	err = tx.
		Preload("Requester").
		Preload("Recruiter").
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
