package usersstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.User) (id uint, err error)
	GetByID(id uint) (*dbmodels.User, error)
	FindByUsername(username string) (*dbmodels.User, error)
	Update(id uint, updMap map[string]interface{}) error
	List(pagination apimodels.Pagination) (list []dbmodels.User, rowCount int64, err error)
	ListByRoles(roles []models.UserRole) (list []dbmodels.User, err error)
	ListByIDs(ids []uint) (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (id uint, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) FindByUsername(username string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("LOWER(username) = LOWER(?)", username).
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
		Model(&dbmodels.User{}).
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

func (i impl) List(pagination apimodels.Pagination) (list []dbmodels.User, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.User{})
	if err = tx.Session(&gorm.Session{}).Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	offset, limit := pagination.GetOffsetLimit()
	list = []dbmodels.User{}
	err = tx.
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListByRoles(roles []models.UserRole) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	err = i.db.
		Where("role IN ?", roles).
		Where("is_active = ?", true).
		Order("id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByIDs(ids []uint) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id IN ?", ids).
		Where("is_active = ?", true).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
