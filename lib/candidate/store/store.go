package candidatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hr-pipeline-backend/lib/utils/helpers"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	dbmodels "hr-pipeline-backend/models/db"
)

// ErrVersionConflict запись кандидата изменена другим запросом после чтения
var ErrVersionConflict = errors.New("кандидат был изменён другим пользователем")

type Provider interface {
	Create(rec dbmodels.Candidate) (id uint, err error)
	GetByID(id uint) (*dbmodels.Candidate, error)
	GetByIDExt(id uint) (*dbmodels.Candidate, error)
	Update(id uint, updMap map[string]interface{}) error
	UpdateVersioned(id uint, version int, updMap map[string]interface{}) error
	Delete(id uint) error
	List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, rowCount int64, err error)
	ListAll(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id uint, err error) {
	if rec.Version == 0 {
		rec.Version = 1
	}
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("id = ?", id).
		Preload("HiringRequest").
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

func (i impl) GetByIDExt(id uint) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("id = ?", id).
		Preload("HiringRequest").
		Preload("Interviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at")
		}).
		Preload("Interviews.Interviewer").
		Preload("JobOffer").
		Preload("MedicalVisit").
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
	updMap["version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.Candidate{}).
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

func (i impl) UpdateVersioned(id uint, version int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	updMap["version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Where("version = ?", version).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (i impl) Delete(id uint) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ?", id).Delete(&dbmodels.Interview{}).Error; err != nil {
			return err
		}
		if err := tx.Where("candidate_id = ?", id).Delete(&dbmodels.JobOffer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("candidate_id = ?", id).Delete(&dbmodels.MedicalVisit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbmodels.Candidate{}, id).Error
	})
}

func (i impl) List(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, rowCount int64, err error) {
	tx := i.applyFilter(i.db.Model(&dbmodels.Candidate{}), filter)
	if err = tx.Session(&gorm.Session{}).Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	offset, limit := filter.GetOffsetLimit()
	list = []dbmodels.Candidate{}
	err = tx.
		Preload("HiringRequest").
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

func (i impl) ListAll(filter candidateapimodels.CandidateFilter) (list []dbmodels.Candidate, err error) {
	list = []dbmodels.Candidate{}
	err = i.applyFilter(i.db.Model(&dbmodels.Candidate{}), filter).
		Preload("HiringRequest").
		Order("created_at desc, id desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) applyFilter(tx *gorm.DB, filter candidateapimodels.CandidateFilter) *gorm.DB {
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		tx = tx.Where("department = ?", filter.Department)
	}
	if filter.Source != "" {
		tx = tx.Where("source = ?", filter.Source)
	}
	if filter.HiringRequestID != 0 {
		tx = tx.Where("hiring_request_id = ?", filter.HiringRequestID)
	}
	if filter.Search != "" {
		like := helpers.LikeValue(filter.Search)
		tx = tx.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}
	return tx
}
