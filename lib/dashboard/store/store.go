package dashboardstore

import (
	"gorm.io/gorm"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type GroupRow struct {
	Name  string
	Count int64
}

type Provider interface {
	CandidatesGroupBy(column string) (list []GroupRow, err error)
	HiringRequestsByStatus() (list []GroupRow, err error)
	HiringCost(statuses []models.HRStatus) (total float64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

var candidateGroupColumns = map[string]bool{
	"status":     true,
	"department": true,
	"source":     true,
}

// CandidatesGroupBy количество кандидатов по значению колонки, значения как есть в базе
func (i impl) CandidatesGroupBy(column string) (list []GroupRow, err error) {
	if !candidateGroupColumns[column] {
		return nil, gorm.ErrInvalidField
	}
	list = []GroupRow{}
	err = i.db.
		Model(&dbmodels.Candidate{}).
		Select(column + " AS name, COUNT(*) AS count").
		Group(column).
		Order("count DESC, name").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) HiringRequestsByStatus() (list []GroupRow, err error) {
	list = []GroupRow{}
	err = i.db.
		Model(&dbmodels.HiringRequest{}).
		Select("status AS name, COUNT(*) AS count").
		Group("status").
		Scan(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) HiringCost(statuses []models.HRStatus) (total float64, err error) {
	err = i.db.
		Model(&dbmodels.HiringRequest{}).
		Select("COALESCE(SUM(hiring_cost), 0)").
		Where("status IN ?", statuses).
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
