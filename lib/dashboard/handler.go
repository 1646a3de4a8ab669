package dashboardhandler

import (
	"bytes"
	"math"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dashboardstore "hr-pipeline-backend/lib/dashboard/store"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	initchecker "hr-pipeline-backend/lib/utils/init-checker"
	"hr-pipeline-backend/models"
	dashboardapimodels "hr-pipeline-backend/models/api/dashboard"
)

const emptyGroupName = "Non renseigné"

type Provider interface {
	GetStats() (*dashboardapimodels.DashboardStats, error)
	ExportXls() (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler(DB *gorm.DB, xls xlsexport.Provider) {
	Instance = NewInstance(DB, xls)
}

func NewInstance(DB *gorm.DB, xls xlsexport.Provider) Provider {
	instance := impl{
		store: dashboardstore.NewInstance(DB),
		xls:   xls,
	}
	initchecker.CheckInit(
		"xls", instance.xls,
	)
	return instance
}

type impl struct {
	store dashboardstore.Provider
	xls   xlsexport.Provider
}

func (i impl) GetStats() (*dashboardapimodels.DashboardStats, error) {
	result := dashboardapimodels.DashboardStats{}

	statusRows, err := i.store.CandidatesGroupBy("status")
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка подсчёта кандидатов по статусам")
	}
	// устаревшие подписи статусов учитываются в каноническом статусе
	byStatus := map[models.CandidateStatus]int64{}
	for _, row := range statusRows {
		result.TotalCandidates += row.Count
		status, ok := models.NormalizeCandidateStatus(row.Name)
		if !ok {
			log.WithField("status", row.Name).Warn("нераспознанный статус кандидата")
			result.UnknownStatusCount += row.Count
			continue
		}
		byStatus[status] += row.Count
	}
	result.CandidatesByStatus = make([]dashboardapimodels.StatusCount, 0, len(models.CandidateStatusOrder))
	for _, status := range models.CandidateStatusOrder {
		result.CandidatesByStatus = append(result.CandidatesByStatus, dashboardapimodels.StatusCount{
			Status: status,
			Label:  status.ToHuman(),
			Count:  byStatus[status],
		})
	}
	result.HiredCount = byStatus[models.CandidateStatusHired]
	if result.TotalCandidates > 0 {
		rate := float64(result.HiredCount) * 100 / float64(result.TotalCandidates)
		result.ConversionRate = math.Round(rate*100) / 100
	}

	deptRows, err := i.store.CandidatesGroupBy("department")
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка подсчёта кандидатов по отделам")
	}
	result.CandidatesByDept = convertGroups(deptRows, func(name string) string {
		return name
	})

	sourceRows, err := i.store.CandidatesGroupBy("source")
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка подсчёта кандидатов по источникам")
	}
	result.CandidatesBySource = convertGroups(sourceRows, func(name string) string {
		return models.CandidateSource(name).ToHuman()
	})

	requestRows, err := i.store.HiringRequestsByStatus()
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка подсчёта заявок по статусам")
	}
	byRequestStatus := map[models.HRStatus]int64{}
	for _, row := range requestRows {
		byRequestStatus[models.HRStatus(row.Name)] += row.Count
	}
	result.HiringRequestsByStatus = make([]dashboardapimodels.HRStatusCount, 0, len(models.HRStatusOrder))
	for _, status := range models.HRStatusOrder {
		result.HiringRequestsByStatus = append(result.HiringRequestsByStatus, dashboardapimodels.HRStatusCount{
			Status: status,
			Label:  status.ToHuman(),
			Count:  byRequestStatus[status],
		})
	}

	result.TotalHiringCost, err = i.store.HiringCost([]models.HRStatus{models.HRStatusHired, models.HRStatusCompleted})
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка подсчёта стоимости найма")
	}
	return &result, nil
}

func (i impl) ExportXls() (*bytes.Buffer, error) {
	stats, err := i.GetStats()
	if err != nil {
		return nil, err
	}
	buf, err := i.xls.ExportDashboard(*stats)
	if err != nil {
		log.WithError(err).Error("ошибка выгрузки статистики в xlsx")
		return nil, apperrors.NewStorage(err, "ошибка выгрузки статистики")
	}
	return buf, nil
}

func convertGroups(rows []dashboardstore.GroupRow, label func(name string) string) []dashboardapimodels.GroupCount {
	result := make([]dashboardapimodels.GroupCount, 0, len(rows))
	for _, row := range rows {
		name := emptyGroupName
		if row.Name != "" {
			name = label(row.Name)
		}
		result = append(result, dashboardapimodels.GroupCount{
			Name:  name,
			Count: row.Count,
		})
	}
	return result
}
