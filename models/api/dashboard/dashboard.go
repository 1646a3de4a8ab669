package dashboardapimodels

import "hr-pipeline-backend/models"

type StatusCount struct {
	Status models.CandidateStatus `json:"status"`
	Label  string                 `json:"label"`
	Count  int64                  `json:"count"`
}

type HRStatusCount struct {
	Status models.HRStatus `json:"status"`
	Label  string          `json:"label"`
	Count  int64           `json:"count"`
}

type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type DashboardStats struct {
	TotalCandidates        int64           `json:"total_candidates"`
	CandidatesByStatus     []StatusCount   `json:"candidates_by_status"`
	UnknownStatusCount     int64           `json:"unknown_status_count"` // Значения статуса, которые не удалось распознать
	CandidatesByDept       []GroupCount    `json:"candidates_by_department"`
	CandidatesBySource     []GroupCount    `json:"candidates_by_source"`
	HiringRequestsByStatus []HRStatusCount `json:"hiring_requests_by_status"`
	TotalHiringCost        float64         `json:"total_hiring_cost"`
	HiredCount             int64           `json:"hired_count"`
	ConversionRate         float64         `json:"conversion_rate"` // Доля принятых на работу, %
}
