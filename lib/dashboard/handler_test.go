package dashboardhandler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	dashboardapimodels "hr-pipeline-backend/models/api/dashboard"
	dbmodels "hr-pipeline-backend/models/db"
)

func statusCount(stats *dashboardapimodels.DashboardStats, status models.CandidateStatus) int64 {
	for _, item := range stats.CandidatesByStatus {
		if item.Status == status {
			return item.Count
		}
	}
	return -1
}

func setDepartment(t *testing.T, conn *gorm.DB, id uint, department string) {
	require.NoError(t, conn.Model(&dbmodels.Candidate{}).Where("id = ?", id).Update("department", department).Error)
}

func TestGetStats(t *testing.T) {
	conn := testdb.New(t)
	handler := NewInstance(conn, xlsexport.NewInstance())
	manager := testdb.AddUser(t, conn, models.ManagerRole, "manager")

	t.Run(`empty base`, func(t *testing.T) {
		stats, err := handler.GetStats()
		require.NoError(t, err)
		require.Equal(t, int64(0), stats.TotalCandidates)
		require.Equal(t, float64(0), stats.ConversionRate)
		require.Len(t, stats.CandidatesByStatus, len(models.CandidateStatusOrder))
	})

	hiredRequest := testdb.AddHiringRequest(t, conn, manager, nil)
	require.NoError(t, conn.Model(&dbmodels.HiringRequest{}).Where("id = ?", hiredRequest.ID).Update("status", models.HRStatusHired).Error)
	testdb.AddHiringRequest(t, conn, manager, nil)

	testdb.AddCandidate(t, conn, models.CandidateStatusReceived, nil)
	testdb.AddCandidate(t, conn, models.CandidateStatusHired, &hiredRequest.ID)
	// устаревшая подпись и мусорное значение
	testdb.AddCandidate(t, conn, models.CandidateStatus("Embauché"), nil)
	unknown := testdb.AddCandidate(t, conn, models.CandidateStatus("???"), nil)
	setDepartment(t, conn, unknown.ID, "")

	stats, err := handler.GetStats()
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.TotalCandidates)
	require.Equal(t, int64(2), statusCount(stats, models.CandidateStatusHired))
	require.Equal(t, int64(1), statusCount(stats, models.CandidateStatusReceived))
	require.Equal(t, int64(1), stats.UnknownStatusCount)
	require.Equal(t, int64(2), stats.HiredCount)
	require.Equal(t, float64(50), stats.ConversionRate)
	require.Equal(t, float64(1500), stats.TotalHiringCost)

	require.Equal(t, []dashboardapimodels.GroupCount{
		{Name: "Production", Count: 3},
		{Name: emptyGroupName, Count: 1},
	}, stats.CandidatesByDept)
	require.Len(t, stats.CandidatesBySource, 1)
	require.Equal(t, models.SourceLinkedIn.ToHuman(), stats.CandidatesBySource[0].Name)

	for _, item := range stats.HiringRequestsByStatus {
		switch item.Status {
		case models.HRStatusHired, models.HRStatusPendingValidation:
			require.Equal(t, int64(1), item.Count)
		default:
			require.Equal(t, int64(0), item.Count)
		}
	}

	t.Run(`export`, func(t *testing.T) {
		buf, err := handler.ExportXls()
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
	})
}
