package testdb

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"hr-pipeline-backend/db"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

// New отдельная in-memory база sqlite со всеми таблицами
func New(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// каждое новое соединение к :memory: открывает пустую базу
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrateDB(conn))
	return conn
}

func AddUser(t *testing.T, conn *gorm.DB, role models.UserRole, username string) dbmodels.User {
	t.Helper()
	rec := dbmodels.User{
		Username:  username,
		FirstName: username,
		LastName:  string(role),
		Email:     fmt.Sprintf("%s@example.com", username),
		IsActive:  true,
		Role:      role,
	}
	require.NoError(t, conn.Create(&rec).Error)
	return rec
}

func AddHiringRequest(t *testing.T, conn *gorm.DB, requester dbmodels.User, recruiterID *uint) dbmodels.HiringRequest {
	t.Helper()
	rec := dbmodels.HiringRequest{
		JobTitle:                     "Technicien de maintenance",
		Service:                      "Production",
		OpenedPositions:              1,
		Status:                       models.HRStatusPendingValidation,
		ValidationRHStatus:           models.ValidationPending,
		ValidationPlantManagerStatus: models.ValidationPending,
		ValidationRecruitmentStatus:  models.ValidationPending,
		RequesterID:                  requester.ID,
		RecruiterID:                  recruiterID,
		HiringCost:                   1500,
	}
	require.NoError(t, conn.Create(&rec).Error)
	return rec
}

func AddCandidate(t *testing.T, conn *gorm.DB, status models.CandidateStatus, hiringRequestID *uint) dbmodels.Candidate {
	t.Helper()
	rec := dbmodels.Candidate{
		FirstName:       "Amine",
		LastName:        "Benali",
		Email:           "amine.benali@example.com",
		Position:        "Technicien",
		Department:      "Production",
		Source:          models.SourceLinkedIn,
		Status:          status,
		HiringRequestID: hiringRequestID,
		Version:         1,
	}
	require.NoError(t, conn.Create(&rec).Error)
	return rec
}

func AddInterview(t *testing.T, conn *gorm.DB, candidateID uint, interviewType models.InterviewType) dbmodels.Interview {
	t.Helper()
	rec := dbmodels.Interview{
		CandidateID: candidateID,
		Type:        interviewType,
		Result:      models.InterviewResultPending,
	}
	require.NoError(t, conn.Create(&rec).Error)
	return rec
}
