package interviewhandler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	candidatelifecycle "hr-pipeline-backend/lib/candidate-lifecycle"
	notificationhandler "hr-pipeline-backend/lib/notification"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	interviewapimodels "hr-pipeline-backend/models/api/interview"
	dbmodels "hr-pipeline-backend/models/db"
)

type fixture struct {
	db      *gorm.DB
	handler Provider
	rh      dbmodels.User
	manager dbmodels.User
}

func newFixture(t *testing.T) fixture {
	conn := testdb.New(t)
	notifier := notificationhandler.NewInstance(conn, notificationhandler.Options{})
	return fixture{
		db: conn,
		handler: NewInstance(conn, Options{
			Lifecycle: candidatelifecycle.NewInstance(conn, candidatelifecycle.Options{Notifier: notifier}),
			Notifier:  notifier,
		}),
		rh:      testdb.AddUser(t, conn, models.RHRole, "rh"),
		manager: testdb.AddUser(t, conn, models.ManagerRole, "manager"),
	}
}

func (f fixture) notificationsFor(t *testing.T, userID uint) int64 {
	var count int64
	err := f.db.Model(&dbmodels.Notification{}).
		Where("user_id = ? AND type = ?", userID, models.NotificationInterviewReminder).
		Count(&count).
		Error
	require.NoError(t, err)
	return count
}

func (f fixture) addScheduled(t *testing.T, candidateID uint, scheduledAt time.Time, interviewerID *uint) dbmodels.Interview {
	rec := testdb.AddInterview(t, f.db, candidateID, models.InterviewTypeHR)
	updMap := map[string]interface{}{
		"scheduled_at":   scheduledAt,
		"interviewer_id": interviewerID,
	}
	require.NoError(t, f.db.Model(&dbmodels.Interview{}).Where("id = ?", rec.ID).Updates(updMap).Error)
	return rec
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
	scheduledAt := time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

	t.Run(`created pending`, func(t *testing.T) {
		view, err := f.handler.Create(f.rh.ToActor(), cand.ID, interviewapimodels.InterviewCreateData{
			Type:          models.InterviewTypeTechnical,
			ScheduledAt:   scheduledAt,
			InterviewerID: &f.manager.ID,
		})
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultPending, view.Result)
		require.Equal(t, f.manager.GetFullName(), view.InterviewerName)

		list, err := f.handler.ListByCandidate(cand.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`unknown interviewer`, func(t *testing.T) {
		interviewerID := uint(404)
		_, err := f.handler.Create(f.rh.ToActor(), cand.ID, interviewapimodels.InterviewCreateData{
			Type:          models.InterviewTypeHR,
			ScheduledAt:   scheduledAt,
			InterviewerID: &interviewerID,
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`bad type`, func(t *testing.T) {
		_, err := f.handler.Create(f.rh.ToActor(), cand.ID, interviewapimodels.InterviewCreateData{
			Type:        "PHONE",
			ScheduledAt: scheduledAt,
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`missing candidate`, func(t *testing.T) {
		_, err := f.handler.Create(f.rh.ToActor(), 999, interviewapimodels.InterviewCreateData{
			Type:        models.InterviewTypeHR,
			ScheduledAt: scheduledAt,
		})
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run(`rejected candidate`, func(t *testing.T) {
		rejected := testdb.AddCandidate(t, f.db, models.CandidateStatusRejected, nil)
		_, err := f.handler.Create(f.rh.ToActor(), rejected.ID, interviewapimodels.InterviewCreateData{
			Type:        models.InterviewTypeHR,
			ScheduledAt: scheduledAt,
		})
		require.True(t, apperrors.IsValidation(err))
	})
}

func TestResult(t *testing.T) {
	ctx := context.Background()

	t.Run(`admitted moves candidate`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeTechnical)

		comments := "Très bon niveau"
		view, err := f.handler.SetResult(ctx, f.rh.ToActor(), interview.ID, interviewapimodels.InterviewResultData{
			Result:   models.InterviewResultAdmitted,
			Comments: &comments,
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusTechnicalInterview, view.Status)

		saved, err := f.handler.GetByID(interview.ID)
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultAdmitted, saved.Result)
		require.Equal(t, comments, saved.Comments)

		err = f.handler.Delete(f.rh.ToActor(), interview.ID)
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`pending is not a result`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeHR)
		_, err := f.handler.SetResult(ctx, f.rh.ToActor(), interview.ID, interviewapimodels.InterviewResultData{
			Result: models.InterviewResultPending,
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`update with result`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeHR)
		rejected := models.InterviewResultRejected
		comments := "Pas disponible"
		view, err := f.handler.Update(ctx, f.rh.ToActor(), interview.ID, interviewapimodels.InterviewEditData{
			InterviewerID: &f.manager.ID,
			Comments:      &comments,
			Result:        &rejected,
		})
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultRejected, view.Result)
		require.Equal(t, comments, view.Comments)
		require.Equal(t, f.manager.ID, *view.InterviewerID)

		rec := dbmodels.Candidate{}
		require.NoError(t, f.db.First(&rec, cand.ID).Error)
		require.Equal(t, models.CandidateStatusRejected, rec.Status)
	})

	t.Run(`update with result is atomic`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeHR)
		before, err := f.handler.GetByID(interview.ID)
		require.NoError(t, err)

		err = f.db.Callback().Update().Before("gorm:update").Register("test:fail_candidate", func(tx *gorm.DB) {
			if tx.Statement.Table == "candidates" {
				_ = tx.AddError(errors.New("simulated failure"))
			}
		})
		require.NoError(t, err)

		rejected := models.InterviewResultRejected
		scheduledAt := time.Date(2026, 5, 4, 14, 0, 0, 0, time.UTC)
		_, err = f.handler.Update(ctx, f.rh.ToActor(), interview.ID, interviewapimodels.InterviewEditData{
			ScheduledAt:   &scheduledAt,
			InterviewerID: &f.manager.ID,
			Result:        &rejected,
		})
		require.True(t, apperrors.IsStorage(err))

		after, err := f.handler.GetByID(interview.ID)
		require.NoError(t, err)
		require.Equal(t, models.InterviewResultPending, after.Result)
		require.True(t, before.ScheduledAt.Equal(after.ScheduledAt))
		require.Nil(t, after.InterviewerID)

		rec := dbmodels.Candidate{}
		require.NoError(t, f.db.First(&rec, cand.ID).Error)
		require.Equal(t, models.CandidateStatusShortlisted, rec.Status)
	})

	t.Run(`delete pending`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeHR)
		require.NoError(t, f.handler.Delete(f.rh.ToActor(), interview.ID))
		_, err := f.handler.GetByID(interview.ID)
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestSendReminders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	now := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
	cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)

	f.addScheduled(t, cand.ID, now.Add(2*time.Hour), &f.manager.ID)
	f.addScheduled(t, cand.ID, now.Add(5*time.Hour), nil)
	// слишком далеко и уже прошедшее
	f.addScheduled(t, cand.ID, now.Add(48*time.Hour), &f.manager.ID)
	f.addScheduled(t, cand.ID, now.Add(-time.Hour), &f.manager.ID)

	sent, err := f.handler.SendReminders(ctx, now, 24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, 2, sent)
	require.Equal(t, int64(1), f.notificationsFor(t, f.manager.ID))
	require.Equal(t, int64(1), f.notificationsFor(t, f.rh.ID))

	t.Run(`reminder sent once`, func(t *testing.T) {
		sent, err := f.handler.SendReminders(ctx, now, 24*time.Hour)
		require.NoError(t, err)
		require.Equal(t, 0, sent)
		require.Equal(t, int64(1), f.notificationsFor(t, f.manager.ID))
	})
}
