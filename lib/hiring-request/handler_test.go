package hiringrequesthandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	notificationhandler "hr-pipeline-backend/lib/notification"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	hiringrequestapimodels "hr-pipeline-backend/models/api/hiring-request"
	dbmodels "hr-pipeline-backend/models/db"
)

type fixture struct {
	db      *gorm.DB
	handler Provider
	rh      dbmodels.User
	manager dbmodels.User
	co      dbmodels.User
}

func newFixture(t *testing.T) fixture {
	conn := testdb.New(t)
	return fixture{
		db: conn,
		handler: NewInstance(conn, Options{
			Notifier: notificationhandler.NewInstance(conn, notificationhandler.Options{}),
		}),
		rh:      testdb.AddUser(t, conn, models.RHRole, "rh"),
		manager: testdb.AddUser(t, conn, models.ManagerRole, "manager"),
		co:      testdb.AddUser(t, conn, models.CORole, "co"),
	}
}

func (f fixture) actorFor(step models.ValidationStep) models.Actor {
	switch step {
	case models.ValidationStepRH:
		return f.rh.ToActor()
	case models.ValidationStepManager:
		return f.manager.ToActor()
	}
	return f.co.ToActor()
}

func (f fixture) notificationsFor(t *testing.T, userID uint, notificationType models.NotificationType) int64 {
	var count int64
	err := f.db.Model(&dbmodels.Notification{}).
		Where("user_id = ? AND type = ?", userID, notificationType).
		Count(&count).
		Error
	require.NoError(t, err)
	return count
}

func approve(step models.ValidationStep) hiringrequestapimodels.ValidateData {
	return hiringrequestapimodels.ValidateData{Step: step, Decision: models.ValidationApproved}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	orders := [][]models.ValidationStep{
		{models.ValidationStepRH, models.ValidationStepManager, models.ValidationStepRecruitment},
		{models.ValidationStepRecruitment, models.ValidationStepManager, models.ValidationStepRH},
		{models.ValidationStepManager, models.ValidationStepRecruitment, models.ValidationStepRH},
	}
	for _, order := range orders {
		t.Run(`vacant only after all approvals `+string(order[0]), func(t *testing.T) {
			f := newFixture(t)
			request := testdb.AddHiringRequest(t, f.db, f.co, nil)
			for idx, step := range order {
				view, err := f.handler.Validate(ctx, f.actorFor(step), request.ID, approve(step))
				require.NoError(t, err)
				if idx < len(order)-1 {
					require.Equal(t, models.HRStatusPendingValidation, view.Status)
				} else {
					require.Equal(t, models.HRStatusVacant, view.Status)
				}
			}
			require.Equal(t, int64(1), f.notificationsFor(t, f.co.ID, models.NotificationHRApproved))

			history, err := f.handler.ValidationHistory(request.ID)
			require.NoError(t, err)
			require.Len(t, history, 3)
		})
	}

	t.Run(`rejection cancels and notifies requester`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.co, nil)
		_, err := f.handler.Validate(ctx, f.rh.ToActor(), request.ID, approve(models.ValidationStepRH))
		require.NoError(t, err)

		view, err := f.handler.Validate(ctx, f.manager.ToActor(), request.ID, hiringrequestapimodels.ValidateData{
			Step:     models.ValidationStepManager,
			Decision: models.ValidationRejected,
			Comment:  "budget gelé",
		})
		require.NoError(t, err)
		require.Equal(t, models.HRStatusCancelled, view.Status)
		require.Equal(t, models.ValidationRejected, view.ValidationPlantManagerStatus)
		require.Equal(t, int64(1), f.notificationsFor(t, f.co.ID, models.NotificationHRRejected))

		// отменённая заявка больше не принимает решения
		_, err = f.handler.Validate(ctx, f.co.ToActor(), request.ID, approve(models.ValidationStepRecruitment))
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`rh approval notifies managers`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.co, nil)
		_, err := f.handler.Validate(ctx, f.rh.ToActor(), request.ID, approve(models.ValidationStepRH))
		require.NoError(t, err)
		require.Equal(t, int64(1), f.notificationsFor(t, f.manager.ID, models.NotificationHRValidatedByRH))
		require.Equal(t, int64(0), f.notificationsFor(t, f.rh.ID, models.NotificationHRValidatedByRH))
	})

	t.Run(`manager approval notifies rh`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.co, nil)
		_, err := f.handler.Validate(ctx, f.manager.ToActor(), request.ID, approve(models.ValidationStepManager))
		require.NoError(t, err)
		require.Equal(t, int64(1), f.notificationsFor(t, f.rh.ID, models.NotificationHRValidatedByManager))
	})

	t.Run(`wrong role`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.co, nil)
		_, err := f.handler.Validate(ctx, f.co.ToActor(), request.ID, approve(models.ValidationStepRH))
		require.True(t, apperrors.IsForbidden(err))
		_, err = f.handler.Validate(ctx, f.rh.ToActor(), request.ID, approve(models.ValidationStepManager))
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`missing request`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.Validate(ctx, f.rh.ToActor(), 777, approve(models.ValidationStepRH))
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run(`bad decision`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.co, nil)
		_, err := f.handler.Validate(ctx, f.rh.ToActor(), request.ID, hiringrequestapimodels.ValidateData{
			Step:     models.ValidationStepRH,
			Decision: models.ValidationPending,
		})
		require.True(t, apperrors.IsValidation(err))
	})
}

func TestResolveStatus(t *testing.T) {
	flags := map[models.ValidationStep]models.ValidationStatus{
		models.ValidationStepRH:          models.ValidationApproved,
		models.ValidationStepManager:     models.ValidationApproved,
		models.ValidationStepRecruitment: models.ValidationPending,
	}
	require.Equal(t, models.HRStatusPendingValidation, ResolveStatus(models.HRStatusPendingValidation, flags))
	flags[models.ValidationStepRecruitment] = models.ValidationApproved
	require.Equal(t, models.HRStatusVacant, ResolveStatus(models.HRStatusPendingValidation, flags))
	flags[models.ValidationStepRH] = models.ValidationRejected
	require.Equal(t, models.HRStatusCancelled, ResolveStatus(models.HRStatusPendingValidation, flags))
}

func TestCrud(t *testing.T) {
	ctx := context.Background()

	t.Run(`create starts pending validation`, func(t *testing.T) {
		f := newFixture(t)
		id, err := f.handler.Create(f.manager.ToActor(), hiringrequestapimodels.HiringRequestData{
			JobTitle:    "Chef d'équipe",
			Service:     "Logistique",
			RecruiterID: &f.rh.ID,
		})
		require.NoError(t, err)

		view, err := f.handler.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, models.HRStatusPendingValidation, view.Status)
		require.Equal(t, models.ValidationPending, view.ValidationRHStatus)
		require.Equal(t, 1, view.OpenedPositions)
		require.Equal(t, f.manager.ID, view.RequesterID)
		require.Equal(t, f.rh.GetFullName(), view.RecruiterName)
	})

	t.Run(`unknown recruiter`, func(t *testing.T) {
		f := newFixture(t)
		recruiterID := uint(999)
		_, err := f.handler.Create(f.manager.ToActor(), hiringrequestapimodels.HiringRequestData{
			JobTitle:    "Opérateur",
			Service:     "Production",
			RecruiterID: &recruiterID,
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`only rh deletes`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.manager, nil)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusReceived, &request.ID)

		err := f.handler.Delete(f.manager.ToActor(), request.ID)
		require.True(t, apperrors.IsForbidden(err))

		require.NoError(t, f.handler.Delete(f.rh.ToActor(), request.ID))
		_, err = f.handler.GetByID(request.ID)
		require.True(t, apperrors.IsNotFound(err))

		rec := dbmodels.Candidate{}
		require.NoError(t, f.db.First(&rec, cand.ID).Error)
		require.Nil(t, rec.HiringRequestID)
	})

	t.Run(`update by other user`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.manager, nil)
		err := f.handler.Update(f.co.ToActor(), request.ID, hiringrequestapimodels.HiringRequestData{
			JobTitle: "Autre",
			Service:  "Autre",
		})
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`manual status`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.manager, nil)
		require.NoError(t, f.handler.ChangeStatus(ctx, f.rh.ToActor(), request.ID, models.HRStatusInProgress))
		view, err := f.handler.GetByID(request.ID)
		require.NoError(t, err)
		require.Equal(t, models.HRStatusInProgress, view.Status)

		err = f.handler.ChangeStatus(ctx, f.rh.ToActor(), request.ID, models.HRStatusVacant)
		require.True(t, apperrors.IsValidation(err))
		err = f.handler.ChangeStatus(ctx, f.co.ToActor(), request.ID, models.HRStatusCompleted)
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`list filter`, func(t *testing.T) {
		f := newFixture(t)
		testdb.AddHiringRequest(t, f.db, f.manager, nil)
		second := testdb.AddHiringRequest(t, f.db, f.manager, nil)
		require.NoError(t, f.handler.ChangeStatus(ctx, f.rh.ToActor(), second.ID, models.HRStatusCancelled))

		filter := hiringrequestapimodels.HiringRequestFilter{Status: models.HRStatusCancelled}
		list, rowCount, err := f.handler.List(filter)
		require.NoError(t, err)
		require.Equal(t, int64(1), rowCount)
		require.Len(t, list, 1)
		require.Equal(t, second.ID, list[0].ID)
	})
}
