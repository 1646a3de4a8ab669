package candidatelifecycle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	notificationhandler "hr-pipeline-backend/lib/notification"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
	offerapimodels "hr-pipeline-backend/models/api/offer"
	dbmodels "hr-pipeline-backend/models/db"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type recordedEvent struct {
	channel string
	payload interface{}
}

type recordingEvents struct {
	mu   sync.Mutex
	list []recordedEvent
}

func (r *recordingEvents) Publish(ctx context.Context, channel string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, recordedEvent{channel: channel, payload: payload})
}

func (r *recordingEvents) count(channel string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := 0
	for _, item := range r.list {
		if item.channel == channel {
			result++
		}
	}
	return result
}

type fixture struct {
	db      *gorm.DB
	engine  Provider
	events  *recordingEvents
	rh      dbmodels.User
	manager dbmodels.User
	co      dbmodels.User
}

func newFixture(t *testing.T) fixture {
	conn := testdb.New(t)
	f := fixture{
		db:      conn,
		events:  &recordingEvents{},
		rh:      testdb.AddUser(t, conn, models.RHRole, "rh"),
		manager: testdb.AddUser(t, conn, models.ManagerRole, "manager"),
		co:      testdb.AddUser(t, conn, models.CORole, "co"),
	}
	f.engine = NewInstance(conn, Options{
		Notifier: notificationhandler.NewInstance(conn, notificationhandler.Options{}),
		Events:   f.events,
		Now: func() time.Time {
			return fixedNow
		},
	})
	return f
}

func (f fixture) reload(t *testing.T, id uint) dbmodels.Candidate {
	rec := dbmodels.Candidate{}
	require.NoError(t, f.db.First(&rec, id).Error)
	return rec
}

func (f fixture) history(t *testing.T, candidateID uint) []dbmodels.StatusHistory {
	list := []dbmodels.StatusHistory{}
	require.NoError(t, f.db.Where("candidate_id = ?", candidateID).Order("id").Find(&list).Error)
	return list
}

func (f fixture) notifications(t *testing.T, notificationType models.NotificationType) []dbmodels.Notification {
	list := []dbmodels.Notification{}
	require.NoError(t, f.db.Where("type = ?", notificationType).Find(&list).Error)
	return list
}

func opinion(value models.Opinion) *models.Opinion {
	return &value
}

func TestOpinions(t *testing.T) {
	ctx := context.Background()

	t.Run(`both favorable selects shortlisted candidate`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)

		rec, err := f.engine.SetOpinions(ctx, f.manager.ToActor(), cand.ID, candidateapimodels.OpinionData{
			HROpinion:      opinion(models.OpinionFavorable),
			ManagerOpinion: opinion(models.OpinionFavorable),
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusSelected, rec.Status)
		require.Equal(t, 2, rec.Version)

		history := f.history(t, cand.ID)
		require.Len(t, history, 1)
		require.Equal(t, models.CandidateStatusShortlisted, history[0].OldStatus)
		require.Equal(t, models.CandidateStatusSelected, history[0].NewStatus)
		require.Equal(t, string(TriggerOpinion), history[0].Trigger)
		require.Equal(t, f.manager.ID, history[0].ChangedBy)
		require.Equal(t, 1, f.events.count(models.EventCandidateStatusChanged))
	})

	t.Run(`hr favorable alone shortlists received candidate`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusReceived, nil)

		rec, err := f.engine.SetOpinions(ctx, f.rh.ToActor(), cand.ID, candidateapimodels.OpinionData{
			HROpinion: opinion(models.OpinionFavorable),
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusShortlisted, rec.Status)
		require.Equal(t, models.OpinionFavorable, rec.HROpinion)
		require.Equal(t, models.OpinionNone, rec.ManagerOpinion)
	})

	t.Run(`both favorable after offer sent returns to selected`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusOfferSent, nil)

		rec, err := f.engine.SetOpinions(ctx, f.rh.ToActor(), cand.ID, candidateapimodels.OpinionData{
			HROpinion:      opinion(models.OpinionFavorable),
			ManagerOpinion: opinion(models.OpinionFavorable),
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusSelected, rec.Status)

		history := f.history(t, cand.ID)
		require.Len(t, history, 1)
		require.Equal(t, models.CandidateStatusOfferSent, history[0].OldStatus)
		require.Equal(t, models.CandidateStatusSelected, history[0].NewStatus)
	})

	t.Run(`hr unfavorable rejects`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusTechnicalInterview, nil)

		rec, err := f.engine.UpdateCandidate(ctx, f.rh.ToActor(), cand.ID, candidateapimodels.CandidateEditData{
			HROpinion: opinion(models.OpinionUnfavorable),
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusRejected, rec.Status)
		require.Len(t, f.history(t, cand.ID), 1)
	})

	t.Run(`co cannot give opinion`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)

		_, err := f.engine.SetOpinions(ctx, f.co.ToActor(), cand.ID, candidateapimodels.OpinionData{
			HROpinion:      opinion(models.OpinionFavorable),
			ManagerOpinion: opinion(models.OpinionFavorable),
		})
		require.True(t, apperrors.IsForbidden(err))

		rec := f.reload(t, cand.ID)
		require.Equal(t, models.CandidateStatusShortlisted, rec.Status)
		require.Equal(t, models.OpinionNone, rec.HROpinion)
		require.Equal(t, 1, rec.Version)
		require.Empty(t, f.history(t, cand.ID))
		require.Equal(t, 0, f.events.count(models.EventCandidateStatusChanged))
	})

	t.Run(`same opinions twice change status once`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
		data := candidateapimodels.OpinionData{
			HROpinion:      opinion(models.OpinionFavorable),
			ManagerOpinion: opinion(models.OpinionFavorable),
		}

		_, err := f.engine.SetOpinions(ctx, f.rh.ToActor(), cand.ID, data)
		require.NoError(t, err)
		rec, err := f.engine.SetOpinions(ctx, f.rh.ToActor(), cand.ID, data)
		require.NoError(t, err)

		require.Equal(t, models.CandidateStatusSelected, rec.Status)
		require.Equal(t, 2, rec.Version)
		require.Len(t, f.history(t, cand.ID), 1)
		require.Equal(t, 1, f.events.count(models.EventCandidateStatusChanged))
	})

	t.Run(`co can edit plain fields`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusReceived, nil)
		phone := "+213 555 00 11 22"

		rec, err := f.engine.UpdateCandidate(ctx, f.co.ToActor(), cand.ID, candidateapimodels.CandidateEditData{
			Phone: &phone,
		})
		require.NoError(t, err)
		require.Equal(t, phone, rec.Phone)
		require.Equal(t, models.CandidateStatusReceived, rec.Status)
		require.Equal(t, 2, rec.Version)
		require.Empty(t, f.history(t, cand.ID))
	})

	t.Run(`unknown hiring request`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusReceived, nil)
		requestID := uint(404)

		_, err := f.engine.UpdateCandidate(ctx, f.rh.ToActor(), cand.ID, candidateapimodels.CandidateEditData{
			HiringRequestID: &requestID,
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`missing candidate`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.SetOpinions(ctx, f.rh.ToActor(), 100500, candidateapimodels.OpinionData{
			HROpinion: opinion(models.OpinionFavorable),
		})
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run(`manual change leaves terminal status`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusRejected, nil)

		rec, err := f.engine.ChangeStatus(ctx, f.rh.ToActor(), cand.ID, models.CandidateStatusShortlisted, "erreur de saisie")
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusShortlisted, rec.Status)

		history := f.history(t, cand.ID)
		require.Len(t, history, 1)
		require.Equal(t, string(TriggerManual), history[0].Trigger)
		require.Equal(t, "erreur de saisie", history[0].Comment)
	})

	t.Run(`co cannot change status`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusReceived, nil)

		_, err := f.engine.ChangeStatus(ctx, f.co.ToActor(), cand.ID, models.CandidateStatusSelected, "")
		require.True(t, apperrors.IsForbidden(err))
		require.Equal(t, models.CandidateStatusReceived, f.reload(t, cand.ID).Status)
	})
}

func TestInterviewResult(t *testing.T) {
	ctx := context.Background()

	t.Run(`technical admitted notifies co and rh`, func(t *testing.T) {
		f := newFixture(t)
		co2 := testdb.AddUser(t, f.db, models.CORole, "co2")
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusShortlisted, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeTechnical)
		comments := "bon niveau"

		rec, err := f.engine.SetInterviewResult(ctx, f.rh.ToActor(), interview.ID, models.InterviewResultAdmitted, &comments)
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusTechnicalInterview, rec.Status)
		require.Len(t, rec.Interviews, 1)
		require.Equal(t, models.InterviewResultAdmitted, rec.Interviews[0].Result)
		require.Equal(t, comments, rec.Interviews[0].Comments)

		list := f.notifications(t, models.NotificationInterviewAdmitted)
		require.Len(t, list, 3)
		recipients := map[uint]int{}
		for _, item := range list {
			recipients[item.UserID]++
			require.Equal(t, cand.ID, item.RelatedID)
			require.Equal(t, models.RelatedCandidate, item.RelatedType)
		}
		require.Equal(t, map[uint]int{f.rh.ID: 1, f.co.ID: 1, co2.ID: 1}, recipients)

		// повторный результат не меняет статус и не порождает уведомлений
		_, err = f.engine.SetInterviewResult(ctx, f.rh.ToActor(), interview.ID, models.InterviewResultAdmitted, nil)
		require.NoError(t, err)
		require.Len(t, f.notifications(t, models.NotificationInterviewAdmitted), 3)
		require.Len(t, f.history(t, cand.ID), 1)
	})

	t.Run(`hr interview admitted`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusTechnicalInterview, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeHR)

		rec, err := f.engine.SetInterviewResult(ctx, f.manager.ToActor(), interview.ID, models.InterviewResultAdmitted, nil)
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusHRInterview, rec.Status)
	})

	t.Run(`rejected interview`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusTechnicalInterview, nil)
		interview := testdb.AddInterview(t, f.db, cand.ID, models.InterviewTypeHR)

		rec, err := f.engine.SetInterviewResult(ctx, f.rh.ToActor(), interview.ID, models.InterviewResultRejected, nil)
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusRejected, rec.Status)
		require.Empty(t, f.notifications(t, models.NotificationInterviewAdmitted))
	})

	t.Run(`missing interview`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.engine.SetInterviewResult(ctx, f.rh.ToActor(), 42, models.InterviewResultAdmitted, nil)
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestOffer(t *testing.T) {
	ctx := context.Background()

	t.Run(`accepted offer hires candidate and fills request`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.manager, &f.rh.ID)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusSelected, &request.ID)

		rec, err := f.engine.SendOffer(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferSendData{ProposedSalary: 85000})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusOfferSent, rec.Status)
		require.NotNil(t, rec.JobOffer)
		require.Equal(t, models.OfferResponsePending, rec.JobOffer.Response)

		rec, err = f.engine.SetOfferResponse(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferResponseData{
			Response: models.OfferResponseAccepted,
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusHired, rec.Status)
		require.Equal(t, models.OfferResponseAccepted, rec.JobOffer.Response)
		require.NotNil(t, rec.JobOffer.ActualHiringDate)

		updated := dbmodels.HiringRequest{}
		require.NoError(t, f.db.First(&updated, request.ID).Error)
		require.Equal(t, models.HRStatusHired, updated.Status)
		require.NotNil(t, updated.ActualHiringDate)
		require.WithinDuration(t, fixedNow, *updated.ActualHiringDate, time.Second)

		history := f.history(t, cand.ID)
		require.Len(t, history, 2)
		require.Equal(t, models.CandidateStatusHired, history[1].NewStatus)

		hired := f.notifications(t, models.NotificationCandidateHired)
		require.Len(t, hired, 2)
		require.Equal(t, 1, f.events.count(models.EventHiringRequestStatusChanged))
	})

	t.Run(`rejected offer`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusSelected, nil)
		_, err := f.engine.SendOffer(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferSendData{})
		require.NoError(t, err)

		rec, err := f.engine.SetOfferResponse(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferResponseData{
			Response: models.OfferResponseRejected,
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusRejected, rec.Status)
	})

	t.Run(`response without offer`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusSelected, nil)

		_, err := f.engine.SetOfferResponse(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferResponseData{
			Response: models.OfferResponseAccepted,
		})
		require.True(t, apperrors.IsValidation(err))
		require.Equal(t, models.CandidateStatusSelected, f.reload(t, cand.ID).Status)
	})

	t.Run(`request update failure rolls back everything`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.manager, nil)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusSelected, &request.ID)
		_, err := f.engine.SendOffer(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferSendData{})
		require.NoError(t, err)

		err = f.db.Callback().Update().Before("gorm:update").Register("test:fail_hiring_request", func(tx *gorm.DB) {
			if tx.Statement.Table == "hiring_requests" {
				_ = tx.AddError(errors.New("simulated failure"))
			}
		})
		require.NoError(t, err)

		_, err = f.engine.SetOfferResponse(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferResponseData{
			Response: models.OfferResponseAccepted,
		})
		require.True(t, apperrors.IsStorage(err))

		rec := f.reload(t, cand.ID)
		require.Equal(t, models.CandidateStatusOfferSent, rec.Status)
		require.Len(t, f.history(t, cand.ID), 1)

		offer := dbmodels.JobOffer{}
		require.NoError(t, f.db.Where("candidate_id = ?", cand.ID).First(&offer).Error)
		require.Equal(t, models.OfferResponsePending, offer.Response)

		updated := dbmodels.HiringRequest{}
		require.NoError(t, f.db.First(&updated, request.ID).Error)
		require.Equal(t, models.HRStatusPendingValidation, updated.Status)
		require.Empty(t, f.notifications(t, models.NotificationCandidateHired))
	})

	t.Run(`history failure does not block hiring`, func(t *testing.T) {
		f := newFixture(t)
		request := testdb.AddHiringRequest(t, f.db, f.manager, &f.rh.ID)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusSelected, &request.ID)
		_, err := f.engine.SendOffer(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferSendData{})
		require.NoError(t, err)
		require.Len(t, f.history(t, cand.ID), 1)

		err = f.db.Callback().Create().Before("gorm:create").Register("test:fail_status_history", func(tx *gorm.DB) {
			if tx.Statement.Table == "status_histories" {
				_ = tx.AddError(errors.New("simulated failure"))
			}
		})
		require.NoError(t, err)

		rec, err := f.engine.SetOfferResponse(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferResponseData{
			Response: models.OfferResponseAccepted,
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusHired, rec.Status)
		require.Equal(t, models.CandidateStatusHired, f.reload(t, cand.ID).Status)

		updated := dbmodels.HiringRequest{}
		require.NoError(t, f.db.First(&updated, request.ID).Error)
		require.Equal(t, models.HRStatusHired, updated.Status)
		require.Len(t, f.history(t, cand.ID), 1)
	})

	t.Run(`no offer for rejected candidate`, func(t *testing.T) {
		f := newFixture(t)
		cand := testdb.AddCandidate(t, f.db, models.CandidateStatusRejected, nil)
		_, err := f.engine.SendOffer(ctx, f.rh.ToActor(), cand.ID, offerapimodels.OfferSendData{})
		require.True(t, apperrors.IsValidation(err))
	})
}

func TestMedicalVisit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cand := testdb.AddCandidate(t, f.db, models.CandidateStatusSelected, nil)

	t.Run(`schedule`, func(t *testing.T) {
		rec, err := f.engine.ScheduleMedicalVisit(ctx, f.rh.ToActor(), cand.ID, offerapimodels.MedicalVisitData{
			ScheduledAt: fixedNow.Add(48 * time.Hour),
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusMedicalVisit, rec.Status)
		require.NotNil(t, rec.MedicalVisit)
	})

	t.Run(`unfit rejects`, func(t *testing.T) {
		rec, err := f.engine.SetMedicalVisitResult(ctx, f.rh.ToActor(), cand.ID, offerapimodels.MedicalVisitResultData{
			Result: models.MedicalResultUnfit,
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusRejected, rec.Status)
		require.Equal(t, models.MedicalResultUnfit, rec.MedicalVisit.Result)
		require.Len(t, f.history(t, cand.ID), 2)
	})
}

func TestVersionConflict(t *testing.T) {
	f := newFixture(t)
	cand := testdb.AddCandidate(t, f.db, models.CandidateStatusReceived, nil)
	engine := f.engine.(impl)

	err := f.db.Transaction(func(tx *gorm.DB) error {
		_, err := engine.apply(newTxStores(tx), f.rh.ToActor(), cand.ID, TriggerManual, "", func(s txStores, c dbmodels.Candidate, ch *change) error {
			// параллельная запись между чтением и обновлением
			err := tx.Model(&dbmodels.Candidate{}).
				Where("id = ?", c.ID).
				Update("version", gorm.Expr("version + 1")).
				Error
			if err != nil {
				return err
			}
			ch.newStatus = models.CandidateStatusShortlisted
			return nil
		})
		return err
	})
	require.True(t, apperrors.IsConflict(err))

	rec := f.reload(t, cand.ID)
	require.Equal(t, models.CandidateStatusReceived, rec.Status)
	require.Equal(t, 1, rec.Version)
	require.Empty(t, f.history(t, cand.ID))
}
