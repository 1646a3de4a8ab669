package jobofferhandler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	candidatelifecycle "hr-pipeline-backend/lib/candidate-lifecycle"
	notificationhandler "hr-pipeline-backend/lib/notification"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	offerapimodels "hr-pipeline-backend/models/api/offer"
)

func TestOffer(t *testing.T) {
	ctx := context.Background()
	conn := testdb.New(t)
	rh := testdb.AddUser(t, conn, models.RHRole, "rh")
	request := testdb.AddHiringRequest(t, conn, rh, &rh.ID)
	cand := testdb.AddCandidate(t, conn, models.CandidateStatusSelected, &request.ID)
	handler := NewInstance(conn, Options{
		Lifecycle: candidatelifecycle.NewInstance(conn, candidatelifecycle.Options{
			Notifier: notificationhandler.NewInstance(conn, notificationhandler.Options{}),
		}),
		Company: models.CompanyInfo{
			Name:    "Atelier Nord",
			Address: "12 rue de l'Usine, Lille",
			Contact: "rh@atelier-nord.example.com",
			// логотипа нет в хранилище, письмо формируется без него
			LogoKey: "company/logo.png",
		},
	})

	t.Run(`no offer yet`, func(t *testing.T) {
		_, err := handler.Get(cand.ID)
		require.True(t, apperrors.IsNotFound(err))
		_, _, err = handler.GenerateLetter(ctx, cand.ID)
		require.True(t, apperrors.IsNotFound(err))
	})

	t.Run(`send and generate letter`, func(t *testing.T) {
		startDate := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
		view, err := handler.Send(ctx, rh.ToActor(), cand.ID, offerapimodels.OfferSendData{
			ProposedSalary: 32000,
			StartDate:      &startDate,
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusOfferSent, view.Status)

		offer, err := handler.Get(cand.ID)
		require.NoError(t, err)
		require.Equal(t, models.OfferResponsePending, offer.Response)
		require.Equal(t, float64(32000), offer.ProposedSalary)

		body, fileName, err := handler.GenerateLetter(ctx, cand.ID)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
		require.Contains(t, fileName, ".pdf")
	})

	t.Run(`pending response rejected`, func(t *testing.T) {
		_, err := handler.SetResponse(ctx, rh.ToActor(), cand.ID, offerapimodels.OfferResponseData{
			Response: models.OfferResponsePending,
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`accepted`, func(t *testing.T) {
		view, err := handler.SetResponse(ctx, rh.ToActor(), cand.ID, offerapimodels.OfferResponseData{
			Response: models.OfferResponseAccepted,
		})
		require.NoError(t, err)
		require.Equal(t, models.CandidateStatusHired, view.Status)
	})
}
