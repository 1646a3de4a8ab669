package candidatelifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/models"
)

func TestResolveOpinionStatus(t *testing.T) {
	fav, unfav, none := models.OpinionFavorable, models.OpinionUnfavorable, models.OpinionNone
	cases := []struct {
		name     string
		current  models.CandidateStatus
		hr       models.Opinion
		manager  models.Opinion
		expected models.CandidateStatus
	}{
		{"both favorable from shortlisted", models.CandidateStatusShortlisted, fav, fav, models.CandidateStatusSelected},
		{"both favorable from received", models.CandidateStatusReceived, fav, fav, models.CandidateStatusSelected},
		{"both favorable after hr interview", models.CandidateStatusHRInterview, fav, fav, models.CandidateStatusSelected},
		{"both favorable already selected", models.CandidateStatusSelected, fav, fav, models.CandidateStatusSelected},
		{"both favorable from medical visit", models.CandidateStatusMedicalVisit, fav, fav, models.CandidateStatusSelected},
		{"both favorable from offer sent", models.CandidateStatusOfferSent, fav, fav, models.CandidateStatusSelected},
		{"hr favorable alone from received", models.CandidateStatusReceived, fav, none, models.CandidateStatusShortlisted},
		{"hr favorable alone from shortlisted", models.CandidateStatusShortlisted, fav, none, models.CandidateStatusShortlisted},
		{"hr favorable alone later stage", models.CandidateStatusTechnicalInterview, fav, none, models.CandidateStatusTechnicalInterview},
		{"manager favorable alone", models.CandidateStatusReceived, none, fav, models.CandidateStatusReceived},
		{"hr unfavorable", models.CandidateStatusReceived, unfav, none, models.CandidateStatusRejected},
		{"manager unfavorable", models.CandidateStatusHRInterview, fav, unfav, models.CandidateStatusRejected},
		{"unfavorable after offer", models.CandidateStatusOfferSent, unfav, fav, models.CandidateStatusRejected},
		{"no opinions", models.CandidateStatusShortlisted, none, none, models.CandidateStatusShortlisted},
		{"hired is terminal", models.CandidateStatusHired, unfav, unfav, models.CandidateStatusHired},
		{"rejected is terminal", models.CandidateStatusRejected, fav, fav, models.CandidateStatusRejected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, ResolveOpinionStatus(tc.current, tc.hr, tc.manager))
		})
	}
}

func TestResolveInterviewStatus(t *testing.T) {
	t.Run(`admitted technical`, func(t *testing.T) {
		status := ResolveInterviewStatus(models.CandidateStatusShortlisted, models.InterviewTypeTechnical, models.InterviewResultAdmitted)
		require.Equal(t, models.CandidateStatusTechnicalInterview, status)
	})
	t.Run(`admitted other types`, func(t *testing.T) {
		for _, interviewType := range []models.InterviewType{models.InterviewTypeHR, models.InterviewTypeManager, models.InterviewTypeFinal} {
			status := ResolveInterviewStatus(models.CandidateStatusShortlisted, interviewType, models.InterviewResultAdmitted)
			require.Equal(t, models.CandidateStatusHRInterview, status, interviewType)
		}
	})
	t.Run(`rejected`, func(t *testing.T) {
		status := ResolveInterviewStatus(models.CandidateStatusTechnicalInterview, models.InterviewTypeHR, models.InterviewResultRejected)
		require.Equal(t, models.CandidateStatusRejected, status)
	})
	t.Run(`pending`, func(t *testing.T) {
		status := ResolveInterviewStatus(models.CandidateStatusShortlisted, models.InterviewTypeTechnical, models.InterviewResultPending)
		require.Equal(t, models.CandidateStatusShortlisted, status)
	})
	t.Run(`terminal`, func(t *testing.T) {
		status := ResolveInterviewStatus(models.CandidateStatusHired, models.InterviewTypeTechnical, models.InterviewResultRejected)
		require.Equal(t, models.CandidateStatusHired, status)
	})
}

func TestResolveOfferStatus(t *testing.T) {
	require.Equal(t, models.CandidateStatusHired, ResolveOfferStatus(models.CandidateStatusOfferSent, models.OfferResponseAccepted))
	require.Equal(t, models.CandidateStatusRejected, ResolveOfferStatus(models.CandidateStatusOfferSent, models.OfferResponseRejected))
	require.Equal(t, models.CandidateStatusOfferSent, ResolveOfferStatus(models.CandidateStatusOfferSent, models.OfferResponsePending))
	require.Equal(t, models.CandidateStatusRejected, ResolveOfferStatus(models.CandidateStatusRejected, models.OfferResponseAccepted))
}

func TestResolveMedicalVisitStatus(t *testing.T) {
	require.Equal(t, models.CandidateStatusRejected, ResolveMedicalVisitStatus(models.CandidateStatusMedicalVisit, models.MedicalResultUnfit))
	require.Equal(t, models.CandidateStatusMedicalVisit, ResolveMedicalVisitStatus(models.CandidateStatusMedicalVisit, models.MedicalResultFit))
	require.Equal(t, models.CandidateStatusHired, ResolveMedicalVisitStatus(models.CandidateStatusHired, models.MedicalResultUnfit))
}
