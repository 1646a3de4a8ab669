package candidateapimodels

import (
	interviewapimodels "hr-pipeline-backend/models/api/interview"
	offerapimodels "hr-pipeline-backend/models/api/offer"
	dbmodels "hr-pipeline-backend/models/db"
)

type CandidateViewExt struct {
	CandidateView
	Interviews   []interviewapimodels.InterviewView `json:"interviews"`
	Offer        *offerapimodels.OfferView          `json:"offer"`
	MedicalVisit *offerapimodels.MedicalVisitView   `json:"medical_visit"`
}

func ConvertExt(rec dbmodels.Candidate) CandidateViewExt {
	result := CandidateViewExt{
		CandidateView: Convert(rec),
		Interviews:    make([]interviewapimodels.InterviewView, 0, len(rec.Interviews)),
	}
	for _, item := range rec.Interviews {
		result.Interviews = append(result.Interviews, interviewapimodels.Convert(item))
	}
	if rec.JobOffer != nil {
		offer := offerapimodels.Convert(*rec.JobOffer)
		result.Offer = &offer
	}
	if rec.MedicalVisit != nil {
		visit := offerapimodels.ConvertMedicalVisit(*rec.MedicalVisit)
		result.MedicalVisit = &visit
	}
	return result
}
