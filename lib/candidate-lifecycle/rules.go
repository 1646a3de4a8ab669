package candidatelifecycle

import "hr-pipeline-backend/models"

// Trigger источник изменения кандидата
type Trigger string

const (
	TriggerCreated      Trigger = "CREATED"
	TriggerEdit         Trigger = "EDIT"
	TriggerOpinion      Trigger = "OPINION"
	TriggerInterview    Trigger = "INTERVIEW"
	TriggerOfferSent    Trigger = "OFFER_SENT"
	TriggerOffer        Trigger = "OFFER_RESPONSE"
	TriggerMedicalVisit Trigger = "MEDICAL_VISIT"
	TriggerManual       Trigger = "MANUAL"
)

// ResolveOpinionStatus статус после изменения мнений RH/руководителя.
// Правила проверяются по порядку, срабатывает первое подходящее.
func ResolveOpinionStatus(current models.CandidateStatus, hr, manager models.Opinion) models.CandidateStatus {
	if current.IsTerminal() {
		return current
	}
	if hr == models.OpinionFavorable && manager == models.OpinionFavorable {
		// HIRED уже отсечён как терминальный
		return models.CandidateStatusSelected
	}
	if hr == models.OpinionFavorable && manager == models.OpinionNone && current == models.CandidateStatusReceived {
		return models.CandidateStatusShortlisted
	}
	if hr == models.OpinionUnfavorable || manager == models.OpinionUnfavorable {
		return models.CandidateStatusRejected
	}
	return current
}

// ResolveInterviewStatus статус после выставления результата собеседования
func ResolveInterviewStatus(current models.CandidateStatus, interviewType models.InterviewType, result models.InterviewResult) models.CandidateStatus {
	if current.IsTerminal() {
		return current
	}
	switch result {
	case models.InterviewResultAdmitted:
		if interviewType == models.InterviewTypeTechnical {
			return models.CandidateStatusTechnicalInterview
		}
		return models.CandidateStatusHRInterview
	case models.InterviewResultRejected:
		return models.CandidateStatusRejected
	}
	return current
}

// ResolveOfferStatus статус после ответа кандидата на предложение
func ResolveOfferStatus(current models.CandidateStatus, response models.OfferResponse) models.CandidateStatus {
	if current.IsTerminal() {
		return current
	}
	switch response {
	case models.OfferResponseAccepted:
		return models.CandidateStatusHired
	case models.OfferResponseRejected:
		return models.CandidateStatusRejected
	}
	return current
}

// ResolveMedicalVisitStatus статус после результата медосмотра
func ResolveMedicalVisitStatus(current models.CandidateStatus, result models.MedicalResult) models.CandidateStatus {
	if current.IsTerminal() {
		return current
	}
	if result == models.MedicalResultUnfit {
		return models.CandidateStatusRejected
	}
	return current
}
