package models

import "fmt"

type NotificationType string

type NotificationTpl struct {
	Name  string
	Title string
	Msg   string
}

var NotificationTplMap = map[NotificationType]NotificationTpl{
	NotificationInterviewAdmitted: {Name: "Candidat admis à l'entretien", Title: "Candidat admis", Msg: "Le candidat %v (poste «%v») a été admis à l'entretien %v."},
	NotificationInterviewReminder: {Name: "Rappel d'entretien", Title: "Rappel d'entretien", Msg: "Entretien %v avec %v prévu le %v."},
	NotificationCandidateHired:    {Name: "Candidat recruté", Title: "Offre acceptée", Msg: "Le candidat %v a accepté l'offre pour le poste «%v»."},

	NotificationHRValidatedByRH:      {Name: "Validation RH de la demande", Title: "Demande validée par les RH", Msg: "La demande «%v» a été validée par %v. %v"},
	NotificationHRValidatedByManager: {Name: "Validation directeur de la demande", Title: "Demande validée par le directeur", Msg: "La demande «%v» a été validée par %v. %v"},
	NotificationHRRejected:           {Name: "Rejet de la demande", Title: "Demande rejetée", Msg: "La demande «%v» a été rejetée par %v (%v). Motif: %v"},
	NotificationHRApproved:           {Name: "Demande approuvée", Title: "Poste vacant", Msg: "La demande «%v» est validée à toutes les étapes, le poste est ouvert au recrutement."},
}

const (
	NotificationInterviewAdmitted NotificationType = "INTERVIEW_ADMITTED"
	NotificationInterviewReminder NotificationType = "INTERVIEW_REMINDER"
	NotificationCandidateHired    NotificationType = "CANDIDATE_HIRED"

	NotificationHRValidatedByRH      NotificationType = "HIRING_REQUEST_VALIDATED_RH"
	NotificationHRValidatedByManager NotificationType = "HIRING_REQUEST_VALIDATED_MANAGER"
	NotificationHRRejected           NotificationType = "HIRING_REQUEST_REJECTED"
	NotificationHRApproved           NotificationType = "HIRING_REQUEST_APPROVED"
)

const (
	RelatedCandidate     = "candidate"
	RelatedHiringRequest = "hiring_request"
	RelatedInterview     = "interview"
)

type NotificationData struct {
	Type        NotificationType
	Title       string
	Msg         string
	RelatedID   uint
	RelatedType string
	CreatedBy   *uint
}

func GetNotificationInterviewAdmitted(candidateID uint, candidateName, position string, interviewType InterviewType) NotificationData {
	code := NotificationInterviewAdmitted
	return NotificationData{
		Type:        code,
		Title:       NotificationTplMap[code].Title,
		Msg:         fmt.Sprintf(NotificationTplMap[code].Msg, candidateName, position, interviewType.ToHuman()),
		RelatedID:   candidateID,
		RelatedType: RelatedCandidate,
	}
}

func GetNotificationInterviewReminder(interviewID uint, candidateName string, interviewType InterviewType, scheduledAt string) NotificationData {
	code := NotificationInterviewReminder
	return NotificationData{
		Type:        code,
		Title:       NotificationTplMap[code].Title,
		Msg:         fmt.Sprintf(NotificationTplMap[code].Msg, interviewType.ToHuman(), candidateName, scheduledAt),
		RelatedID:   interviewID,
		RelatedType: RelatedInterview,
	}
}

func GetNotificationCandidateHired(candidateID uint, candidateName, position string) NotificationData {
	code := NotificationCandidateHired
	return NotificationData{
		Type:        code,
		Title:       NotificationTplMap[code].Title,
		Msg:         fmt.Sprintf(NotificationTplMap[code].Msg, candidateName, position),
		RelatedID:   candidateID,
		RelatedType: RelatedCandidate,
	}
}

func GetNotificationHRValidated(step ValidationStep, requestID uint, jobTitle, userName, reason string) NotificationData {
	code := NotificationHRValidatedByRH
	if step == ValidationStepManager {
		code = NotificationHRValidatedByManager
	}
	return NotificationData{
		Type:        code,
		Title:       NotificationTplMap[code].Title,
		Msg:         fmt.Sprintf(NotificationTplMap[code].Msg, jobTitle, userName, reason),
		RelatedID:   requestID,
		RelatedType: RelatedHiringRequest,
	}
}

func GetNotificationHRRejected(step ValidationStep, requestID uint, jobTitle, userName, reason string) NotificationData {
	code := NotificationHRRejected
	if reason == "" {
		reason = "non précisé"
	}
	return NotificationData{
		Type:        code,
		Title:       NotificationTplMap[code].Title,
		Msg:         fmt.Sprintf(NotificationTplMap[code].Msg, jobTitle, userName, step.ToHuman(), reason),
		RelatedID:   requestID,
		RelatedType: RelatedHiringRequest,
	}
}

func GetNotificationHRApproved(requestID uint, jobTitle string) NotificationData {
	code := NotificationHRApproved
	return NotificationData{
		Type:        code,
		Title:       NotificationTplMap[code].Title,
		Msg:         fmt.Sprintf(NotificationTplMap[code].Msg, jobTitle),
		RelatedID:   requestID,
		RelatedType: RelatedHiringRequest,
	}
}
