package models

import (
	"strings"

	"github.com/pkg/errors"
)

type CandidateStatus string

const (
	CandidateStatusReceived           CandidateStatus = "RECEIVED"
	CandidateStatusShortlisted        CandidateStatus = "SHORTLISTED"
	CandidateStatusTechnicalInterview CandidateStatus = "TECHNICAL_INTERVIEW"
	CandidateStatusHRInterview        CandidateStatus = "HR_INTERVIEW"
	CandidateStatusSelected           CandidateStatus = "SELECTED"
	CandidateStatusMedicalVisit       CandidateStatus = "MEDICAL_VISIT"
	CandidateStatusOfferSent          CandidateStatus = "OFFER_SENT"
	CandidateStatusHired              CandidateStatus = "HIRED"
	CandidateStatusRejected           CandidateStatus = "REJECTED"
)

// CandidateStatusOrder порядок статусов в воронке подбора
var CandidateStatusOrder = []CandidateStatus{
	CandidateStatusReceived,
	CandidateStatusShortlisted,
	CandidateStatusTechnicalInterview,
	CandidateStatusHRInterview,
	CandidateStatusSelected,
	CandidateStatusMedicalVisit,
	CandidateStatusOfferSent,
	CandidateStatusHired,
	CandidateStatusRejected,
}

var candidateStatusLabel = map[CandidateStatus]string{
	CandidateStatusReceived:           "Reçu",
	CandidateStatusShortlisted:        "Présélectionné",
	CandidateStatusTechnicalInterview: "Entretien technique",
	CandidateStatusHRInterview:        "Entretien RH",
	CandidateStatusSelected:           "Sélectionné",
	CandidateStatusMedicalVisit:       "Visite médicale",
	CandidateStatusOfferSent:          "Offre envoyée",
	CandidateStatusHired:              "Validé",
	CandidateStatusRejected:           "Refus",
}

// candidateStatusAliases устаревшие подписи статусов, встречающиеся в старых данных.
// Используются только для отображения и сводной статистики, движок их не принимает.
var candidateStatusAliases = map[string]CandidateStatus{
	"reçu":                CandidateStatusReceived,
	"nouveau":             CandidateStatusReceived,
	"présélectionné":      CandidateStatusShortlisted,
	"preselectionne":      CandidateStatusShortlisted,
	"entretien technique": CandidateStatusTechnicalInterview,
	"entretien rh":        CandidateStatusHRInterview,
	"sélectionné":         CandidateStatusSelected,
	"selectionne":         CandidateStatusSelected,
	"retenu":              CandidateStatusSelected,
	"visite médicale":     CandidateStatusMedicalVisit,
	"offre envoyée":       CandidateStatusOfferSent,
	"validé":              CandidateStatusHired,
	"valide":              CandidateStatusHired,
	"embauché":            CandidateStatusHired,
	"recruté":             CandidateStatusHired,
	"refus":               CandidateStatusRejected,
	"refusé":              CandidateStatusRejected,
	"rejeté":              CandidateStatusRejected,
}

func (s CandidateStatus) ToHuman() string {
	if human, exist := candidateStatusLabel[s]; exist {
		return human
	}
	return string(s)
}

func (s CandidateStatus) Validate() error {
	if _, ok := candidateStatusLabel[s]; !ok {
		return errors.Errorf("некорректный статус кандидата: %v", s)
	}
	return nil
}

// IsTerminal из этих статусов автоматические переходы не выполняются
func (s CandidateStatus) IsTerminal() bool {
	return s == CandidateStatusHired || s == CandidateStatusRejected
}

// Rank позиция статуса в воронке, -1 для неизвестного значения
func (s CandidateStatus) Rank() int {
	for idx, item := range CandidateStatusOrder {
		if item == s {
			return idx
		}
	}
	return -1
}

// NormalizeCandidateStatus приводит сохранённое значение (каноническое или устаревшую подпись) к статусу.
// ok = false, если значение не распознано.
func NormalizeCandidateStatus(value string) (status CandidateStatus, ok bool) {
	if _, exist := candidateStatusLabel[CandidateStatus(value)]; exist {
		return CandidateStatus(value), true
	}
	status, ok = candidateStatusAliases[strings.ToLower(strings.TrimSpace(value))]
	return status, ok
}

type Opinion string

const (
	OpinionNone        Opinion = ""
	OpinionFavorable   Opinion = "FAVORABLE"
	OpinionUnfavorable Opinion = "UNFAVORABLE"
)

var opinionLabel = map[Opinion]string{
	OpinionNone:        "Non renseigné",
	OpinionFavorable:   "Favorable",
	OpinionUnfavorable: "Défavorable",
}

func (o Opinion) ToHuman() string {
	if human, exist := opinionLabel[o]; exist {
		return human
	}
	return string(o)
}

func (o Opinion) Validate() error {
	if _, ok := opinionLabel[o]; !ok {
		return errors.Errorf("некорректное значение мнения: %v", o)
	}
	return nil
}

type CandidateSource string

const (
	SourceWebsite     CandidateSource = "WEBSITE"
	SourceReferral    CandidateSource = "REFERRAL"
	SourceJobBoard    CandidateSource = "JOB_BOARD"
	SourceLinkedIn    CandidateSource = "LINKEDIN"
	SourceAgency      CandidateSource = "AGENCY"
	SourceSpontaneous CandidateSource = "SPONTANEOUS"
	SourceOther       CandidateSource = "OTHER"
)

var candidateSourceLabel = map[CandidateSource]string{
	SourceWebsite:     "Site carrière",
	SourceReferral:    "Cooptation",
	SourceJobBoard:    "Job board",
	SourceLinkedIn:    "LinkedIn",
	SourceAgency:      "Cabinet",
	SourceSpontaneous: "Candidature spontanée",
	SourceOther:       "Autre",
}

func (s CandidateSource) ToHuman() string {
	if human, exist := candidateSourceLabel[s]; exist {
		return human
	}
	return string(s)
}

func (s CandidateSource) Validate() error {
	if s == "" {
		return nil
	}
	if _, ok := candidateSourceLabel[s]; !ok {
		return errors.Errorf("некорректный источник кандидата: %v", s)
	}
	return nil
}
