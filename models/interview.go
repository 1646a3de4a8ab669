package models

import "github.com/pkg/errors"

type InterviewType string

const (
	InterviewTypeTechnical InterviewType = "TECHNICAL"
	InterviewTypeHR        InterviewType = "HR"
	InterviewTypeManager   InterviewType = "MANAGER"
	InterviewTypeFinal     InterviewType = "FINAL"
)

var interviewTypeLabel = map[InterviewType]string{
	InterviewTypeTechnical: "Technique",
	InterviewTypeHR:        "RH",
	InterviewTypeManager:   "Manager",
	InterviewTypeFinal:     "Final",
}

func (t InterviewType) ToHuman() string {
	if human, exist := interviewTypeLabel[t]; exist {
		return human
	}
	return string(t)
}

func (t InterviewType) Validate() error {
	if _, ok := interviewTypeLabel[t]; !ok {
		return errors.Errorf("некорректный тип собеседования: %v", t)
	}
	return nil
}

type InterviewResult string

const (
	InterviewResultPending  InterviewResult = "PENDING"
	InterviewResultAdmitted InterviewResult = "ADMITTED"
	InterviewResultRejected InterviewResult = "REJECTED"
)

var interviewResultLabel = map[InterviewResult]string{
	InterviewResultPending:  "En attente",
	InterviewResultAdmitted: "Admis",
	InterviewResultRejected: "Non retenu",
}

func (r InterviewResult) ToHuman() string {
	if human, exist := interviewResultLabel[r]; exist {
		return human
	}
	return string(r)
}

func (r InterviewResult) Validate() error {
	if _, ok := interviewResultLabel[r]; !ok {
		return errors.Errorf("некорректный результат собеседования: %v", r)
	}
	return nil
}

type OfferResponse string

const (
	OfferResponsePending  OfferResponse = "PENDING"
	OfferResponseAccepted OfferResponse = "ACCEPTED"
	OfferResponseRejected OfferResponse = "REJECTED"
)

var offerResponseLabel = map[OfferResponse]string{
	OfferResponsePending:  "En attente",
	OfferResponseAccepted: "Acceptée",
	OfferResponseRejected: "Refusée",
}

func (r OfferResponse) ToHuman() string {
	if human, exist := offerResponseLabel[r]; exist {
		return human
	}
	return string(r)
}

func (r OfferResponse) Validate() error {
	if _, ok := offerResponseLabel[r]; !ok {
		return errors.Errorf("некорректный ответ на предложение: %v", r)
	}
	return nil
}

type MedicalResult string

const (
	MedicalResultPending MedicalResult = "PENDING"
	MedicalResultFit     MedicalResult = "FIT"
	MedicalResultUnfit   MedicalResult = "UNFIT"
)

var medicalResultLabel = map[MedicalResult]string{
	MedicalResultPending: "En attente",
	MedicalResultFit:     "Apte",
	MedicalResultUnfit:   "Inapte",
}

func (r MedicalResult) ToHuman() string {
	if human, exist := medicalResultLabel[r]; exist {
		return human
	}
	return string(r)
}

func (r MedicalResult) Validate() error {
	if _, ok := medicalResultLabel[r]; !ok {
		return errors.Errorf("некорректный результат медосмотра: %v", r)
	}
	return nil
}
