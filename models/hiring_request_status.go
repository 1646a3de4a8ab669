package models

import "github.com/pkg/errors"

type HRStatus string

const (
	HRStatusPendingValidation HRStatus = "PENDING_VALIDATION"
	HRStatusVacant            HRStatus = "VACANT"
	HRStatusInProgress        HRStatus = "IN_PROGRESS"
	HRStatusHired             HRStatus = "HIRED"
	HRStatusCompleted         HRStatus = "COMPLETED"
	HRStatusCancelled         HRStatus = "CANCELLED"
)

// HRStatusOrder порядок статусов заявки для отчётов
var HRStatusOrder = []HRStatus{
	HRStatusPendingValidation,
	HRStatusVacant,
	HRStatusInProgress,
	HRStatusHired,
	HRStatusCompleted,
	HRStatusCancelled,
}

var hrStatusLabel = map[HRStatus]string{
	HRStatusPendingValidation: "En attente de validation",
	HRStatusVacant:            "Poste vacant",
	HRStatusInProgress:        "En cours",
	HRStatusHired:             "Recruté",
	HRStatusCompleted:         "Clôturée",
	HRStatusCancelled:         "Annulée",
}

func (s HRStatus) ToHuman() string {
	if human, exist := hrStatusLabel[s]; exist {
		return human
	}
	return string(s)
}

func (s HRStatus) Validate() error {
	if _, ok := hrStatusLabel[s]; !ok {
		return errors.Errorf("некорректный статус заявки: %v", s)
	}
	return nil
}

// IsManualAllowed статусы, которые можно выставить заявке вручную
func (s HRStatus) IsManualAllowed() bool {
	switch s {
	case HRStatusInProgress, HRStatusCompleted, HRStatusCancelled:
		return true
	}
	return false
}

type ValidationStatus string

const (
	ValidationPending  ValidationStatus = "PENDING"
	ValidationApproved ValidationStatus = "APPROVED"
	ValidationRejected ValidationStatus = "REJECTED"
)

var validationStatusLabel = map[ValidationStatus]string{
	ValidationPending:  "En attente",
	ValidationApproved: "Approuvée",
	ValidationRejected: "Rejetée",
}

func (s ValidationStatus) ToHuman() string {
	if human, exist := validationStatusLabel[s]; exist {
		return human
	}
	return string(s)
}

// ValidateDecision решением шага может быть только согласование или отклонение
func (s ValidationStatus) ValidateDecision() error {
	if s != ValidationApproved && s != ValidationRejected {
		return errors.Errorf("некорректное решение: %v", s)
	}
	return nil
}

type ValidationStep string

const (
	ValidationStepRH          ValidationStep = "VALIDATE_RH"
	ValidationStepManager     ValidationStep = "VALIDATE_MANAGER"
	ValidationStepRecruitment ValidationStep = "VALIDATE_RECRUITMENT"
)

var validationStepLabel = map[ValidationStep]string{
	ValidationStepRH:          "Validation RH",
	ValidationStepManager:     "Validation directeur d'usine",
	ValidationStepRecruitment: "Validation recrutement",
}

// validationStepRoles роли, которым доступен шаг согласования
var validationStepRoles = map[ValidationStep][]UserRole{
	ValidationStepRH:          {RHRole},
	ValidationStepManager:     {ManagerRole},
	ValidationStepRecruitment: {RHRole, CORole},
}

func (s ValidationStep) ToHuman() string {
	if human, exist := validationStepLabel[s]; exist {
		return human
	}
	return string(s)
}

func (s ValidationStep) Validate() error {
	if _, ok := validationStepLabel[s]; !ok {
		return errors.Errorf("некорректный шаг согласования: %v", s)
	}
	return nil
}

func (s ValidationStep) IsAllowedFor(role UserRole) bool {
	return role.In(validationStepRoles[s]...)
}
