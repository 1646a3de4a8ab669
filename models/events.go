package models

import "time"

const (
	EventCandidateStatusChanged     = "EVENT_CANDIDATE_STATUS_CHANGED"
	EventHiringRequestStatusChanged = "EVENT_HIRING_REQUEST_STATUS_CHANGED"
)

type CandidateStatusEvent struct {
	CandidateID     uint            `json:"candidate_id"`
	HiringRequestID *uint           `json:"hiring_request_id,omitempty"`
	OldStatus       CandidateStatus `json:"old_status"`
	NewStatus       CandidateStatus `json:"new_status"`
	Trigger         string          `json:"trigger"`
	ChangedBy       uint            `json:"changed_by"`
	ChangedAt       time.Time       `json:"changed_at"`
}

type HiringRequestStatusEvent struct {
	HiringRequestID uint      `json:"hiring_request_id"`
	OldStatus       HRStatus  `json:"old_status"`
	NewStatus       HRStatus  `json:"new_status"`
	ChangedBy       uint      `json:"changed_by"`
	ChangedAt       time.Time `json:"changed_at"`
}
