package models

import (
	"time"
)

// SummaryJobStatus represents the status of a meeting-summary job
type SummaryJobStatus string

const (
	JobStatusPending    SummaryJobStatus = "pending"
	JobStatusInProgress SummaryJobStatus = "in_progress"
	JobStatusCompleted  SummaryJobStatus = "completed"
	JobStatusFailed     SummaryJobStatus = "failed"
)

// SummaryJob represents an asynchronous job that distills a meeting
// transcript into a summary and action items
type SummaryJob struct {
	ID           string           `json:"id"`
	MeetingID    string           `json:"meetingId"`
	Status       SummaryJobStatus `json:"status"`
	ErrorMessage *string          `json:"errorMessage,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty"`
}
