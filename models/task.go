package models

import (
	"time"
)

// Default values applied when a task is created without them.
const (
	TaskStatusOpen     = "open"
	TaskPriorityMedium = "medium"
)

// Task represents a follow-up item, optionally linked to a contact,
// referral, or meeting
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ContactID   *string    `json:"contactId"`
	ReferralID  *string    `json:"referralId"`
	MeetingID   *string    `json:"meetingId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
