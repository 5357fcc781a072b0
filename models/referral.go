package models

import (
	"time"
)

// ReferralStatus represents the status of a referral
type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusContacted ReferralStatus = "contacted"
	ReferralStatusAccepted  ReferralStatus = "accepted"
	ReferralStatusRejected  ReferralStatus = "rejected"
	ReferralStatusCompleted ReferralStatus = "completed"
)

// Valid reports whether s is one of the known referral statuses.
func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralStatusPending, ReferralStatusContacted, ReferralStatusAccepted,
		ReferralStatusRejected, ReferralStatusCompleted:
		return true
	}
	return false
}

// Referral represents a tracked introduction from a referrer to a prospect
type Referral struct {
	ID           string         `json:"id"`
	ReferrerID   string         `json:"referrerId"`
	RefereeEmail string         `json:"refereeEmail"`
	RefereeName  *string        `json:"refereeName"`
	Status       ReferralStatus `json:"status"`
	Notes        *string        `json:"notes"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
}
