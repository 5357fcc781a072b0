package models

import (
	"time"
)

// RewardType represents the kind of compensation tied to a referral
type RewardType string

const (
	RewardTypeCash   RewardType = "cash"
	RewardTypeCredit RewardType = "credit"
	RewardTypeGift   RewardType = "gift"
	RewardTypeOther  RewardType = "other"
)

// Valid reports whether t is one of the known reward types.
func (t RewardType) Valid() bool {
	switch t {
	case RewardTypeCash, RewardTypeCredit, RewardTypeGift, RewardTypeOther:
		return true
	}
	return false
}

// RewardStatus represents the payment status of a reward
type RewardStatus string

const (
	RewardStatusPending   RewardStatus = "pending"
	RewardStatusPaid      RewardStatus = "paid"
	RewardStatusCancelled RewardStatus = "cancelled"
)

// Valid reports whether s is one of the known reward statuses.
func (s RewardStatus) Valid() bool {
	switch s {
	case RewardStatusPending, RewardStatusPaid, RewardStatusCancelled:
		return true
	}
	return false
}

// ReferralReward represents a compensation record tied to a single referral
type ReferralReward struct {
	ID          string       `json:"id"`
	ReferralID  string       `json:"referralId"`
	Type        RewardType   `json:"type"`
	Amount      *string      `json:"amount"`
	Description string       `json:"description"`
	Status      RewardStatus `json:"status"`
	PaidAt      *time.Time   `json:"paidAt,omitempty"`
}
