package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ActionItems represents the action items extracted from a meeting
type ActionItems []string

// Value implements driver.Valuer for JSONB
func (a ActionItems) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *ActionItems) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*a = nil
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Meeting represents a meeting between a user and one of their contacts
type Meeting struct {
	ID               string      `json:"id"`
	UserID           string      `json:"userId"`
	ContactID        string      `json:"contactId"`
	Title            string      `json:"title"`
	Description      *string     `json:"description"`
	Datetime         *time.Time  `json:"datetime"`
	Duration         *int        `json:"duration"`
	Location         *string     `json:"location"`
	MeetingURL       *string     `json:"meetingUrl"`
	Status           *string     `json:"status"`
	Summary          *string     `json:"summary"`
	Transcript       *string     `json:"transcript"`
	TranscriptFileID *string     `json:"transcriptFileId,omitempty"`
	ActionItems      ActionItems `json:"actionItems"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
