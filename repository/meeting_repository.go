package repository

import (
	"context"

	"github.com/cmomatt/referralpro/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MeetingRepository handles database operations for meetings
type MeetingRepository struct {
	db *pgxpool.Pool
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts a meeting, returning the existing row on an id conflict
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	query := `
		INSERT INTO meetings (
			id, user_id, contact_id, title, description, datetime, duration,
			location, meeting_url, status, summary, transcript,
			transcript_file_id, action_items
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		meeting.ID,
		meeting.UserID,
		meeting.ContactID,
		meeting.Title,
		meeting.Description,
		meeting.Datetime,
		meeting.Duration,
		meeting.Location,
		meeting.MeetingURL,
		meeting.Status,
		meeting.Summary,
		meeting.Transcript,
		meeting.TranscriptFileID,
		meeting.ActionItems,
	).Scan(&meeting.CreatedAt, &meeting.UpdatedAt)

	if err == pgx.ErrNoRows {
		existing, getErr := r.GetByID(ctx, meeting.ID)
		if getErr != nil {
			return getErr
		}
		*meeting = *existing
		return nil
	}

	return err
}

// GetByID retrieves a meeting by ID
func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	meeting := &models.Meeting{}
	query := `
		SELECT id, user_id, contact_id, title, description, datetime, duration,
			location, meeting_url, status, summary, transcript,
			transcript_file_id, action_items, created_at, updated_at
		FROM meetings
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&meeting.ID,
		&meeting.UserID,
		&meeting.ContactID,
		&meeting.Title,
		&meeting.Description,
		&meeting.Datetime,
		&meeting.Duration,
		&meeting.Location,
		&meeting.MeetingURL,
		&meeting.Status,
		&meeting.Summary,
		&meeting.Transcript,
		&meeting.TranscriptFileID,
		&meeting.ActionItems,
		&meeting.CreatedAt,
		&meeting.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return meeting, nil
}

// List retrieves all meetings
func (r *MeetingRepository) List(ctx context.Context) ([]*models.Meeting, error) {
	query := `
		SELECT id, user_id, contact_id, title, description, datetime, duration,
			location, meeting_url, status, summary, transcript,
			transcript_file_id, action_items, created_at, updated_at
		FROM meetings`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []*models.Meeting
	for rows.Next() {
		meeting := &models.Meeting{}
		err := rows.Scan(
			&meeting.ID,
			&meeting.UserID,
			&meeting.ContactID,
			&meeting.Title,
			&meeting.Description,
			&meeting.Datetime,
			&meeting.Duration,
			&meeting.Location,
			&meeting.MeetingURL,
			&meeting.Status,
			&meeting.Summary,
			&meeting.Transcript,
			&meeting.TranscriptFileID,
			&meeting.ActionItems,
			&meeting.CreatedAt,
			&meeting.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}

	return meetings, rows.Err()
}

// UpdateTranscript records an uploaded transcript file and optionally the
// inline transcript text
func (r *MeetingRepository) UpdateTranscript(ctx context.Context, id string, fileID string, transcript *string) error {
	query := `
		UPDATE meetings SET
			transcript_file_id = $2,
			transcript = COALESCE($3, transcript),
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, fileID, transcript)
	return err
}

// UpdateSummary writes the generated summary and action items
func (r *MeetingRepository) UpdateSummary(ctx context.Context, id string, summary string, actionItems models.ActionItems) error {
	query := `
		UPDATE meetings SET
			summary = $2,
			action_items = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, summary, actionItems)
	return err
}
