package repository

import (
	"context"
	"time"

	"github.com/cmomatt/referralpro/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SummaryJobRepository handles database operations for summary jobs
type SummaryJobRepository struct {
	db *pgxpool.Pool
}

// NewSummaryJobRepository creates a new summary job repository
func NewSummaryJobRepository(db *pgxpool.Pool) *SummaryJobRepository {
	return &SummaryJobRepository{db: db}
}

// Create creates a new summary job
func (r *SummaryJobRepository) Create(ctx context.Context, job *models.SummaryJob) error {
	query := `
		INSERT INTO summary_jobs (id, meeting_id, status, error_message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		job.ID,
		job.MeetingID,
		job.Status,
		job.ErrorMessage,
	).Scan(&job.CreatedAt, &job.UpdatedAt)

	return err
}

// GetByID retrieves a summary job by ID
func (r *SummaryJobRepository) GetByID(ctx context.Context, id string) (*models.SummaryJob, error) {
	job := &models.SummaryJob{}
	query := `
		SELECT id, meeting_id, status, error_message,
			created_at, updated_at, completed_at
		FROM summary_jobs
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.MeetingID,
		&job.Status,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return job, nil
}

// UpdateStatus updates the status of a summary job
func (r *SummaryJobRepository) UpdateStatus(ctx context.Context, id string, status models.SummaryJobStatus) error {
	query := `
		UPDATE summary_jobs SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// Complete marks a summary job as completed
func (r *SummaryJobRepository) Complete(ctx context.Context, id string) error {
	now := time.Now()
	query := `
		UPDATE summary_jobs SET
			status = $2,
			completed_at = $3,
			updated_at = $3
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.JobStatusCompleted, now)
	return err
}

// Fail marks a summary job as failed
func (r *SummaryJobRepository) Fail(ctx context.Context, id string, errorMessage string) error {
	query := `
		UPDATE summary_jobs SET
			status = $2,
			error_message = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.JobStatusFailed, errorMessage)
	return err
}
