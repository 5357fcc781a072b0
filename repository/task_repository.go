package repository

import (
	"context"

	"github.com/cmomatt/referralpro/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task, returning the existing row on an id conflict
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			id, user_id, contact_id, referral_id, meeting_id, title,
			description, due_date, status, priority
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		task.ID,
		task.UserID,
		task.ContactID,
		task.ReferralID,
		task.MeetingID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.Priority,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err == pgx.ErrNoRows {
		existing, getErr := r.GetByID(ctx, task.ID)
		if getErr != nil {
			return getErr
		}
		*task = *existing
		return nil
	}

	return err
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{}
	query := `
		SELECT id, user_id, contact_id, referral_id, meeting_id, title,
			description, due_date, status, priority,
			created_at, updated_at, completed_at
		FROM tasks
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.UserID,
		&task.ContactID,
		&task.ReferralID,
		&task.MeetingID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Status,
		&task.Priority,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return task, nil
}

// List retrieves all tasks
func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	query := `
		SELECT id, user_id, contact_id, referral_id, meeting_id, title,
			description, due_date, status, priority,
			created_at, updated_at, completed_at
		FROM tasks`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.ContactID,
			&task.ReferralID,
			&task.MeetingID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&task.Status,
			&task.Priority,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}
