package repository

import (
	"context"

	"github.com/cmomatt/referralpro/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles database operations for login sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, "sessionToken", "userId", expires)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(
		ctx, query,
		session.ID,
		session.SessionToken,
		session.UserID,
		session.Expires,
	)

	return err
}

// GetByToken retrieves an unexpired session by its token
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT id, "sessionToken", "userId", expires
		FROM sessions
		WHERE "sessionToken" = $1 AND expires > NOW()`

	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.SessionToken,
		&session.UserID,
		&session.Expires,
	)

	if err != nil {
		return nil, err
	}

	return session, nil
}

// Delete removes a session by token
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE "sessionToken" = $1`
	_, err := r.db.Exec(ctx, query, token)
	return err
}
