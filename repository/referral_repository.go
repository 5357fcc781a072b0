package repository

import (
	"context"

	"github.com/cmomatt/referralpro/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferralRepository handles database operations for referrals
type ReferralRepository struct {
	db *pgxpool.Pool
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create inserts a referral, returning the existing row on an id conflict
func (r *ReferralRepository) Create(ctx context.Context, referral *models.Referral) error {
	query := `
		INSERT INTO referrals (
			id, referrer_id, referee_email, referee_name, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		referral.ID,
		referral.ReferrerID,
		referral.RefereeEmail,
		referral.RefereeName,
		referral.Status,
		referral.Notes,
	).Scan(&referral.CreatedAt, &referral.UpdatedAt)

	if err == pgx.ErrNoRows {
		existing, getErr := r.GetByID(ctx, referral.ID)
		if getErr != nil {
			return getErr
		}
		*referral = *existing
		return nil
	}

	return err
}

// GetByID retrieves a referral by ID
func (r *ReferralRepository) GetByID(ctx context.Context, id string) (*models.Referral, error) {
	referral := &models.Referral{}
	query := `
		SELECT id, referrer_id, referee_email, referee_name, status, notes,
			created_at, updated_at, completed_at
		FROM referrals
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&referral.ID,
		&referral.ReferrerID,
		&referral.RefereeEmail,
		&referral.RefereeName,
		&referral.Status,
		&referral.Notes,
		&referral.CreatedAt,
		&referral.UpdatedAt,
		&referral.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return referral, nil
}

// List retrieves all referrals
func (r *ReferralRepository) List(ctx context.Context) ([]*models.Referral, error) {
	query := `
		SELECT id, referrer_id, referee_email, referee_name, status, notes,
			created_at, updated_at, completed_at
		FROM referrals`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var referrals []*models.Referral
	for rows.Next() {
		referral := &models.Referral{}
		err := rows.Scan(
			&referral.ID,
			&referral.ReferrerID,
			&referral.RefereeEmail,
			&referral.RefereeName,
			&referral.Status,
			&referral.Notes,
			&referral.CreatedAt,
			&referral.UpdatedAt,
			&referral.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, referral)
	}

	return referrals, rows.Err()
}

// ListByIDPrefix retrieves referrals whose id starts with the given prefix.
// The seeding utility uses this to link rewards to seeded referrals.
func (r *ReferralRepository) ListByIDPrefix(ctx context.Context, prefix string) ([]*models.Referral, error) {
	query := `
		SELECT id, referrer_id, referee_email, referee_name, status, notes,
			created_at, updated_at, completed_at
		FROM referrals
		WHERE id LIKE $1 || '%'`

	rows, err := r.db.Query(ctx, query, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var referrals []*models.Referral
	for rows.Next() {
		referral := &models.Referral{}
		err := rows.Scan(
			&referral.ID,
			&referral.ReferrerID,
			&referral.RefereeEmail,
			&referral.RefereeName,
			&referral.Status,
			&referral.Notes,
			&referral.CreatedAt,
			&referral.UpdatedAt,
			&referral.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, referral)
	}

	return referrals, rows.Err()
}
