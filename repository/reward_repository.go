package repository

import (
	"context"

	"github.com/cmomatt/referralpro/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RewardRepository handles database operations for referral rewards
type RewardRepository struct {
	db *pgxpool.Pool
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

// Create inserts a referral reward
func (r *RewardRepository) Create(ctx context.Context, reward *models.ReferralReward) error {
	query := `
		INSERT INTO referral_rewards (
			id, referral_id, type, amount, description, status, paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.Exec(
		ctx, query,
		reward.ID,
		reward.ReferralID,
		reward.Type,
		reward.Amount,
		reward.Description,
		reward.Status,
		reward.PaidAt,
	)

	return err
}

// GetByID retrieves a reward by ID
func (r *RewardRepository) GetByID(ctx context.Context, id string) (*models.ReferralReward, error) {
	reward := &models.ReferralReward{}
	query := `
		SELECT id, referral_id, type, amount, description, status, paid_at
		FROM referral_rewards
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&reward.ID,
		&reward.ReferralID,
		&reward.Type,
		&reward.Amount,
		&reward.Description,
		&reward.Status,
		&reward.PaidAt,
	)

	if err != nil {
		return nil, err
	}

	return reward, nil
}

// List retrieves all rewards
func (r *RewardRepository) List(ctx context.Context) ([]*models.ReferralReward, error) {
	query := `
		SELECT id, referral_id, type, amount, description, status, paid_at
		FROM referral_rewards`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []*models.ReferralReward
	for rows.Next() {
		reward := &models.ReferralReward{}
		err := rows.Scan(
			&reward.ID,
			&reward.ReferralID,
			&reward.Type,
			&reward.Amount,
			&reward.Description,
			&reward.Status,
			&reward.PaidAt,
		)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, reward)
	}

	return rewards, rows.Err()
}
