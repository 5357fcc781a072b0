package repository

import (
	"context"

	"github.com/cmomatt/referralpro/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository handles database operations for contacts
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a contact, returning the existing row on an id conflict
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (
			id, user_id, first_name, last_name, email, phone, company, title,
			website, linkedin_url, industry, specialty, expertise,
			ideal_customer, reputation_score, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		contact.ID,
		contact.UserID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.Company,
		contact.Title,
		contact.Website,
		contact.LinkedinURL,
		contact.Industry,
		contact.Specialty,
		contact.Expertise,
		contact.IdealCustomer,
		contact.ReputationScore,
		contact.Notes,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err == pgx.ErrNoRows {
		existing, getErr := r.GetByID(ctx, contact.ID)
		if getErr != nil {
			return getErr
		}
		*contact = *existing
		return nil
	}

	return err
}

// GetByID retrieves a contact by ID
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	contact := &models.Contact{}
	query := `
		SELECT id, user_id, first_name, last_name, email, phone, company, title,
			website, linkedin_url, industry, specialty, expertise,
			ideal_customer, reputation_score, notes, created_at, updated_at
		FROM contacts
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.UserID,
		&contact.FirstName,
		&contact.LastName,
		&contact.Email,
		&contact.Phone,
		&contact.Company,
		&contact.Title,
		&contact.Website,
		&contact.LinkedinURL,
		&contact.Industry,
		&contact.Specialty,
		&contact.Expertise,
		&contact.IdealCustomer,
		&contact.ReputationScore,
		&contact.Notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return contact, nil
}

// List retrieves all contacts
func (r *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	query := `
		SELECT id, user_id, first_name, last_name, email, phone, company, title,
			website, linkedin_url, industry, specialty, expertise,
			ideal_customer, reputation_score, notes, created_at, updated_at
		FROM contacts`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact := &models.Contact{}
		err := rows.Scan(
			&contact.ID,
			&contact.UserID,
			&contact.FirstName,
			&contact.LastName,
			&contact.Email,
			&contact.Phone,
			&contact.Company,
			&contact.Title,
			&contact.Website,
			&contact.LinkedinURL,
			&contact.Industry,
			&contact.Specialty,
			&contact.Expertise,
			&contact.IdealCustomer,
			&contact.ReputationScore,
			&contact.Notes,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}
