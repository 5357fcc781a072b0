package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DomainTables lists the six business tables, in dependency order.
// The diagnostics routes probe and clear exactly these.
var DomainTables = []string{
	"users",
	"contacts",
	"referrals",
	"meetings",
	"tasks",
	"referral_rewards",
}

// DiagnosticsRepository runs the table-level probes and bulk deletes used
// by the test-db routes
type DiagnosticsRepository struct {
	db *pgxpool.Pool
}

// NewDiagnosticsRepository creates a new diagnostics repository
func NewDiagnosticsRepository(db *pgxpool.Pool) *DiagnosticsRepository {
	return &DiagnosticsRepository{db: db}
}

func validTable(table string) bool {
	for _, t := range DomainTables {
		if t == table {
			return true
		}
	}
	return false
}

// ProbeTable attempts a one-row id projection against the table and returns
// the number of rows seen (0 or 1). Table names are restricted to the fixed
// domain list since identifiers cannot be bound as query parameters.
func (r *DiagnosticsRepository) ProbeTable(ctx context.Context, table string) (int, error) {
	if !validTable(table) {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT id FROM %s LIMIT 1", table))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}

	return count, rows.Err()
}

// DeleteByIDPrefix deletes every row of the table whose id starts with the
// given prefix and returns the number of rows removed
func (r *DiagnosticsRepository) DeleteByIDPrefix(ctx context.Context, table, prefix string) (int64, error) {
	if !validTable(table) {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id LIKE $1 || '%%'", table), prefix)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
