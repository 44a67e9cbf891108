package catalogrepo

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/popslsls21/CServices/internal/domain/diagnosis"
)

// PostgresRepository implements diagnosis.CatalogRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Entries loads the full catalogue in insertion order.
func (r *PostgresRepository) Entries(ctx context.Context) ([]diagnosis.CatalogEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT brand, model, problem, solution, keywords, severity, estimated_cost, diy_possible, time_estimate
		FROM car_issues
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]diagnosis.CatalogEntry, 0)
	for rows.Next() {
		var (
			entry    diagnosis.CatalogEntry
			severity sql.NullString
			cost     sql.NullString
			estimate sql.NullString
		)
		if err := rows.Scan(
			&entry.Brand,
			&entry.Model,
			&entry.Problem,
			&entry.Solution,
			&entry.Keywords,
			&severity,
			&cost,
			&entry.DIYPossible,
			&estimate,
		); err != nil {
			return nil, err
		}
		if severity.Valid {
			entry.Severity = diagnosis.Severity(severity.String)
		}
		if cost.Valid {
			entry.EstimatedCost = cost.String
		}
		if estimate.Valid {
			entry.TimeEstimate = estimate.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ diagnosis.CatalogRepository = (*PostgresRepository)(nil)
