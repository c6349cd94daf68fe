package branches

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tellerdesk/tellerdesk/internal/platform/db"
	"github.com/tellerdesk/tellerdesk/internal/shared"
)

// Repository provides PostgreSQL backed persistence for branches.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateBranch inserts a new branch.
func (r *Repository) CreateBranch(ctx context.Context, b *Branch) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO branches (branch_id, branch_name, location) VALUES ($1, $2, $3)`,
		b.BranchID, b.BranchName, b.Location)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

// ListBranches returns all branches.
func (r *Repository) ListBranches(ctx context.Context) ([]Branch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT branch_id, branch_name, location FROM branches ORDER BY branch_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var branches []Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.BranchID, &b.BranchName, &b.Location); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// Exists reports whether a branch is registered.
func (r *Repository) Exists(ctx context.Context, branchID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM branches WHERE branch_id = $1)`, branchID).Scan(&exists)
	return exists, err
}
