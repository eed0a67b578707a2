package repo

import (
	"context"
	"database/sql"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
)

type MySQLLoyaltyRepo struct{ db *sql.DB }

func NewMySQLLoyaltyRepo(db *sql.DB) *MySQLLoyaltyRepo { return &MySQLLoyaltyRepo{db: db} }

// AwardPoints adds earned points to both the spendable and lifetime
// balances.
func (r *MySQLLoyaltyRepo) AwardPoints(ctx context.Context, customerID int64, points int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET current_points = current_points + ?, total_points = total_points + ?
WHERE id = ?`, points, points, customerID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

var _ usecase.LoyaltyRepo = (*MySQLLoyaltyRepo)(nil)
