package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
)

var ErrNotFound = errors.New("not found")

type MySQLTransactionRepo struct{ db *sql.DB }

func NewMySQLTransactionRepo(db *sql.DB) *MySQLTransactionRepo {
	return &MySQLTransactionRepo{db: db}
}

// Create inserts the transaction row and its line details in one
// database transaction.
func (r *MySQLTransactionRepo) Create(ctx context.Context, rec *usecase.TransactionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var customerID sql.NullInt64
	if rec.CustomerID != 0 {
		customerID = sql.NullInt64{Int64: rec.CustomerID, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO transactions (id,customer,customer_id,employee,reward,subtotal,total_price,points_earned,order_timestamp)
VALUES (?,?,?,?,?,?,?,?,NOW())
`, rec.ID, rec.Customer, customerID, rec.Employee, rec.Reward, rec.Subtotal, rec.TotalPrice, rec.PointsEarned); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	for name, qty := range rec.Items {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO transaction_details (transaction_id,menu_item_name,item_quantity_sold)
VALUES (?,?,?)
`, rec.ID, name, qty); err != nil {
			return fmt.Errorf("insert detail %q: %w", name, err)
		}
	}

	return tx.Commit()
}

func (r *MySQLTransactionRepo) GetByID(ctx context.Context, id string) (*usecase.TransactionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,customer,customer_id,employee,reward,subtotal,total_price,points_earned
FROM transactions WHERE id=?`, id)

	var rec usecase.TransactionRecord
	var customerID sql.NullInt64
	if err := row.Scan(&rec.ID, &rec.Customer, &customerID, &rec.Employee, &rec.Reward,
		&rec.Subtotal, &rec.TotalPrice, &rec.PointsEarned); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.CustomerID = customerID.Int64

	rows, err := r.db.QueryContext(ctx, `
SELECT menu_item_name,item_quantity_sold FROM transaction_details WHERE transaction_id=?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec.Items = make(map[string]int)
	for rows.Next() {
		var name string
		var qty int
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, err
		}
		rec.Items[name] = qty
	}
	return &rec, rows.Err()
}

var _ usecase.TransactionRepo = (*MySQLTransactionRepo)(nil)
