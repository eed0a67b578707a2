package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
)

type MySQLCatalogRepo struct{ db *sql.DB }

func NewMySQLCatalogRepo(db *sql.DB) *MySQLCatalogRepo { return &MySQLCatalogRepo{db: db} }

func (r *MySQLCatalogRepo) ListActive(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT menu_item_name,price,category,calories,allergens,seasonal
FROM menu_items WHERE active=1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		var category string
		var allergens sql.NullString
		if err := rows.Scan(&e.Name, &e.Price, &category, &e.Calories, &allergens, &e.Seasonal); err != nil {
			return nil, err
		}
		e.Category = domain.Category(category)
		if allergens.Valid && allergens.String != "" {
			// allergens stored as a JSON array of names
			_ = json.Unmarshal([]byte(allergens.String), &e.Allergens)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *MySQLCatalogRepo) Upsert(ctx context.Context, e domain.CatalogEntry) error {
	allergens, err := json.Marshal(e.Allergens)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO menu_items (menu_item_name,price,category,calories,allergens,seasonal,active,created_at,updated_at)
VALUES (?,?,?,?,?,?,1,NOW(),NOW())
ON DUPLICATE KEY UPDATE
price=VALUES(price), category=VALUES(category), calories=VALUES(calories),
allergens=VALUES(allergens), seasonal=VALUES(seasonal), active=1, updated_at=NOW()
`, e.Name, e.Price, string(e.Category), e.Calories, string(allergens), e.Seasonal)
	return err
}

// Deactivate soft-deletes an item; history keeps referencing it.
func (r *MySQLCatalogRepo) Deactivate(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE menu_items SET active=0, updated_at=NOW() WHERE menu_item_name=?`, name)
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

var _ usecase.CatalogRepo = (*MySQLCatalogRepo)(nil)
