package repo

import (
	"context"
	"database/sql"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
)

type MySQLOutboxRepo struct{ db *sql.DB }

func NewMySQLOutboxRepo(db *sql.DB) *MySQLOutboxRepo { return &MySQLOutboxRepo{db: db} }

func (r *MySQLOutboxRepo) InsertTransactionCompleted(ctx context.Context, payload []byte) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO outbox (channel,payload,status,retry_count,next_attempt_at,created_at)
VALUES ('pos.transaction.completed.v1', ?, 'PENDING', 0, NOW(), NOW())
`, payload)
	return err
}

var _ usecase.OutboxRepo = (*MySQLOutboxRepo)(nil)
