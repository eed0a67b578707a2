package usecase

import (
	"context"

	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
)

// TransactionRecord is the persistence shape for a completed checkout
// (kept out of domain).
type TransactionRecord struct {
	ID           string
	Customer     string
	CustomerID   int64 // 0 means guest
	Employee     string
	Reward       string
	Subtotal     float64
	TotalPrice   float64
	PointsEarned int
	Items        map[string]int
}

type TransactionRepo interface {
	Create(ctx context.Context, rec *TransactionRecord) error
	GetByID(ctx context.Context, id string) (*TransactionRecord, error)
}

type CatalogRepo interface {
	ListActive(ctx context.Context) ([]domain.CatalogEntry, error)
	Upsert(ctx context.Context, entry domain.CatalogEntry) error
	Deactivate(ctx context.Context, name string) error
}

type LoyaltyRepo interface {
	AwardPoints(ctx context.Context, customerID int64, points int) error
}

type OutboxRepo interface {
	InsertTransactionCompleted(ctx context.Context, payload []byte) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// CatalogCache holds a snapshot of the active menu so hot-path pricing
// does not hit the database per request.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.CatalogEntry, bool, error)
	Set(ctx context.Context, entries []domain.CatalogEntry) error
	Invalidate(ctx context.Context) error
}

type TransactionQueue interface {
	PublishCompleted(ctx context.Context, msg TransactionCompletedMsg) error
}
