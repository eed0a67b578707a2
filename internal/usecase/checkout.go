package usecase

import (
	"context"
	"encoding/json"
	"errors"

	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/logging"
	"github.com/google/uuid"
)

var ErrDuplicate = errors.New("duplicate idempotency key")

type CheckoutInput struct {
	Items          map[string]int
	Customer       string
	CustomerID     int64
	Employee       string
	Reward         string
	IdempotencyKey string
}

type CheckoutOutput struct {
	TransactionID string
	Subtotal      float64
	TotalPrice    float64
	PointsEarned  int
	RewardApplied bool
	MissingItems  []string
}

// Checkout turns an order into a persisted transaction: price the items
// server-side, apply at most one reward, store the transaction with its
// line details, and hand the completion event to the loyalty pipeline.
type Checkout struct {
	catalog *CatalogProvider
	txns    TransactionRepo
	idem    IdempotencyStore
	out     OutboxRepo
	queue   TransactionQueue
}

func NewCheckout(catalog *CatalogProvider, txns TransactionRepo, idem IdempotencyStore, out OutboxRepo, queue TransactionQueue) *Checkout {
	return &Checkout{catalog: catalog, txns: txns, idem: idem, out: out, queue: queue}
}

func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (CheckoutOutput, error) {
	order := domain.NewOrderFromItems(in.Items)
	if order.IsEmpty() {
		return CheckoutOutput{}, ErrEmptyOrder
	}

	scope := in.Customer
	if in.IdempotencyKey != "" {
		// Fast path: a retry of a request we already completed.
		if id, ok, _ := uc.idem.Recall(ctx, scope, in.IdempotencyKey); ok {
			if rec, err := uc.txns.GetByID(ctx, id); err == nil && rec != nil {
				return outputFromRecord(rec), nil
			}
			return CheckoutOutput{TransactionID: id}, nil
		}
		ok, err := uc.idem.TryLock(ctx, scope, in.IdempotencyKey)
		if err != nil {
			return CheckoutOutput{}, err
		}
		if !ok {
			return CheckoutOutput{}, ErrDuplicate
		}
	}

	catalog, err := uc.catalog.Snapshot(ctx)
	if err != nil {
		return CheckoutOutput{}, err
	}

	subtotal, missing := domain.Subtotal(order, catalog)
	if len(missing) > 0 {
		logging.FromCtx(ctx).Warn("checkout items missing from catalog, priced as zero",
			"items", missing, "customer", in.Customer)
	}
	res := domain.ApplyReward(domain.RewardID(in.Reward), subtotal, order, catalog.EntreeNames())

	rec := &TransactionRecord{
		ID:           uuid.NewString(),
		Customer:     in.Customer,
		CustomerID:   in.CustomerID,
		Employee:     in.Employee,
		Reward:       in.Reward,
		Subtotal:     res.Subtotal,
		TotalPrice:   res.FinalPrice,
		PointsEarned: res.PointsEarned,
		Items:        order.Items(),
	}
	if err := uc.txns.Create(ctx, rec); err != nil {
		return CheckoutOutput{}, err
	}

	msg := TransactionCompletedMsg{
		TransactionID: rec.ID,
		Customer:      rec.Customer,
		CustomerID:    rec.CustomerID,
		TotalPrice:    rec.TotalPrice,
		PointsEarned:  rec.PointsEarned,
		Reward:        rec.Reward,
	}
	// Outbox row first, then best-effort direct publish; the consumer is
	// idempotent on transaction id.
	if payload, err := json.Marshal(msg); err == nil {
		_ = uc.out.InsertTransactionCompleted(ctx, payload)
	}
	if err := uc.queue.PublishCompleted(ctx, msg); err != nil {
		logging.FromCtx(ctx).Warn("publish transaction.completed failed, outbox will retry",
			"transaction_id", rec.ID, "err", err)
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, scope, in.IdempotencyKey, rec.ID)
	}

	out := outputFromRecord(rec)
	out.MissingItems = missing
	return out, nil
}

func outputFromRecord(rec *TransactionRecord) CheckoutOutput {
	return CheckoutOutput{
		TransactionID: rec.ID,
		Subtotal:      rec.Subtotal,
		TotalPrice:    rec.TotalPrice,
		PointsEarned:  rec.PointsEarned,
		RewardApplied: rec.PointsEarned > 0,
	}
}
