package queue

import (
	"context"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/logging"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
)

// PointsAwardHandler credits earned loyalty points after a checkout.
// Intended for use with queue.JSONHandler[usecase.TransactionCompletedMsg].
type PointsAwardHandler struct {
	loyalty usecase.LoyaltyRepo
}

func NewPointsAwardHandler(loyalty usecase.LoyaltyRepo) *PointsAwardHandler {
	return &PointsAwardHandler{loyalty: loyalty}
}

func (h *PointsAwardHandler) HandleCompleted(ctx context.Context, msg usecase.TransactionCompletedMsg) error {
	if msg.CustomerID == 0 || msg.PointsEarned == 0 {
		// guest checkout or no reward: nothing to credit
		return nil
	}
	if err := h.loyalty.AwardPoints(ctx, msg.CustomerID, msg.PointsEarned); err != nil {
		return err
	}
	logging.FromCtx(ctx).Info("loyalty points awarded",
		"transaction_id", msg.TransactionID,
		"customer_id", msg.CustomerID,
		"points", msg.PointsEarned)
	return nil
}
