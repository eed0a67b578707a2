package usecase

import (
	"context"
	"errors"

	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/logging"
)

var ErrEmptyOrder = errors.New("order has no items")

type QuoteInput struct {
	Items  map[string]int
	Reward string
}

type QuoteOutput struct {
	Subtotal      float64
	FinalPrice    float64
	PointsEarned  int
	RewardApplied bool
	// MissingItems are order entries absent from the catalog; they priced
	// as zero and the caller should surface them.
	MissingItems []string
}

// Quote prices an order without persisting anything. Kiosk and cashier
// screens call it on every order or reward change.
type Quote struct {
	catalog *CatalogProvider
}

func NewQuote(catalog *CatalogProvider) *Quote {
	return &Quote{catalog: catalog}
}

func (uc *Quote) Execute(ctx context.Context, in QuoteInput) (QuoteOutput, error) {
	order := domain.NewOrderFromItems(in.Items)
	if order.IsEmpty() {
		return QuoteOutput{}, ErrEmptyOrder
	}

	catalog, err := uc.catalog.Snapshot(ctx)
	if err != nil {
		return QuoteOutput{}, err
	}

	subtotal, missing := domain.Subtotal(order, catalog)
	if len(missing) > 0 {
		logging.FromCtx(ctx).Warn("order items missing from catalog, priced as zero",
			"items", missing)
	}

	res := domain.ApplyReward(domain.RewardID(in.Reward), subtotal, order, catalog.EntreeNames())
	return QuoteOutput{
		Subtotal:      res.Subtotal,
		FinalPrice:    res.FinalPrice,
		PointsEarned:  res.PointsEarned,
		RewardApplied: res.Applied,
		MissingItems:  missing,
	}, nil
}
