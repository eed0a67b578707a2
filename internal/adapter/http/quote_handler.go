package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quote *usecase.Quote
}

func NewQuoteHandler(quote *usecase.Quote) *QuoteHandler {
	return &QuoteHandler{quote: quote}
}

type quoteReq struct {
	Items  map[string]int `json:"items" binding:"required"`
	Reward string         `json:"reward"`
}

type quoteResp struct {
	Subtotal      float64  `json:"subtotal"`
	FinalPrice    float64  `json:"final_price"`
	PointsEarned  int      `json:"points_earned"`
	RewardApplied bool     `json:"reward_applied"`
	MissingItems  []string `json:"missing_items,omitempty"`
}

// PriceOrder handles POST /v1/quote: a running-total preview for kiosk
// and cashier screens, recomputed on every order or reward change.
func (h *QuoteHandler) PriceOrder(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	out, err := h.quote.Execute(ctx, usecase.QuoteInput{Items: req.Items, Reward: req.Reward})
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, quoteResp{
		Subtotal:      out.Subtotal,
		FinalPrice:    out.FinalPrice,
		PointsEarned:  out.PointsEarned,
		RewardApplied: out.RewardApplied,
		MissingItems:  out.MissingItems,
	})
}
