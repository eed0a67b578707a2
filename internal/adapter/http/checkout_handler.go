package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/http/middleware"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/repo"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkout *usecase.Checkout
	query    usecase.TransactionRepo
}

func NewCheckoutHandler(checkout *usecase.Checkout, query usecase.TransactionRepo) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, query: query}
}

type checkoutReq struct {
	Items      map[string]int `json:"items" binding:"required"`
	Customer   string         `json:"customer" binding:"required"`
	CustomerID int64          `json:"customer_id"`
	Employee   string         `json:"employee"`
	Reward     string         `json:"reward"`
}

type checkoutResp struct {
	TransactionID string   `json:"transaction_id"`
	Subtotal      float64  `json:"subtotal"`
	TotalPrice    float64  `json:"total_price"`
	PointsEarned  int      `json:"points_earned"`
	RewardApplied bool     `json:"reward_applied"`
	MissingItems  []string `json:"missing_items,omitempty"`
}

// CreateTransaction handles POST /v1/transactions.
func (h *CheckoutHandler) CreateTransaction(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	out, err := h.checkout.Execute(ctx, usecase.CheckoutInput{
		Items:          req.Items,
		Customer:       req.Customer,
		CustomerID:     req.CustomerID,
		Employee:       req.Employee,
		Reward:         req.Reward,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, usecase.ErrDuplicate):
			status = http.StatusConflict
		case errors.Is(err, usecase.ErrEmptyOrder):
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	middleware.CountCheckout(out.RewardApplied)
	c.JSON(http.StatusCreated, checkoutResp{
		TransactionID: out.TransactionID,
		Subtotal:      out.Subtotal,
		TotalPrice:    out.TotalPrice,
		PointsEarned:  out.PointsEarned,
		RewardApplied: out.RewardApplied,
		MissingItems:  out.MissingItems,
	})
}

// GetTransactionByID handles GET /v1/transactions/:id.
func (h *CheckoutHandler) GetTransactionByID(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	rec, err := h.query.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction_id": rec.ID,
		"customer":       rec.Customer,
		"customer_id":    rec.CustomerID,
		"employee":       rec.Employee,
		"reward":         rec.Reward,
		"subtotal":       rec.Subtotal,
		"total_price":    rec.TotalPrice,
		"points_earned":  rec.PointsEarned,
		"items":          rec.Items,
	})
}
