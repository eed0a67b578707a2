package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/repo"
	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	catalog  *usecase.CatalogProvider
	menuRepo usecase.CatalogRepo
}

func NewMenuHandler(catalog *usecase.CatalogProvider, menuRepo usecase.CatalogRepo) *MenuHandler {
	return &MenuHandler{catalog: catalog, menuRepo: menuRepo}
}

type menuItemResp struct {
	Name      string   `json:"menu_item_name"`
	Price     float64  `json:"price"`
	Category  string   `json:"category"`
	Calories  int      `json:"calories"`
	Allergens []string `json:"allergens,omitempty"`
	Seasonal  bool     `json:"seasonal"`
}

// ListMenuItems handles GET /v1/menuitems with optional ?category= and
// ?seasonal=true filters, served from the snapshot cache when warm.
func (h *MenuHandler) ListMenuItems(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	catalog, err := h.catalog.Snapshot(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	categoryFilter := c.Query("category")
	seasonalOnly := c.Query("seasonal") == "true"

	out := make([]menuItemResp, 0, catalog.Len())
	for _, e := range catalog.Entries() {
		if categoryFilter != "" && string(e.Category) != categoryFilter {
			continue
		}
		if seasonalOnly && !e.Seasonal {
			continue
		}
		out = append(out, menuItemResp{
			Name:      e.Name,
			Price:     e.Price,
			Category:  string(e.Category),
			Calories:  e.Calories,
			Allergens: e.Allergens,
			Seasonal:  e.Seasonal,
		})
	}
	c.JSON(http.StatusOK, out)
}

type upsertMenuItemReq struct {
	Name      string   `json:"menu_item_name" binding:"required"`
	Price     float64  `json:"price" binding:"min=0"`
	Category  string   `json:"category" binding:"required"`
	Calories  int      `json:"calories"`
	Allergens []string `json:"allergens"`
	Seasonal  bool     `json:"seasonal"`
}

// UpsertMenuItem handles POST /v1/menuitems (manager only). The cached
// snapshot is dropped so the next quote sees the new price.
func (h *MenuHandler) UpsertMenuItem(c *gin.Context) {
	var req upsertMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	entry := domain.CatalogEntry{
		Name:      req.Name,
		Price:     req.Price,
		Category:  category,
		Calories:  req.Calories,
		Allergens: req.Allergens,
		Seasonal:  req.Seasonal,
	}
	if err := h.menuRepo.Upsert(ctx, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	h.catalog.Invalidate(ctx)

	c.JSON(http.StatusOK, gin.H{"menu_item_name": req.Name})
}

// DeleteMenuItem handles DELETE /v1/menuitems/:name (soft delete).
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	name := c.Param("name")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.menuRepo.Deactivate(ctx, name); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	h.catalog.Invalidate(ctx)

	c.JSON(http.StatusOK, gin.H{"deleted": name})
}
