package kafka

import (
	"context"
	"errors"

	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/adapter/repo"
	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/usecase"
)

// MenuChangedHandler applies back-office menu edits: upsert or
// deactivate the row, then drop the cached snapshot so the next quote
// reprices against the new menu.
type MenuChangedHandler struct {
	Repo    usecase.CatalogRepo
	Catalog *usecase.CatalogProvider
}

func NewMenuChangedHandler(repo usecase.CatalogRepo, catalog *usecase.CatalogProvider) *MenuChangedHandler {
	return &MenuChangedHandler{Repo: repo, Catalog: catalog}
}

func (h *MenuChangedHandler) Handle(ctx context.Context, ev usecase.MenuItemChangedMsg) error {
	if !ev.Active {
		if err := h.Repo.Deactivate(ctx, ev.Name); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		h.Catalog.Invalidate(ctx)
		return nil
	}

	category, err := domain.ParseCategory(ev.Category)
	if err != nil {
		// poison message; surfacing the error would requeue forever
		return nil
	}

	entry := domain.CatalogEntry{
		Name:     ev.Name,
		Price:    ev.Price,
		Category: category,
		Calories: ev.Calories,
		Seasonal: ev.Seasonal,
	}
	if err := h.Repo.Upsert(ctx, entry); err != nil {
		return err
	}
	h.Catalog.Invalidate(ctx)
	return nil
}
