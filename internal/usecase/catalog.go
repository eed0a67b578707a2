package usecase

import (
	"context"

	domain "github.com/CSCE331-Fall2024/project-3-team-xp/internal/entity"
	"github.com/CSCE331-Fall2024/project-3-team-xp/internal/logging"
)

// CatalogProvider serves menu snapshots to the pricing path, preferring
// the cache and falling back to the repository. A cache write failure is
// not fatal; the snapshot from the repo is still returned.
type CatalogProvider struct {
	repo  CatalogRepo
	cache CatalogCache
}

func NewCatalogProvider(repo CatalogRepo, cache CatalogCache) *CatalogProvider {
	return &CatalogProvider{repo: repo, cache: cache}
}

func (p *CatalogProvider) Snapshot(ctx context.Context) (*domain.Catalog, error) {
	if p.cache != nil {
		if entries, ok, err := p.cache.Get(ctx); err == nil && ok {
			return domain.NewCatalog(entries), nil
		}
	}

	entries, err := p.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, entries); err != nil {
			logging.FromCtx(ctx).Warn("catalog cache set failed", "err", err)
		}
	}
	return domain.NewCatalog(entries), nil
}

// Invalidate drops the cached snapshot after a menu change.
func (p *CatalogProvider) Invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Invalidate(ctx); err != nil {
		logging.FromCtx(ctx).Warn("catalog cache invalidate failed", "err", err)
	}
}
