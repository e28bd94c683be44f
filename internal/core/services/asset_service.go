package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
)

// AssetService serves asset reads through the query cache and runs
// lifecycle mutations that invalidate it
type AssetService struct {
	assets ports.AssetAPI
	cache  ports.QueryCache
}

// NewAssetService creates a new asset service
func NewAssetService(assets ports.AssetAPI, cache ports.QueryCache) *AssetService {
	return &AssetService{
		assets: assets,
		cache:  cache,
	}
}

// ListRequest selects the dashboard (own/all assets) or the public catalog
type ListRequest struct {
	Filter domain.ListFilter
	Public bool
}

// ListResponse represents a page of assets
type ListResponse struct {
	Assets []domain.Asset
	Total  int
}

// List fetches assets matching the filter. Every distinct filter is its own
// cache entry, so changing any filter value refetches.
func (s *AssetService) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	var (
		key  string
		load func(context.Context) (any, error)
	)
	if req.Public {
		filter := req.Filter.Public()
		key = domain.PublicListKey(filter)
		load = func(ctx context.Context) (any, error) { return s.assets.ListPublic(ctx, filter) }
	} else {
		filter := req.Filter
		key = domain.AssetListKey(filter)
		load = func(ctx context.Context) (any, error) { return s.assets.List(ctx, filter) }
	}

	v, err := s.cache.Fetch(ctx, key, load)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	list := v.(*domain.AssetList)
	return &ListResponse{Assets: list.Items, Total: list.Total}, nil
}

// Get fetches one asset; public uses the approved-only endpoint without a token
func (s *AssetService) Get(ctx context.Context, id string, public bool) (*domain.Asset, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("asset id cannot be empty")
	}

	key := domain.AssetKey(id)
	load := func(ctx context.Context) (any, error) { return s.assets.Get(ctx, id) }
	if public {
		key = domain.PublicAssetKey(id)
		load = func(ctx context.Context) (any, error) { return s.assets.GetPublic(ctx, id) }
	}

	v, err := s.cache.Fetch(ctx, key, load)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset %s: %w", id, err)
	}
	return v.(*domain.Asset), nil
}

// Submit moves a draft into review
func (s *AssetService) Submit(ctx context.Context, id string) (*domain.Asset, error) {
	a, err := s.assets.Submit(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to submit asset: %w", err)
	}
	s.invalidate(id)
	return a, nil
}

// Approve publishes an asset under review
func (s *AssetService) Approve(ctx context.Context, id string) (*domain.Asset, error) {
	a, err := s.assets.Approve(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to approve asset: %w", err)
	}
	s.invalidate(id)
	return a, nil
}

// Reject returns an asset to its contributor with a reason
func (s *AssetService) Reject(ctx context.Context, id, reason string) (*domain.Asset, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ValidationErrors{"reason": "a rejection reason is required"}
	}
	a, err := s.assets.Reject(ctx, id, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to reject asset: %w", err)
	}
	s.invalidate(id)
	return a, nil
}

// Delete removes an asset
func (s *AssetService) Delete(ctx context.Context, id string) error {
	if err := s.assets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	s.invalidate(id)
	return nil
}

// Update sends a typed partial update and invalidates the asset's queries
func (s *AssetService) Update(ctx context.Context, id string, patch domain.AssetPatch) (*domain.Asset, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("nothing to update")
	}
	a, err := s.assets.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	s.invalidate(id)
	return a, nil
}

func (s *AssetService) invalidate(id string) {
	s.cache.Invalidate(domain.AssetKey(id), domain.PrefixAssetLists, domain.PrefixPublic)
}
