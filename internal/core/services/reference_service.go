package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
)

// ReferenceService reads reference data. The taxonomy is fetched once per
// cache lifetime and shared by every selector.
type ReferenceService struct {
	api   ports.ReferenceAPI
	cache ports.QueryCache
}

// NewReferenceService creates a new reference service
func NewReferenceService(api ports.ReferenceAPI, cache ports.QueryCache) *ReferenceService {
	return &ReferenceService{api: api, cache: cache}
}

// Taxonomy returns the closed category taxonomy
func (s *ReferenceService) Taxonomy(ctx context.Context) (domain.Taxonomy, error) {
	v, err := s.cache.Fetch(ctx, domain.ReferenceKey("categories"), func(ctx context.Context) (any, error) {
		return s.api.Categories(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return v.(domain.Taxonomy), nil
}

// List returns one reference list such as asset-types or license-types
func (s *ReferenceService) List(ctx context.Context, kind string) ([]domain.ReferenceItem, error) {
	kind = strings.Trim(strings.TrimSpace(kind), "/")
	if kind == "" {
		return nil, fmt.Errorf("reference kind cannot be empty")
	}
	v, err := s.cache.Fetch(ctx, domain.ReferenceKey(kind), func(ctx context.Context) (any, error) {
		return s.api.List(ctx, kind)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", kind, err)
	}
	return v.([]domain.ReferenceItem), nil
}
