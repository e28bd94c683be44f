package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
)

// SuggestionService handles the category suggestion queue
type SuggestionService struct {
	api   ports.SuggestionAPI
	cache ports.QueryCache
}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService(api ports.SuggestionAPI, cache ports.QueryCache) *SuggestionService {
	return &SuggestionService{api: api, cache: cache}
}

// Submit validates locally and only then sends the suggestion
func (s *SuggestionService) Submit(ctx context.Context, in domain.SuggestionInput) (*domain.CategorySuggestion, error) {
	if errs := in.Validate(); !errs.Empty() {
		return nil, errs
	}
	created, err := s.api.Create(ctx, in.ToSuggestion())
	if err != nil {
		return nil, fmt.Errorf("failed to submit suggestion: %w", err)
	}
	s.cache.Invalidate(domain.PrefixSuggestions)
	return created, nil
}

// Mine lists the current user's suggestions
func (s *SuggestionService) Mine(ctx context.Context) ([]domain.CategorySuggestion, error) {
	v, err := s.cache.Fetch(ctx, domain.SuggestionsKey("mine"), func(ctx context.Context) (any, error) {
		return s.api.Mine(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return v.([]domain.CategorySuggestion), nil
}

// List lists the moderation queue, optionally filtered
func (s *SuggestionService) List(ctx context.Context, status domain.SuggestionStatus, kind domain.SuggestionType) ([]domain.CategorySuggestion, error) {
	key := domain.SuggestionsKey("all:" + string(status) + ":" + string(kind))
	v, err := s.cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return s.api.List(ctx, status, kind)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return v.([]domain.CategorySuggestion), nil
}

// Review approves or rejects a suggestion. An approval changes the
// taxonomy, so reference data is invalidated as well.
func (s *SuggestionService) Review(ctx context.Context, id, status, notes string) (*domain.CategorySuggestion, error) {
	st, err := domain.ParseSuggestionStatus(status)
	if err != nil {
		return nil, err
	}
	if st == domain.SuggestionPending {
		return nil, fmt.Errorf("a review must approve or reject")
	}
	reviewed, err := s.api.Review(ctx, strings.TrimSpace(id), st, strings.TrimSpace(notes))
	if err != nil {
		return nil, fmt.Errorf("failed to review suggestion: %w", err)
	}
	s.cache.Invalidate(domain.PrefixSuggestions)
	if st == domain.SuggestionApproved {
		s.cache.Invalidate(domain.PrefixReference)
	}
	return reviewed, nil
}

// Delete withdraws a suggestion
func (s *SuggestionService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}
	s.cache.Invalidate(domain.PrefixSuggestions)
	return nil
}
