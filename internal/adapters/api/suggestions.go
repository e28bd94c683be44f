package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// SuggestionsResource maps the /category-suggestions endpoints
type SuggestionsResource struct {
	client *Client
}

func NewSuggestionsResource(client *Client) *SuggestionsResource {
	return &SuggestionsResource{client: client}
}

func (r *SuggestionsResource) Create(ctx context.Context, s domain.CategorySuggestion) (*domain.CategorySuggestion, error) {
	var out domain.CategorySuggestion
	if err := r.client.Post(ctx, "/category-suggestions", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SuggestionsResource) Mine(ctx context.Context) ([]domain.CategorySuggestion, error) {
	var out []domain.CategorySuggestion
	if err := r.client.Get(ctx, "/category-suggestions/my-suggestions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SuggestionsResource) List(ctx context.Context, status domain.SuggestionStatus, kind domain.SuggestionType) ([]domain.CategorySuggestion, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	if kind != "" {
		q.Set("suggestion_type", string(kind))
	}
	path := "/category-suggestions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []domain.CategorySuggestion
	if err := r.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type reviewRequest struct {
	Status     domain.SuggestionStatus `json:"status"`
	AdminNotes string                  `json:"admin_notes,omitempty"`
}

// Review submits the desired target status; transition rules are the server's
func (r *SuggestionsResource) Review(ctx context.Context, id string, status domain.SuggestionStatus, notes string) (*domain.CategorySuggestion, error) {
	path, err := suggestionPath(id)
	if err != nil {
		return nil, err
	}
	var out domain.CategorySuggestion
	body := reviewRequest{Status: status, AdminNotes: strings.TrimSpace(notes)}
	if err := r.client.Patch(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SuggestionsResource) Delete(ctx context.Context, id string) error {
	path, err := suggestionPath(id)
	if err != nil {
		return err
	}
	return r.client.Delete(ctx, path, nil)
}

func suggestionPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("suggestion id is required")
	}
	return "/category-suggestions/" + url.PathEscape(id), nil
}
