package services

import (
	"fmt"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
)

// DraftService manages the single create-asset draft buffer
type DraftService struct {
	store ports.DraftStore
}

// NewDraftService creates a new draft service
func NewDraftService(store ports.DraftStore) *DraftService {
	return &DraftService{store: store}
}

// Resume returns the stored draft, or a fresh one. resumed reports which.
func (s *DraftService) Resume() (draft *domain.CreateDraft, resumed bool, err error) {
	draft, err = s.store.Load()
	if err != nil {
		return nil, false, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft == nil {
		return domain.NewCreateDraft(), false, nil
	}
	return draft, true, nil
}

// Load returns the stored draft or nil
func (s *DraftService) Load() (*domain.CreateDraft, error) {
	draft, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return draft, nil
}

// Save persists the draft; called after every change in the wizard
func (s *DraftService) Save(draft *domain.CreateDraft) error {
	if err := s.store.Save(draft); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Discard removes the draft
func (s *DraftService) Discard() error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// Path returns where the draft lives on disk
func (s *DraftService) Path() string {
	return s.store.Path()
}
