package mocks

import (
	"sync"
	"time"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// MockTokenStore is an in-memory TokenStore
type MockTokenStore struct {
	mu      sync.RWMutex
	token   string
	saveErr error
	clears  int
}

func NewMockTokenStore(token string) *MockTokenStore {
	return &MockTokenStore{token: token}
}

func (m *MockTokenStore) Load() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MockTokenStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *MockTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.clears++
	return nil
}

func (m *MockTokenStore) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Clears returns how many times Clear was called
func (m *MockTokenStore) Clears() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clears
}

// MockDraftStore is an in-memory DraftStore
type MockDraftStore struct {
	mu     sync.RWMutex
	draft  *domain.CreateDraft
	saves  int
	clears int
}

func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{}
}

func (m *MockDraftStore) Load() (*domain.CreateDraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.draft == nil {
		return nil, nil
	}
	cp := *m.draft
	return &cp, nil
}

func (m *MockDraftStore) Save(draft *domain.CreateDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft.Revision++
	draft.SavedAt = time.Now().UTC()
	cp := *draft
	m.draft = &cp
	m.saves++
	return nil
}

func (m *MockDraftStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
	m.clears++
	return nil
}

func (m *MockDraftStore) Path() string {
	return "/fake/storage/create_asset_draft.json"
}

func (m *MockDraftStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

func (m *MockDraftStore) Clears() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clears
}
