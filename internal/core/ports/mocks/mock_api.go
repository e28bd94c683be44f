package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
)

// --- MockAssetAPI ---

// MockAssetAPI keeps assets in memory and mimics the server's lifecycle
type MockAssetAPI struct {
	mu     sync.RWMutex
	assets map[string]*domain.Asset
	order  []string
	nextID int
	calls  []string
	errs   map[string]error
}

func NewMockAssetAPI() *MockAssetAPI {
	return &MockAssetAPI{
		assets: make(map[string]*domain.Asset),
		errs:   make(map[string]error),
	}
}

// SetError makes the named method fail with err until cleared with nil
func (m *MockAssetAPI) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, method)
		return
	}
	m.errs[method] = err
}

// GetCalls returns the method names called, in order
func (m *MockAssetAPI) GetCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Put seeds an asset directly
func (m *MockAssetAPI) Put(a domain.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[a.ID]; !ok {
		m.order = append(m.order, a.ID)
	}
	cp := a
	m.assets[a.ID] = &cp
}

func (m *MockAssetAPI) record(method string) error {
	m.calls = append(m.calls, method)
	return m.errs[method]
}

func (m *MockAssetAPI) Create(ctx context.Context, patch domain.AssetPatch) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Create"); err != nil {
		return nil, err
	}
	m.nextID++
	a := &domain.Asset{ID: fmt.Sprintf("asset-%d", m.nextID)}
	patch.ApplyTo(a)
	a.SystemMeta.Status = domain.StatusDraft
	m.assets[a.ID] = a
	m.order = append(m.order, a.ID)
	cp := *a
	return &cp, nil
}

func (m *MockAssetAPI) Get(ctx context.Context, id string) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Get"); err != nil {
		return nil, err
	}
	return m.lookup(id)
}

func (m *MockAssetAPI) lookup(id string) (*domain.Asset, error) {
	a, ok := m.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset not found: %s", id)
	}
	cp := *a
	return &cp, nil
}

func (m *MockAssetAPI) Update(ctx context.Context, id string, patch domain.AssetPatch) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Update"); err != nil {
		return nil, err
	}
	a, ok := m.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset not found: %s", id)
	}
	patch.ApplyTo(a)
	cp := *a
	return &cp, nil
}

func (m *MockAssetAPI) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Delete"); err != nil {
		return err
	}
	if _, ok := m.assets[id]; !ok {
		return fmt.Errorf("asset not found: %s", id)
	}
	delete(m.assets, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockAssetAPI) List(ctx context.Context, filter domain.ListFilter) (*domain.AssetList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("List"); err != nil {
		return nil, err
	}
	return m.filter(filter, ""), nil
}

func (m *MockAssetAPI) filter(filter domain.ListFilter, onlyStatus domain.Status) *domain.AssetList {
	list := &domain.AssetList{Items: []domain.Asset{}}
	for _, id := range m.order {
		a := m.assets[id]
		if onlyStatus != "" && a.SystemMeta.Status != onlyStatus {
			continue
		}
		if filter.Status != "" && string(a.SystemMeta.Status) != filter.Status {
			continue
		}
		if filter.AssetType != "" && string(a.BasicInformation.AssetType) != filter.AssetType {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.BasicInformation.Name), strings.ToLower(filter.Search)) {
			continue
		}
		list.Items = append(list.Items, *a)
	}
	list.Total = len(list.Items)
	return list
}

func (m *MockAssetAPI) transition(method, id string, to domain.Status, reason string) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(method); err != nil {
		return nil, err
	}
	a, ok := m.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset not found: %s", id)
	}
	a.SystemMeta.Status = to
	a.SystemMeta.RejectionReason = reason
	cp := *a
	return &cp, nil
}

func (m *MockAssetAPI) Submit(ctx context.Context, id string) (*domain.Asset, error) {
	return m.transition("Submit", id, domain.StatusUnderReview, "")
}

func (m *MockAssetAPI) Approve(ctx context.Context, id string) (*domain.Asset, error) {
	return m.transition("Approve", id, domain.StatusApproved, "")
}

func (m *MockAssetAPI) Reject(ctx context.Context, id, reason string) (*domain.Asset, error) {
	return m.transition("Reject", id, domain.StatusDraft, reason)
}

func (m *MockAssetAPI) ListPublic(ctx context.Context, filter domain.ListFilter) (*domain.AssetList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("ListPublic"); err != nil {
		return nil, err
	}
	return m.filter(filter.Public(), domain.StatusApproved), nil
}

func (m *MockAssetAPI) GetPublic(ctx context.Context, id string) (*domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetPublic"); err != nil {
		return nil, err
	}
	a, ok := m.assets[id]
	if !ok || a.SystemMeta.Status != domain.StatusApproved {
		return nil, fmt.Errorf("asset not found: %s", id)
	}
	cp := *a
	return &cp, nil
}

// --- MockContributorAPI ---

// MockContributorAPI records uploads and writes them into a MockAssetAPI
type MockContributorAPI struct {
	mu          sync.Mutex
	assets      *MockAssetAPI
	uploads     []domain.UploadGroup
	links       []domain.FileLink
	extractions []domain.AIExtractRequest
	failDocType map[string]error
	extractErr  error
}

func NewMockContributorAPI(assets *MockAssetAPI) *MockContributorAPI {
	return &MockContributorAPI{assets: assets, failDocType: make(map[string]error)}
}

// FailUploadsOf makes uploads of docType fail with err
func (m *MockContributorAPI) FailUploadsOf(docType string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failDocType[docType] = err
}

func (m *MockContributorAPI) SetExtractError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extractErr = err
}

func (m *MockContributorAPI) Uploads() []domain.UploadGroup {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.UploadGroup, len(m.uploads))
	copy(out, m.uploads)
	return out
}

func (m *MockContributorAPI) Extractions() []domain.AIExtractRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AIExtractRequest, len(m.extractions))
	copy(out, m.extractions)
	return out
}

func (m *MockContributorAPI) Upload(ctx context.Context, assetID string, group domain.UploadGroup) (*domain.Asset, error) {
	m.mu.Lock()
	m.uploads = append(m.uploads, group)
	failErr := m.failDocType[group.DocType]
	m.mu.Unlock()
	if failErr != nil {
		return nil, failErr
	}

	m.assets.mu.Lock()
	defer m.assets.mu.Unlock()
	a, ok := m.assets.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset not found: %s", assetID)
	}
	for _, f := range group.Files {
		if group.DocType == domain.DocTypeImage {
			a.DocumentationUploads.Images = append(a.DocumentationUploads.Images, domain.Image{
				ID: f.Filename(), Filename: f.Filename(), IsPrimary: f.IsPrimary,
			})
			continue
		}
		a.DocumentationUploads.Documents = append(a.DocumentationUploads.Documents, domain.Document{
			ID: f.Filename(), DocType: group.DocType, Filename: f.Filename(),
		})
	}
	cp := *a
	return &cp, nil
}

func (m *MockContributorAPI) AttachURL(ctx context.Context, assetID string, link domain.FileLink) (*domain.Asset, error) {
	m.mu.Lock()
	m.links = append(m.links, link)
	m.mu.Unlock()

	m.assets.mu.Lock()
	defer m.assets.mu.Unlock()
	return m.assets.lookup(assetID)
}

func (m *MockContributorAPI) Extract(ctx context.Context, assetID string, req domain.AIExtractRequest) (*domain.Asset, error) {
	m.mu.Lock()
	m.extractions = append(m.extractions, req)
	err := m.extractErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	m.assets.mu.Lock()
	defer m.assets.mu.Unlock()
	a, ok := m.assets.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("asset not found: %s", assetID)
	}
	a.AIAssistance.Status = "completed"
	a.AIAssistance.Sources = req.Sources
	cp := *a
	return &cp, nil
}

// --- MockAuthAPI ---

// MockAuthAPI accepts one registered email/password pair
type MockAuthAPI struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	password map[string]string
	tokens   *MockTokenStore
	meCalls  int
}

// NewMockAuthAPI resolves /auth/me from the token currently held by tokens
func NewMockAuthAPI(tokens *MockTokenStore) *MockAuthAPI {
	return &MockAuthAPI{
		users:    make(map[string]domain.User),
		password: make(map[string]string),
		tokens:   tokens,
	}
}

func (m *MockAuthAPI) Register(u domain.User, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Email] = u
	m.password[u.Email] = password
}

func (m *MockAuthAPI) MeCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.meCalls
}

func (m *MockAuthAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.TokenResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if pw, ok := m.password[creds.Email]; !ok || pw != creds.Password {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &domain.TokenResponse{AccessToken: "token-" + creds.Email, TokenType: "bearer"}, nil
}

func (m *MockAuthAPI) Signup(ctx context.Context, req domain.SignupRequest) (*domain.SignupResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[req.Email]; exists {
		return nil, fmt.Errorf("email already registered")
	}
	u := domain.User{ID: fmt.Sprintf("user-%d", len(m.users)+1), Email: req.Email, Name: req.Name, Role: "contributor"}
	m.users[req.Email] = u
	m.password[req.Email] = req.Password
	return &domain.SignupResponse{AccessToken: "token-" + req.Email, TokenType: "bearer", User: u}, nil
}

func (m *MockAuthAPI) Me(ctx context.Context) (*domain.User, error) {
	token, _ := m.tokens.Load()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.meCalls++
	email := strings.TrimPrefix(token, "token-")
	u, ok := m.users[email]
	if token == "" || !ok {
		return nil, fmt.Errorf("unauthorized")
	}
	return &u, nil
}

// --- MockReferenceAPI ---

type MockReferenceAPI struct {
	mu       sync.Mutex
	taxonomy domain.Taxonomy
	lists    map[string][]domain.ReferenceItem
	calls    int
}

func NewMockReferenceAPI(tax domain.Taxonomy) *MockReferenceAPI {
	return &MockReferenceAPI{taxonomy: tax, lists: make(map[string][]domain.ReferenceItem)}
}

func (m *MockReferenceAPI) SetList(kind string, items []domain.ReferenceItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[kind] = items
}

func (m *MockReferenceAPI) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockReferenceAPI) Categories(ctx context.Context) (domain.Taxonomy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.taxonomy, nil
}

func (m *MockReferenceAPI) List(ctx context.Context, kind string) ([]domain.ReferenceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	items, ok := m.lists[kind]
	if !ok {
		return nil, fmt.Errorf("unknown reference list %q", kind)
	}
	return items, nil
}

// --- MockSuggestionAPI ---

type MockSuggestionAPI struct {
	mu          sync.RWMutex
	suggestions []domain.CategorySuggestion
	createCalls int
}

func NewMockSuggestionAPI() *MockSuggestionAPI {
	return &MockSuggestionAPI{}
}

func (m *MockSuggestionAPI) CreateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

func (m *MockSuggestionAPI) Create(ctx context.Context, s domain.CategorySuggestion) (*domain.CategorySuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	s.ID = fmt.Sprintf("sugg-%d", len(m.suggestions)+1)
	s.Status = domain.SuggestionPending
	m.suggestions = append(m.suggestions, s)
	return &s, nil
}

func (m *MockSuggestionAPI) Mine(ctx context.Context) ([]domain.CategorySuggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.CategorySuggestion, len(m.suggestions))
	copy(out, m.suggestions)
	return out, nil
}

func (m *MockSuggestionAPI) List(ctx context.Context, status domain.SuggestionStatus, kind domain.SuggestionType) ([]domain.CategorySuggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.CategorySuggestion
	for _, s := range m.suggestions {
		if status != "" && s.Status != status {
			continue
		}
		if kind != "" && s.SuggestionType != kind {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *MockSuggestionAPI) Review(ctx context.Context, id string, status domain.SuggestionStatus, notes string) (*domain.CategorySuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.suggestions {
		if m.suggestions[i].ID == id {
			m.suggestions[i].Status = status
			m.suggestions[i].AdminNotes = notes
			cp := m.suggestions[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("suggestion not found: %s", id)
}

func (m *MockSuggestionAPI) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.suggestions {
		if m.suggestions[i].ID == id {
			m.suggestions = append(m.suggestions[:i], m.suggestions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("suggestion not found: %s", id)
}

// --- MockQueryCache ---

// MockQueryCache never caches; it records fetched keys and invalidations
type MockQueryCache struct {
	mu          sync.Mutex
	fetched     []string
	invalidated []string
}

func NewMockQueryCache() *MockQueryCache {
	return &MockQueryCache{}
}

func (m *MockQueryCache) Fetch(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, key)
	m.mu.Unlock()
	return fn(ctx)
}

func (m *MockQueryCache) Invalidate(prefixes ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, prefixes...)
}

func (m *MockQueryCache) Fetched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.fetched))
	copy(out, m.fetched)
	return out
}

func (m *MockQueryCache) Invalidated() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.invalidated))
	copy(out, m.invalidated)
	return out
}

// --- MockEditor ---

// MockEditor rewrites the opened file with a callback instead of a real editor
type MockEditor struct {
	mu     sync.Mutex
	Edit   func(path string) error
	opened []string
}

func (m *MockEditor) Open(ctx context.Context, path string) error {
	m.mu.Lock()
	m.opened = append(m.opened, path)
	edit := m.Edit
	m.mu.Unlock()
	if edit == nil {
		return nil
	}
	return edit(path)
}

func (m *MockEditor) Opened() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.opened))
	copy(out, m.opened)
	return out
}
