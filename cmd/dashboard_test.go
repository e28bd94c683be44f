package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// fakeBackend records dashboard actions
type fakeBackend struct {
	assets    []domain.Asset
	listErr   error
	actionErr error

	listed    []domain.ListFilter
	submitted []string
	approved  []string
	deleted   []string
	rejected  map[string]string
}

func (f *fakeBackend) List(ctx context.Context, req services.ListRequest) (*services.ListResponse, error) {
	f.listed = append(f.listed, req.Filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &services.ListResponse{Assets: f.assets, Total: len(f.assets)}, nil
}

func (f *fakeBackend) Submit(ctx context.Context, id string) (*domain.Asset, error) {
	f.submitted = append(f.submitted, id)
	return &domain.Asset{ID: id}, f.actionErr
}

func (f *fakeBackend) Approve(ctx context.Context, id string) (*domain.Asset, error) {
	f.approved = append(f.approved, id)
	return &domain.Asset{ID: id}, f.actionErr
}

func (f *fakeBackend) Reject(ctx context.Context, id, reason string) (*domain.Asset, error) {
	if f.rejected == nil {
		f.rejected = map[string]string{}
	}
	f.rejected[id] = reason
	return &domain.Asset{ID: id}, f.actionErr
}

func (f *fakeBackend) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.actionErr
}

func createTestAssets(count int) []domain.Asset {
	assets := make([]domain.Asset, count)
	for i := range assets {
		assets[i] = domain.Asset{
			ID: fmt.Sprintf("asset-%d", i),
			BasicInformation: domain.BasicInformation{
				Name: fmt.Sprintf("Asset %d", i),
				Tags: []string{"tag"},
			},
			SystemMeta: domain.SystemMeta{Status: domain.StatusDraft},
		}
	}
	return assets
}

func newTestDashboard(assets []domain.Asset, isAdmin bool) (dashboardModel, *fakeBackend) {
	backend := &fakeBackend{assets: assets}
	m := newDashboardModel(context.Background(), backend, domain.ListFilter{Limit: 20}, assets, isAdmin)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(dashboardModel), backend
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes a command and returns its message, skipping nil commands
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestDashboardModelInitialization(t *testing.T) {
	assets := createTestAssets(2)
	m := newDashboardModel(context.Background(), &fakeBackend{}, domain.ListFilter{}, assets, false)

	if len(m.assets) != 2 {
		t.Errorf("Expected 2 assets, got %d", len(m.assets))
	}
	if m.cursor != 0 || m.offset != 0 {
		t.Errorf("Expected cursor and offset at 0, got %d/%d", m.cursor, m.offset)
	}
	if m.mode != modeList {
		t.Errorf("Expected mode to be modeList, got %v", m.mode)
	}
	if m.ready {
		t.Error("Expected ready to be false before the first WindowSizeMsg")
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Error("Expected loading view before the first WindowSizeMsg")
	}
}

func TestDashboardNavigation(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		key    tea.KeyMsg
		expect int
	}{
		{"up", 2, tea.KeyMsg{Type: tea.KeyUp}, 1},
		{"down", 2, tea.KeyMsg{Type: tea.KeyDown}, 3},
		{"k moves up", 2, keyPress("k"), 1},
		{"j moves down", 2, keyPress("j"), 3},
		{"up at top stays", 0, tea.KeyMsg{Type: tea.KeyUp}, 0},
		{"down at bottom stays", 4, tea.KeyMsg{Type: tea.KeyDown}, 4},
		{"g jumps to top", 3, keyPress("g"), 0},
		{"G jumps to bottom", 0, keyPress("G"), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestDashboard(createTestAssets(5), false)
			m.cursor = tt.start
			updated, _ := m.Update(tt.key)
			if got := updated.(dashboardModel).cursor; got != tt.expect {
				t.Errorf("cursor = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestDashboardModeTransitions(t *testing.T) {
	m, _ := newTestDashboard(createTestAssets(3), false)

	updated, _ := m.Update(keyPress("/"))
	m = updated.(dashboardModel)
	if m.mode != modeSearch {
		t.Fatalf("Expected modeSearch after '/', got %v", m.mode)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(dashboardModel)
	if m.mode != modeList {
		t.Fatalf("Expected modeList after ESC, got %v", m.mode)
	}

	updated, _ = m.Update(keyPress("?"))
	m = updated.(dashboardModel)
	if m.mode != modeHelp {
		t.Fatalf("Expected modeHelp after '?', got %v", m.mode)
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("Help view should list keyboard shortcuts")
	}

	updated, _ = m.Update(keyPress("?"))
	if updated.(dashboardModel).mode != modeList {
		t.Error("Expected '?' to close help")
	}
}

func TestDashboardSearchQueriesServerOnEnter(t *testing.T) {
	assets := createTestAssets(3)
	m, backend := newTestDashboard(assets, false)

	updated, _ := m.Update(keyPress("/"))
	m = updated.(dashboardModel)
	for _, r := range "solar" {
		updated, _ = m.Update(keyPress(string(r)))
		m = updated.(dashboardModel)
	}
	if m.searchInput.Value() != "solar" {
		t.Fatalf("search input = %q", m.searchInput.Value())
	}
	if len(m.assets) != 3 || m.filter.Search != "" {
		t.Errorf("typing must leave the list alone until Enter, got %d assets", len(m.assets))
	}
	if len(backend.listed) != 0 {
		t.Error("Typing should not query the server")
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(dashboardModel)
	if m.filter.Search != "solar" {
		t.Errorf("filter.Search = %q, want %q", m.filter.Search, "solar")
	}
	if _, ok := runCmd(cmd).(assetsLoadedMsg); !ok {
		t.Fatal("Enter should reload from the server")
	}
	if len(backend.listed) != 1 || backend.listed[0].Search != "solar" {
		t.Errorf("server query = %+v", backend.listed)
	}
}

func TestDashboardSearchClearOnEscape(t *testing.T) {
	m, backend := newTestDashboard(createTestAssets(3), false)
	m.filter.Search = "pump"
	m.mode = modeSearch

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(dashboardModel)
	if m.filter.Search != "" {
		t.Error("ESC should clear the server search")
	}
	runCmd(cmd)
	if len(backend.listed) != 1 {
		t.Error("Clearing an active server search should reload")
	}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"", "draft"},
		{"draft", "under_review"},
		{"under_review", "approved"},
		{"approved", "deprecated"},
		{"deprecated", ""},
		{"bogus", ""},
	}
	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			if got := nextStatus(tt.current); got != tt.want {
				t.Errorf("nextStatus(%q) = %q, want %q", tt.current, got, tt.want)
			}
		})
	}
}

func TestDashboardStatusFilterReloads(t *testing.T) {
	m, backend := newTestDashboard(createTestAssets(2), false)

	updated, cmd := m.Update(keyPress("f"))
	m = updated.(dashboardModel)
	if m.filter.Status != "draft" {
		t.Errorf("filter.Status = %q, want draft", m.filter.Status)
	}
	if !strings.Contains(m.message, "draft") {
		t.Errorf("status message = %q", m.message)
	}
	// Batch of tick and reload: run the reload directly
	runCmd(m.reload())
	if cmd == nil || len(backend.listed) == 0 || backend.listed[0].Status != "draft" {
		t.Errorf("expected reload with status filter, got %+v", backend.listed)
	}
}

func TestDashboardSubmit(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.Status
		actionErr  error
		wantCall   bool
		wantStyled string
	}{
		{name: "draft is submitted", status: domain.StatusDraft, wantCall: true, wantStyled: "Submitted"},
		{name: "approved asset is refused", status: domain.StatusApproved, wantStyled: "Only drafts"},
		{name: "server error surfaces", status: domain.StatusDraft, actionErr: errors.New("boom"), wantCall: true, wantStyled: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets := createTestAssets(1)
			assets[0].SystemMeta.Status = tt.status
			m, backend := newTestDashboard(assets, false)
			backend.actionErr = tt.actionErr

			updated, cmd := m.Update(keyPress("s"))
			m = updated.(dashboardModel)
			if tt.wantCall {
				msg := runCmd(cmd)
				updated, _ = m.Update(msg)
				m = updated.(dashboardModel)
			}

			if tt.wantCall != (len(backend.submitted) == 1) {
				t.Errorf("submitted = %v, wantCall %v", backend.submitted, tt.wantCall)
			}
			if !strings.Contains(m.message, tt.wantStyled) {
				t.Errorf("message = %q, want it to contain %q", m.message, tt.wantStyled)
			}
		})
	}
}

func TestDashboardAdminActionsRequireAdmin(t *testing.T) {
	for _, k := range []string{"a", "r"} {
		t.Run(k, func(t *testing.T) {
			m, backend := newTestDashboard(createTestAssets(1), false)
			updated, _ := m.Update(keyPress(k))
			m = updated.(dashboardModel)
			if m.mode != modeList {
				t.Errorf("mode = %v, want modeList", m.mode)
			}
			if !strings.Contains(m.message, "admin") {
				t.Errorf("message = %q", m.message)
			}
			if len(backend.approved) != 0 {
				t.Error("approve should not be called")
			}
		})
	}
}

func TestDashboardApprove(t *testing.T) {
	m, backend := newTestDashboard(createTestAssets(2), true)
	m.cursor = 1

	_, cmd := m.Update(keyPress("a"))
	msg, ok := runCmd(cmd).(actionDoneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("expected successful actionDoneMsg, got %#v", msg)
	}
	if len(backend.approved) != 1 || backend.approved[0] != "asset-1" {
		t.Errorf("approved = %v", backend.approved)
	}
}

func TestDashboardRejectFlow(t *testing.T) {
	m, backend := newTestDashboard(createTestAssets(1), true)

	updated, _ := m.Update(keyPress("r"))
	m = updated.(dashboardModel)
	if m.mode != modeReject || m.target == nil {
		t.Fatalf("expected reject mode with a target, got mode %v", m.mode)
	}

	// Empty reason is refused
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(dashboardModel)
	if m.mode != modeReject {
		t.Fatal("empty reason should keep the reject prompt open")
	}

	m.rejectInput.SetValue("missing photos")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(dashboardModel)
	if m.mode != modeList || m.target != nil {
		t.Error("sending a reason should return to the list")
	}
	runCmd(cmd)
	if backend.rejected["asset-0"] != "missing photos" {
		t.Errorf("rejected = %v", backend.rejected)
	}
}

func TestDashboardDeleteConfirmation(t *testing.T) {
	tests := []struct {
		name        string
		answer      tea.KeyMsg
		wantDeleted bool
	}{
		{"confirm with y", keyPress("y"), true},
		{"cancel with n", keyPress("n"), false},
		{"cancel with esc", tea.KeyMsg{Type: tea.KeyEsc}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, backend := newTestDashboard(createTestAssets(2), false)

			updated, _ := m.Update(keyPress("d"))
			m = updated.(dashboardModel)
			if m.mode != modeConfirmDelete {
				t.Fatalf("Expected modeConfirmDelete, got %v", m.mode)
			}
			if !strings.Contains(m.View(), "Delete Asset?") {
				t.Error("confirm view should ask before deleting")
			}

			updated, cmd := m.Update(tt.answer)
			m = updated.(dashboardModel)
			runCmd(cmd)
			if m.mode != modeList {
				t.Errorf("Expected modeList after answering, got %v", m.mode)
			}
			if got := len(backend.deleted) == 1; got != tt.wantDeleted {
				t.Errorf("deleted = %v, want deleted %v", backend.deleted, tt.wantDeleted)
			}
		})
	}
}

func TestDashboardActionDoneReloads(t *testing.T) {
	m, backend := newTestDashboard(createTestAssets(2), false)
	backend.assets = createTestAssets(1)

	updated, cmd := m.Update(actionDoneMsg{message: "Deleted Asset 1"})
	m = updated.(dashboardModel)
	if m.message != "Deleted Asset 1" {
		t.Errorf("message = %q", m.message)
	}
	if cmd == nil {
		t.Fatal("expected reload command")
	}

	updated, _ = m.Update(runCmd(m.reload()))
	m = updated.(dashboardModel)
	if len(m.assets) != 1 {
		t.Errorf("expected list to refresh to 1 asset, got %d", len(m.assets))
	}
}

func TestDashboardReloadError(t *testing.T) {
	m, _ := newTestDashboard(createTestAssets(2), false)
	updated, _ := m.Update(assetsLoadedMsg{err: errors.New("connection refused")})
	m = updated.(dashboardModel)
	if !strings.HasPrefix(m.message, "Reload failed") {
		t.Errorf("message = %q", m.message)
	}
	if len(m.assets) != 2 {
		t.Error("a failed reload should keep the current page")
	}
}

func TestDashboardSetStatus(t *testing.T) {
	m, _ := newTestDashboard(createTestAssets(1), false)
	cmd := m.setStatus("Saved", ui.StyleSuccess)
	if cmd == nil {
		t.Fatal("setStatus should schedule a clear")
	}
	if m.message != "Saved" {
		t.Errorf("message = %q", m.message)
	}
	if !strings.Contains(m.renderFooter(), "Saved") {
		t.Error("footer should show the live status message")
	}
}

func TestDashboardCursorClampedAfterReload(t *testing.T) {
	m, _ := newTestDashboard(createTestAssets(5), false)
	m.cursor = 4

	updated, _ := m.Update(assetsLoadedMsg{assets: createTestAssets(2)})
	m = updated.(dashboardModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestDashboardViewportAdjustment(t *testing.T) {
	m, _ := newTestDashboard(createTestAssets(100), false)
	h := m.listHeight()

	m.cursor = h + 5
	m.adjustViewport()
	if m.cursor < m.offset || m.cursor >= m.offset+h {
		t.Errorf("cursor %d outside viewport [%d, %d)", m.cursor, m.offset, m.offset+h)
	}

	m.cursor = 0
	m.adjustViewport()
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0", m.offset)
	}
}

func TestDashboardRawViewToggle(t *testing.T) {
	m, _ := newTestDashboard(createTestAssets(1), false)
	updated, _ := m.Update(keyPress("v"))
	m = updated.(dashboardModel)
	if !m.rawView {
		t.Fatal("'v' should toggle the YAML view")
	}
	if !strings.Contains(m.preview.View(), "asset-0") {
		t.Error("YAML preview should include the asset id")
	}
}

func TestDashboardEmptyState(t *testing.T) {
	m, _ := newTestDashboard(nil, false)
	if m.selected() != nil {
		t.Error("no asset should be selected")
	}
	if !strings.Contains(m.View(), "No assets yet") {
		t.Error("empty dashboard should suggest creating an asset")
	}

	// Actions on an empty list are no-ops
	updated, cmd := m.Update(keyPress("d"))
	if updated.(dashboardModel).mode != modeList || cmd != nil {
		t.Error("delete on an empty list should do nothing")
	}
}

func TestDashboardPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  int
	}{
		{"abc", 6, 6},
		{"abcdef", 3, 6},
		{"", 4, 4},
	}
	for _, tt := range tests {
		if got := len(padRight(tt.input, tt.width)); got != tt.want {
			t.Errorf("padRight(%q, %d) length = %d, want %d", tt.input, tt.width, got, tt.want)
		}
	}
}
