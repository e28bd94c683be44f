package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/alib-cli/internal/adapters/api"
	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Launch interactive dashboard (alias: dash)",
	Long: `Launch a full-screen dashboard for managing assets.

The dashboard provides:
- List of your assets (every asset for admins) with a live preview
- Search and status filtering
- Quick actions: edit, submit, approve, reject, delete, create

Keyboard Shortcuts:
  Navigation:
    ↑/k         Move up
    ↓/j         Move down
    g           Jump to top
    G           Jump to bottom

  Actions:
    e           Edit asset
    s           Submit for review
    a           Approve (admin)
    r           Reject with reason (admin)
    d           Delete asset
    n           Create new asset
    o           Open public page
    y           Copy asset ID

  Views:
    /           Search (enter queries the server)
    f           Cycle status filter
    v           Toggle YAML preview
    R           Reload
    ?           Show help

  General:
    q           Quit dashboard
    Ctrl+C      Force quit`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	ctx := getContext()

	filter := domain.ListFilter{Status: appConfig.DefaultStatusFilter, Limit: appConfig.PageSize}
	resp, err := assetService.List(ctx, services.ListRequest{Filter: filter})
	if err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}

	m := newDashboardModel(ctx, assetService, filter, resp.Assets, user.IsAdmin())

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}

// dashboardBackend is the asset service surface the dashboard drives
type dashboardBackend interface {
	List(ctx context.Context, req services.ListRequest) (*services.ListResponse, error)
	Submit(ctx context.Context, id string) (*domain.Asset, error)
	Approve(ctx context.Context, id string) (*domain.Asset, error)
	Reject(ctx context.Context, id, reason string) (*domain.Asset, error)
	Delete(ctx context.Context, id string) error
}

// Dashboard view modes
type viewMode int

const (
	modeList viewMode = iota
	modeSearch
	modeHelp
	modeConfirmDelete
	modeReject
)

// statusCycle is the order 'f' steps through; "" means every status
var statusCycle = []string{"", string(domain.StatusDraft), string(domain.StatusUnderReview), string(domain.StatusApproved), string(domain.StatusDeprecated)}

// Dashboard model
type dashboardModel struct {
	ctx      context.Context
	backend  dashboardBackend
	filter   domain.ListFilter
	assets  []domain.Asset // current server page
	cursor  int
	offset  int
	mode    viewMode
	isAdmin bool

	searchInput textinput.Model
	rejectInput textinput.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	ready       bool

	message       string
	messageStyle  lipgloss.Style
	messageExpiry time.Time
	target        *domain.Asset // asset pending delete or reject

	preview viewport.Model
	rawView bool
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Edit    key.Binding
	Submit  key.Binding
	Approve key.Binding
	Reject  key.Binding
	Delete  key.Binding
	New     key.Binding
	Open    key.Binding
	Copy    key.Binding
	Search  key.Binding
	Filter  key.Binding
	Raw     key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Submit, k.Search, k.Filter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Edit, k.Submit, k.Approve, k.Reject, k.Delete, k.New},
		{k.Open, k.Copy, k.Search, k.Filter, k.Raw, k.Reload, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Top:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
	Bottom:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
	Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Submit:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
	Approve: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "approve")),
	Reject:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new asset")),
	Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open public page")),
	Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
	Raw:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "yaml view")),
	Reload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n/esc", "cancel")),
}

func newDashboardModel(ctx context.Context, backend dashboardBackend, filter domain.ListFilter, assets []domain.Asset, isAdmin bool) dashboardModel {
	ti := textinput.New()
	ti.Placeholder = "Search assets..."
	ti.CharLimit = 100
	ti.Width = 50

	ri := textinput.New()
	ri.Placeholder = "Why is this asset being returned?"
	ri.CharLimit = 500
	ri.Width = 60

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle().Foreground(ui.ColorDefault)

	m := dashboardModel{
		ctx:         ctx,
		backend:     backend,
		filter:      filter,
		assets:      assets,
		mode:        modeList,
		isAdmin:     isAdmin,
		searchInput: ti,
		rejectInput: ri,
		help:        help.New(),
		keys:        keys,
		preview:     vp,
	}
	m.refreshPreview()
	return m
}

// Messages
type statusMsg struct {
	message string
	style   lipgloss.Style
}

type clearMessageMsg struct{}

type assetsLoadedMsg struct {
	assets []domain.Asset
	err    error
}

// actionDoneMsg reports a finished server action; the list reloads after
type actionDoneMsg struct {
	message string
	err     error
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.preview.Width = max(msg.Width/2-4, 20)
		m.preview.Height = max(msg.Height-14, 6)
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			return m.updateHelp(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeReject:
			return m.updateReject(msg)
		default:
			return m.updateList(msg)
		}

	case statusMsg:
		cmd := m.setStatus(msg.message, msg.style)
		return m, cmd

	case clearMessageMsg:
		if time.Now().After(m.messageExpiry) {
			m.message = ""
		}
		return m, nil

	case assetsLoadedMsg:
		if msg.err != nil {
			cmd := m.setStatus("Reload failed: "+api.UserMessage(msg.err), ui.StyleError)
			return m, cmd
		}
		m.assets = msg.assets
		m.clampCursor()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			if errs, ok := asValidation(msg.err); ok {
				cmd := m.setStatus(errs.Error(), ui.StyleError)
				return m, cmd
			}
			cmd := m.setStatus(api.UserMessage(msg.err), ui.StyleError)
			return m, cmd
		}
		cmd := m.setStatus(msg.message, ui.StyleSuccess)
		return m, tea.Batch(cmd, m.reload())
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m dashboardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := m.selected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			m.refreshPreview()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.assets)-1 {
			m.cursor++
			m.adjustViewport()
			m.refreshPreview()
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.offset = 0
		m.refreshPreview()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.assets)-1, 0)
		m.adjustViewport()
		m.refreshPreview()
	case msg.Type == tea.KeyPgUp:
		m.preview.ViewUp()
	case msg.Type == tea.KeyPgDown:
		m.preview.ViewDown()

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Filter):
		m.filter.Status = nextStatus(m.filter.Status)
		label := m.filter.Status
		if label == "" {
			label = "all"
		}
		cmd := m.setStatus("Status: "+label, ui.StyleInfo)
		return m, tea.Batch(cmd, m.reload())
	case key.Matches(msg, m.keys.Raw):
		m.rawView = !m.rawView
		m.refreshPreview()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	case key.Matches(msg, m.keys.New):
		return m, m.runSubcommand("new")
	}

	if selected == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		return m, m.runSubcommand("edit", selected.ID)
	case key.Matches(msg, m.keys.Submit):
		if selected.SystemMeta.Status != domain.StatusDraft && selected.SystemMeta.Status != "" {
			cmd := m.setStatus("Only drafts can be submitted", ui.StyleWarning)
			return m, cmd
		}
		return m, m.act("Submitted "+selected.DisplayName(), func(ctx context.Context) error {
			_, err := m.backend.Submit(ctx, selected.ID)
			return err
		})
	case key.Matches(msg, m.keys.Approve):
		if !m.isAdmin {
			cmd := m.setStatus("Approving requires an admin account", ui.StyleWarning)
			return m, cmd
		}
		return m, m.act("Approved "+selected.DisplayName(), func(ctx context.Context) error {
			_, err := m.backend.Approve(ctx, selected.ID)
			return err
		})
	case key.Matches(msg, m.keys.Reject):
		if !m.isAdmin {
			cmd := m.setStatus("Rejecting requires an admin account", ui.StyleWarning)
			return m, cmd
		}
		m.target = selected
		m.mode = modeReject
		m.rejectInput.SetValue("")
		return m, m.rejectInput.Focus()
	case key.Matches(msg, m.keys.Delete):
		m.target = selected
		m.mode = modeConfirmDelete
	case key.Matches(msg, m.keys.Open):
		url := publicAssetURL(selected.ID)
		if url == "" {
			cmd := m.setStatus("public_web_url is not configured", ui.StyleWarning)
			return m, cmd
		}
		if err := OpenURL(url); err != nil {
			cmd := m.setStatus(err.Error(), ui.StyleError)
			return m, cmd
		}
		cmd := m.setStatus("Opened "+url, ui.StyleSuccess)
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		return m, copyIDCmd(selected.ID)
	}
	return m, nil
}

func (m dashboardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.filter.Search != "" {
			m.filter.Search = ""
			return m, m.reload()
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = modeList
		m.searchInput.Blur()
		m.filter.Search = strings.TrimSpace(m.searchInput.Value())
		return m, m.reload()

	// Only arrow keys navigate while typing
	case msg.Type == tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustViewport()
			m.refreshPreview()
		}
	case msg.Type == tea.KeyDown:
		if m.cursor < len(m.assets)-1 {
			m.cursor++
			m.adjustViewport()
			m.refreshPreview()
		}

	default:
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
	}
	return m, nil
}

func (m dashboardModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		target := m.target
		m.target = nil
		m.mode = modeList
		return m, m.act("Deleted "+target.DisplayName(), func(ctx context.Context) error {
			return m.backend.Delete(ctx, target.ID)
		})
	case key.Matches(msg, m.keys.Cancel):
		m.target = nil
		m.mode = modeList
	}
	return m, nil
}

func (m dashboardModel) updateReject(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.target = nil
		m.mode = modeList
		m.rejectInput.Blur()
		return m, nil
	case tea.KeyEnter:
		reason := strings.TrimSpace(m.rejectInput.Value())
		if reason == "" {
			cmd := m.setStatus("A rejection reason is required", ui.StyleWarning)
			return m, cmd
		}
		target := m.target
		m.target = nil
		m.mode = modeList
		m.rejectInput.Blur()
		return m, m.act("Rejected "+target.DisplayName(), func(ctx context.Context) error {
			_, err := m.backend.Reject(ctx, target.ID, reason)
			return err
		})
	}
	var cmd tea.Cmd
	m.rejectInput, cmd = m.rejectInput.Update(msg)
	return m, cmd
}

// act runs a server action off the UI loop
func (m dashboardModel) act(success string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		if err := fn(ctx); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{message: success}
	}
}

func (m dashboardModel) reload() tea.Cmd {
	ctx, backend, filter := m.ctx, m.backend, m.filter
	return func() tea.Msg {
		resp, err := backend.List(ctx, services.ListRequest{Filter: filter})
		if err != nil {
			return assetsLoadedMsg{err: err}
		}
		return assetsLoadedMsg{assets: resp.Assets}
	}
}

// runSubcommand suspends the dashboard and runs another alib command in the
// same terminal, reloading when it exits
func (m dashboardModel) runSubcommand(args ...string) tea.Cmd {
	self, err := os.Executable()
	if err != nil {
		return func() tea.Msg {
			return statusMsg{message: "Cannot locate alib: " + err.Error(), style: ui.StyleError}
		}
	}
	c := exec.Command(self, args...)
	ctx, backend, filter := m.ctx, m.backend, m.filter
	return tea.ExecProcess(c, func(err error) tea.Msg {
		if err != nil {
			return statusMsg{message: fmt.Sprintf("alib %s: %v", args[0], err), style: ui.StyleError}
		}
		resp, err := backend.List(ctx, services.ListRequest{Filter: filter})
		if err != nil {
			return assetsLoadedMsg{err: err}
		}
		return assetsLoadedMsg{assets: resp.Assets}
	})
}

func copyIDCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(id); err != nil {
			return statusMsg{message: "Clipboard access failed", style: ui.StyleError}
		}
		return statusMsg{message: "Copied " + id, style: ui.StyleSuccess}
	}
}

func (m *dashboardModel) setStatus(text string, style lipgloss.Style) tea.Cmd {
	m.message = text
	m.messageStyle = style
	m.messageExpiry = time.Now().Add(3 * time.Second)
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearMessageMsg{} })
}

func (m dashboardModel) selected() *domain.Asset {
	if m.cursor < 0 || m.cursor >= len(m.assets) {
		return nil
	}
	a := m.assets[m.cursor]
	return &a
}

func nextStatus(current string) string {
	for i, s := range statusCycle {
		if s == current {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return statusCycle[0]
}

// clampCursor keeps the cursor on the reloaded page
func (m *dashboardModel) clampCursor() {
	if m.cursor >= len(m.assets) {
		m.cursor = len(m.assets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustViewport()
	m.refreshPreview()
}

func (m *dashboardModel) refreshPreview() {
	a := m.selected()
	switch {
	case a == nil:
		m.preview.SetContent("")
	case m.rawView:
		data, err := yaml.Marshal(a)
		if err != nil {
			m.preview.SetContent(err.Error())
		} else {
			m.preview.SetContent(highlightYAML(string(data)))
		}
	default:
		m.preview.SetContent(assetPreview(a))
	}
	m.preview.GotoTop()
}

func (m *dashboardModel) listHeight() int {
	return max(m.height-10, 3)
}

func (m *dashboardModel) adjustViewport() {
	h := m.listHeight()
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "\n  Loading dashboard..."
	}
	switch m.mode {
	case modeHelp:
		return m.viewHelp()
	case modeConfirmDelete:
		return m.viewConfirm("Delete Asset?", "Press 'y' to confirm, 'n' or ESC to cancel", "")
	case modeReject:
		return m.viewConfirm("Reject Asset", "Enter to send, ESC to cancel", m.rejectInput.View())
	default:
		return m.viewList()
	}
}

func (m dashboardModel) viewList() string {
	listWidth := max(int(float64(m.width)*0.45), 30)
	previewWidth := m.width - listWidth - 2

	var s strings.Builder
	s.WriteString(m.renderHeader() + "\n")
	s.WriteString(m.renderSearchBar() + "\n\n")

	listLines := strings.Split(m.renderList(listWidth), "\n")
	var previewLines []string
	if previewWidth >= 30 {
		previewLines = strings.Split(m.renderPreview(previewWidth), "\n")
	}
	for i := 0; i < max(len(listLines), len(previewLines)); i++ {
		var l, p string
		if i < len(listLines) {
			l = listLines[i]
		}
		if i < len(previewLines) {
			p = previewLines[i]
		}
		s.WriteString(padRight(l, listWidth) + "  " + p + "\n")
	}

	s.WriteString("\n" + m.renderFooter())
	return s.String()
}

func (m dashboardModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Padding(0, 1)
	statsStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted).Align(lipgloss.Right)

	status := m.filter.Status
	if status == "" {
		status = "all"
	}
	role := "contributor"
	if m.isAdmin {
		role = "admin"
	}

	title := titleStyle.Render(ui.IconAsset + " Asset Library")
	stats := statsStyle.Render(fmt.Sprintf("%d assets  status: %s  %s", len(m.assets), status, role))
	spacer := max(m.width-lipgloss.Width(title)-lipgloss.Width(stats), 0)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", spacer), stats)
}

func (m dashboardModel) renderSearchBar() string {
	borderColor := ui.ColorMuted
	if m.mode == modeSearch {
		borderColor = ui.ColorPrimary
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(max(m.width-4, 10))

	content := "🔍 " + m.searchInput.View()
	if m.mode != modeSearch && m.searchInput.Value() == "" {
		content = ui.StyleMuted.Render("🔍 Press / to search...")
	}
	return style.Render(content)
}

func (m dashboardModel) renderList(width int) string {
	if len(m.assets) == 0 {
		empty := lipgloss.NewStyle().Foreground(ui.ColorMuted).Italic(true).Padding(2, 2).Width(width)
		if m.filter.Search != "" || m.filter.Status != "" {
			return empty.Render("No assets match the current filters.")
		}
		return empty.Render("No assets yet. Press n to create one.")
	}

	var s strings.Builder
	end := min(m.offset+m.listHeight(), len(m.assets))
	for i := m.offset; i < end; i++ {
		s.WriteString(m.renderItem(m.assets[i], i == m.cursor, width))
	}
	return s.String()
}

func (m dashboardModel) renderItem(a domain.Asset, selected bool, width int) string {
	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(ui.ColorDefault)
	if selected {
		cursor = ui.StylePrimary.Render("▶ ")
		nameStyle = ui.StylePrimary
	}
	nameWidth := max(width-18, 10)
	name := ui.Truncate(a.DisplayName(), nameWidth)
	status := statusBadge(a.SystemMeta.Status)
	return padRight(cursor+padRight(nameStyle.Render(name), nameWidth)+" "+status, width) + "\n"
}

func statusBadge(s domain.Status) string {
	switch s {
	case domain.StatusApproved:
		return ui.StyleSuccess.Render("approved")
	case domain.StatusUnderReview:
		return ui.StyleWarning.Render("review")
	case domain.StatusDeprecated:
		return ui.StyleMuted.Render("deprecated")
	default:
		return ui.StyleInfo.Render("draft")
	}
}

func (m dashboardModel) renderPreview(width int) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorMuted).
		Width(width - 2).
		Height(max(m.height-12, 6))

	if m.selected() == nil {
		return border.Render(ui.StyleSubtle.Render("No asset selected"))
	}
	hint := ui.StyleMuted.Render(fmt.Sprintf("PgUp/PgDn to scroll • v toggles YAML • %d%%", int(m.preview.ScrollPercent()*100)))
	return border.Render(hint + "\n" + m.preview.View())
}

func (m dashboardModel) renderFooter() string {
	status := ui.StyleMuted.Render("Ready")
	if m.message != "" && time.Now().Before(m.messageExpiry) {
		status = m.messageStyle.Render(m.message)
	}
	footer := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		Padding(0, 1)
	return footer.Render(lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys)))
}

func (m dashboardModel) viewHelp() string {
	var s strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary).Padding(1, 2)
	s.WriteString(titleStyle.Render("Asset Dashboard - Keyboard Shortcuts") + "\n")
	s.WriteString(m.help.FullHelpView(m.keys.FullHelp()) + "\n\n")
	s.WriteString(ui.StyleMuted.Render("  Press ESC or ? to return to dashboard") + "\n")
	return s.String()
}

func (m dashboardModel) viewConfirm(title, prompt, input string) string {
	if m.target == nil {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(70).
		Align(lipgloss.Center)

	content := ui.StyleWarning.Render("⚠  "+title) + "\n\n" +
		ui.StylePrimary.Render(m.target.DisplayName()) + "\n" +
		ui.StyleMuted.Render(m.target.ID) + "\n\n"
	if input != "" {
		content += input + "\n\n"
	}
	content += prompt

	rendered := box.Render(content)
	top := max((m.height-lipgloss.Height(rendered))/2, 0)
	return strings.Repeat("\n", top) + lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, rendered)
}

func padRight(s string, width int) string {
	realLen := lipgloss.Width(s)
	if realLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-realLen)
}
