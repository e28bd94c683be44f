package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kamal-hamza/alib-cli/internal/adapters/repository"
	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// Step 1 focus targets
const (
	focusType = iota
	focusName
	focusDescription
	focusCategories
	focusTags
	focusVersion
	basicFocusCount
)

// Step 3 focus targets
const (
	focusFileInput = iota
	focusFileList
	focusBIMInput
	focusWebsite
	docsFocusCount
)

var supplierLabels = []string{"Name", "Organization", "Email", "Phone", "Website", "Country"}

type wizardKeyMap struct {
	Next     key.Binding
	Back     key.Binding
	NextItem key.Binding
	PrevItem key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Remove   key.Binding
	Primary  key.Binding
	Create   key.Binding
	Extract  key.Binding
	Quit     key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextItem, k.Next, k.Back, k.Quit}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextItem, k.PrevItem, k.Up, k.Down},
		{k.Toggle, k.Remove, k.Primary},
		{k.Next, k.Back, k.Create, k.Extract, k.Quit},
	}
}

var wizardKeys = wizardKeyMap{
	Next:     key.NewBinding(key.WithKeys("ctrl+n", "pgdown"), key.WithHelp("ctrl+n", "next step")),
	Back:     key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl+b", "previous step")),
	NextItem: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevItem: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove file")),
	Primary:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "primary image")),
	Create:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "create asset")),
	Extract:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "create + AI extract")),
	Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit (draft kept)")),
}

// createFunc finalizes a draft; injected so the model can be tested
type createFunc func(ctx context.Context, draft *domain.CreateDraft, extract bool) (*services.CreateAssetResponse, error)

type createdMsg struct {
	resp *services.CreateAssetResponse
	err  error
}

type draftChangedMsg struct {
	change repository.DraftChange
}

type catRow struct {
	primary string
	sub     string
}

// createWizardModel is the interactive four-step create form
type createWizardModel struct {
	ctx       context.Context
	wizard    *domain.CreateWizard
	taxonomy  domain.Taxonomy
	selection *domain.Selection
	typeIndex int

	focus      int
	basic      []textinput.Model // name, description, tags, version
	supplier   []textinput.Model
	fileInput  textinput.Model
	bimInput   textinput.Model
	siteInput  textinput.Model
	catCursor  int
	fileCursor int

	spinner      spinner.Model
	busy         bool
	help         help.Model
	keys         wizardKeyMap
	message      string
	messageStyle lipgloss.Style
	external     bool

	save   func(*domain.CreateDraft) error
	create createFunc
	result *services.CreateAssetResponse
	width  int
}

func newCreateWizardModel(ctx context.Context, draft *domain.CreateDraft, taxonomy domain.Taxonomy, minCategories, maxCategories int, save func(*domain.CreateDraft) error, create createFunc) createWizardModel {
	w := domain.NewCreateWizard(draft, maxCategories)
	d := w.Draft

	newInput := func(placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 500
		ti.Width = 60
		ti.SetValue(value)
		return ti
	}

	m := createWizardModel{
		ctx:       ctx,
		wizard:    w,
		taxonomy:  taxonomy,
		selection: domain.NewSelection(minCategories, w.MaxCategories, d.BasicInformation.Categories),
		typeIndex: -1,
		basic: []textinput.Model{
			newInput("Solar water pump", d.BasicInformation.Name),
			newInput("One line summary", d.BasicInformation.ShortDescription),
			newInput("comma, separated, tags", strings.Join(d.BasicInformation.Tags, ", ")),
			newInput("1.0", d.BasicInformation.Version),
		},
		supplier: []textinput.Model{
			newInput("Contact name", d.Contributor.Name),
			newInput("Company or group", d.Contributor.Organization),
			newInput("contact@example.org", d.Contributor.Email),
			newInput("+1 555 0100", d.Contributor.Phone),
			newInput("https://", d.Contributor.Website),
			newInput("Country", d.Contributor.Country),
		},
		fileInput: newInput("datasheet=./pump-datasheet.pdf", ""),
		bimInput:  newInput("Label=https://bim.example/model.ifc", ""),
		siteInput: newInput("https://maker.example (used by AI extraction)", d.WebsiteURL),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      help.New(),
		keys:      wizardKeys,
		save:      save,
		create:    create,
	}
	for i, t := range domain.ValidAssetTypes() {
		if t == d.BasicInformation.AssetType {
			m.typeIndex = i
		}
	}
	m.applyFocus()
	return m
}

func (m createWizardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m createWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case createdMsg:
		m.busy = false
		if msg.err != nil {
			if errs, ok := asValidation(msg.err); ok {
				m.setMessage("Fix these fields first: "+strings.Join(errs.Fields(), ", "), ui.StyleError)
			} else {
				m.setMessage(msg.err.Error(), ui.StyleError)
			}
			return m, nil
		}
		m.result = msg.resp
		return m, tea.Quit

	case draftChangedMsg:
		m.external = true
		if msg.change.Removed {
			m.setMessage("The draft file was removed by another process; your next change recreates it", ui.StyleWarning)
		} else {
			m.setMessage("The draft was changed by another process; your next change overwrites it", ui.StyleWarning)
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.nextStep()
		case key.Matches(msg, m.keys.Back):
			m.wizard.Back()
			m.focus = 0
			m.applyFocus()
			m.persist()
			return m, nil
		case key.Matches(msg, m.keys.NextItem):
			m.moveFocus(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevItem):
			m.moveFocus(-1)
			return m, nil
		}

		switch m.wizard.Step() {
		case domain.StepBasicInfo:
			return m.updateBasic(msg)
		case domain.StepSupplierInfo:
			return m.updateSupplier(msg)
		case domain.StepDocumentation:
			return m.updateDocs(msg)
		case domain.StepReview:
			return m.updateReview(msg)
		}
	}
	return m, nil
}

func (m createWizardModel) nextStep() (tea.Model, tea.Cmd) {
	m.sync()
	if err := m.wizard.Next(); err != nil {
		if errs, ok := asValidation(err); ok {
			m.setMessage(fmt.Sprintf("%d field(s) need attention", len(errs)), ui.StyleError)
		}
		return m, nil
	}
	m.message = ""
	m.focus = 0
	m.applyFocus()
	m.persist()
	return m, nil
}

func (m createWizardModel) updateBasic(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusType:
		types := domain.ValidAssetTypes()
		switch msg.String() {
		case "left", "h":
			if m.typeIndex <= 0 {
				m.typeIndex = len(types) - 1
			} else {
				m.typeIndex--
			}
		case "right", "l", " ":
			m.typeIndex = (m.typeIndex + 1) % len(types)
		default:
			return m, nil
		}
		m.wizard.Touch("asset_type")
		m.persist()
		return m, nil

	case focusCategories:
		rows := m.categoryRows()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.catCursor > 0 {
				m.catCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.catCursor < len(rows)-1 {
				m.catCursor++
			}
		case key.Matches(msg, m.keys.Toggle), msg.Type == tea.KeyEnter:
			if len(rows) == 0 {
				return m, nil
			}
			row := rows[m.catCursor]
			var err error
			if row.sub == "" {
				err = m.selection.TogglePrimary(row.primary)
			} else {
				err = m.selection.ToggleSubcategory(row.primary, row.sub)
			}
			m.wizard.Touch("categories")
			if err != nil {
				m.setMessage(err.Error(), ui.StyleWarning)
				return m, nil
			}
			if n := len(m.categoryRows()); m.catCursor >= n {
				m.catCursor = n - 1
			}
			m.persist()
		}
		return m, nil
	}

	idx := map[int]int{focusName: 0, focusDescription: 1, focusTags: 2, focusVersion: 3}[m.focus]
	var cmd tea.Cmd
	m.basic[idx], cmd = m.basic[idx].Update(msg)
	m.persist()
	return m, cmd
}

func (m createWizardModel) updateSupplier(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down), msg.Type == tea.KeyEnter:
		m.moveFocus(1)
		return m, nil
	}
	var cmd tea.Cmd
	m.supplier[m.focus], cmd = m.supplier[m.focus].Update(msg)
	m.persist()
	return m, cmd
}

func (m createWizardModel) updateDocs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusFileInput:
		if msg.Type == tea.KeyEnter {
			m.addFile(m.fileInput.Value())
			return m, nil
		}
		m.fileInput, cmd = m.fileInput.Update(msg)
		return m, cmd

	case focusFileList:
		files := m.wizard.Draft.Files
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.fileCursor > 0 {
				m.fileCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.fileCursor < len(files)-1 {
				m.fileCursor++
			}
		case key.Matches(msg, m.keys.Remove):
			if len(files) > 0 {
				m.removeFile(m.fileCursor)
			}
		case key.Matches(msg, m.keys.Primary):
			if len(files) > 0 {
				m.markPrimary(m.fileCursor)
			}
		}
		return m, nil

	case focusBIMInput:
		if msg.Type == tea.KeyEnter {
			m.addBIMLink(m.bimInput.Value())
			return m, nil
		}
		m.bimInput, cmd = m.bimInput.Update(msg)
		return m, cmd

	case focusWebsite:
		m.siteInput, cmd = m.siteInput.Update(msg)
		m.persist()
		return m, cmd
	}
	return m, nil
}

func (m createWizardModel) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Create):
		return m.finalize(false)
	case key.Matches(msg, m.keys.Extract):
		if len(m.wizard.Draft.ExtractionSources()) == 0 {
			m.setMessage("Add files or a website URL before running AI extraction", ui.StyleWarning)
			return m, nil
		}
		return m.finalize(true)
	}
	return m, nil
}

func (m createWizardModel) finalize(extract bool) (tea.Model, tea.Cmd) {
	if m.create == nil {
		return m, nil
	}
	m.sync()
	m.busy = true
	if extract {
		m.setMessage("Creating asset and running AI extraction...", ui.StyleInfo)
	} else {
		m.setMessage("Creating asset...", ui.StyleInfo)
	}
	draft := *m.wizard.Draft
	create, ctx := m.create, m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp, err := create(ctx, &draft, extract)
		return createdMsg{resp: resp, err: err}
	})
}

// sync copies every input into the draft
func (m *createWizardModel) sync() {
	d := m.wizard.Draft
	types := domain.ValidAssetTypes()
	if m.typeIndex >= 0 && m.typeIndex < len(types) {
		d.BasicInformation.AssetType = types[m.typeIndex]
	} else {
		d.BasicInformation.AssetType = ""
	}
	d.BasicInformation.Name = m.basic[0].Value()
	d.BasicInformation.ShortDescription = strings.TrimSpace(m.basic[1].Value())
	d.BasicInformation.Tags = splitList(m.basic[2].Value())
	d.BasicInformation.Version = strings.TrimSpace(m.basic[3].Value())
	d.BasicInformation.Categories = m.selection.Values()

	c := &d.Contributor
	for i, field := range []*string{&c.Name, &c.Organization, &c.Email, &c.Phone, &c.Website, &c.Country} {
		*field = strings.TrimSpace(m.supplier[i].Value())
	}
	d.WebsiteURL = strings.TrimSpace(m.siteInput.Value())
}

// persist mirrors the form into the draft buffer
func (m *createWizardModel) persist() {
	m.sync()
	if m.save == nil {
		return
	}
	if err := m.save(m.wizard.Draft); err != nil {
		m.setMessage("Draft not saved: "+err.Error(), ui.StyleError)
	}
}

func (m *createWizardModel) addFile(raw string) {
	f, err := domain.ParseStagedFlag(raw)
	if err != nil {
		m.setMessage(err.Error(), ui.StyleError)
		return
	}
	if info, err := os.Stat(f.Path); err != nil || info.IsDir() {
		m.setMessage("Not a readable file: "+f.Path, ui.StyleError)
		return
	}
	m.wizard.Draft.Files = append(m.wizard.Draft.Files, f)
	m.fileInput.SetValue("")
	m.setMessage("Staged "+f.Filename()+" as "+f.DocType, ui.StyleSuccess)
	m.persist()
}

func (m *createWizardModel) removeFile(i int) {
	if err := m.wizard.Draft.RemoveFile(i); err != nil {
		m.setMessage(err.Error(), ui.StyleError)
		return
	}
	if m.fileCursor >= len(m.wizard.Draft.Files) && m.fileCursor > 0 {
		m.fileCursor--
	}
	m.persist()
}

// markPrimary makes the image at i the only primary staged image
func (m *createWizardModel) markPrimary(i int) {
	if err := m.wizard.Draft.SetPrimaryFile(i); err != nil {
		if errors.Is(err, domain.ErrNotAnImage) {
			m.setMessage("Only images can be primary", ui.StyleWarning)
		} else {
			m.setMessage(err.Error(), ui.StyleError)
		}
		return
	}
	m.persist()
}

func (m *createWizardModel) addBIMLink(raw string) {
	label, url, found := strings.Cut(raw, "=")
	link := domain.BIMLink{Label: strings.TrimSpace(label), URL: strings.TrimSpace(url)}
	if !found {
		m.setMessage("Use Label=https://...", ui.StyleError)
		return
	}
	if err := link.Validate(); err != nil {
		m.setMessage(err.Error(), ui.StyleError)
		return
	}
	m.wizard.Draft.BIMLinks = append(m.wizard.Draft.BIMLinks, link)
	m.bimInput.SetValue("")
	m.persist()
}

func (m createWizardModel) categoryRows() []catRow {
	var rows []catRow
	for _, c := range m.taxonomy {
		rows = append(rows, catRow{primary: c.Name})
		if m.selection.IsSelected(c.Name) {
			for _, sub := range c.Subcategories {
				rows = append(rows, catRow{primary: c.Name, sub: sub})
			}
		}
	}
	return rows
}

func (m *createWizardModel) focusCount() int {
	switch m.wizard.Step() {
	case domain.StepBasicInfo:
		return basicFocusCount
	case domain.StepSupplierInfo:
		return len(m.supplier)
	case domain.StepDocumentation:
		return docsFocusCount
	}
	return 1
}

// moveFocus cycles focus; leaving the name input marks it touched
func (m *createWizardModel) moveFocus(delta int) {
	if m.wizard.Step() == domain.StepBasicInfo && m.focus == focusName {
		m.wizard.Touch("name")
	}
	n := m.focusCount()
	m.focus = (m.focus + delta + n) % n
	m.applyFocus()
}

// applyFocus focuses the text input under the cursor and blurs the rest
func (m *createWizardModel) applyFocus() {
	blur := func(inputs []textinput.Model) {
		for i := range inputs {
			inputs[i].Blur()
		}
	}
	blur(m.basic)
	blur(m.supplier)
	m.fileInput.Blur()
	m.bimInput.Blur()
	m.siteInput.Blur()

	switch m.wizard.Step() {
	case domain.StepBasicInfo:
		switch m.focus {
		case focusName:
			m.basic[0].Focus()
		case focusDescription:
			m.basic[1].Focus()
		case focusTags:
			m.basic[2].Focus()
		case focusVersion:
			m.basic[3].Focus()
		}
	case domain.StepSupplierInfo:
		m.supplier[m.focus].Focus()
	case domain.StepDocumentation:
		switch m.focus {
		case focusFileInput:
			m.fileInput.Focus()
		case focusBIMInput:
			m.bimInput.Focus()
		case focusWebsite:
			m.siteInput.Focus()
		}
	}
}

func (m *createWizardModel) setMessage(text string, style lipgloss.Style) {
	m.message = text
	m.messageStyle = style
}

func (m createWizardModel) View() string {
	if m.result != nil {
		return ""
	}
	var s strings.Builder
	s.WriteString(m.renderSteps() + "\n\n")

	switch m.wizard.Step() {
	case domain.StepBasicInfo:
		s.WriteString(m.viewBasic())
	case domain.StepSupplierInfo:
		s.WriteString(m.viewSupplier())
	case domain.StepDocumentation:
		s.WriteString(m.viewDocs())
	case domain.StepReview:
		s.WriteString(m.viewReview())
	}

	s.WriteString("\n")
	if m.busy {
		s.WriteString(m.spinner.View() + " ")
	}
	if m.message != "" {
		s.WriteString(m.messageStyle.Render(m.message))
	}
	s.WriteString("\n\n" + m.help.View(m.keys) + "\n")
	return s.String()
}

func (m createWizardModel) renderSteps() string {
	var parts []string
	for i := 0; i < domain.CreateStepCount; i++ {
		step := domain.CreateStep(i)
		label := fmt.Sprintf("%d. %s", i+1, step.Title())
		switch {
		case step == m.wizard.Step():
			parts = append(parts, ui.StylePrimary.Render(label))
		case step < m.wizard.Step():
			parts = append(parts, ui.StyleSuccess.Render(label))
		default:
			parts = append(parts, ui.StyleMuted.Render(label))
		}
	}
	return ui.StyleTitle.Render(ui.IconAsset+" New Asset") + "\n" + strings.Join(parts, ui.StyleMuted.Render("  →  "))
}

func (m createWizardModel) fieldLabel(text string, focused bool) string {
	if focused {
		return ui.StylePrimary.Render("▶ " + text)
	}
	return "  " + ui.StyleBold.Render(text)
}

func (m createWizardModel) fieldError(errs domain.ValidationErrors, field string) string {
	if msg, ok := errs[field]; ok {
		return "    " + ui.StyleFieldError.Render(msg) + "\n"
	}
	return ""
}

func (m createWizardModel) viewBasic() string {
	var s strings.Builder
	errs := m.wizard.VisibleErrors()

	s.WriteString(m.fieldLabel("Asset type", m.focus == focusType) + "  ")
	for i, t := range domain.ValidAssetTypes() {
		if i == m.typeIndex {
			s.WriteString(ui.StyleSelected.Render("["+string(t)+"]") + " ")
		} else {
			s.WriteString(ui.StyleMuted.Render(" "+string(t)+" ") + " ")
		}
	}
	s.WriteString("\n" + m.fieldError(errs, "asset_type"))

	s.WriteString(m.fieldLabel("Name", m.focus == focusName) + "\n    " + m.basic[0].View() + "\n")
	s.WriteString(m.fieldError(errs, "name"))
	s.WriteString(m.fieldLabel("Short description", m.focus == focusDescription) + "\n    " + m.basic[1].View() + "\n")

	s.WriteString(m.fieldLabel(fmt.Sprintf("Categories (%d/%d)", m.selection.Count(), m.selection.Max), m.focus == focusCategories) + "\n")
	s.WriteString(m.viewCategories())
	if w := m.selection.Warning(); w != "" && m.wizard.Touched["categories"] {
		s.WriteString("    " + ui.StyleWarning.Render(w) + "\n")
	} else {
		s.WriteString(m.fieldError(errs, "categories"))
	}

	s.WriteString(m.fieldLabel("Tags", m.focus == focusTags) + "\n    " + m.basic[2].View() + "\n")
	s.WriteString(m.fieldLabel("Version", m.focus == focusVersion) + "\n    " + m.basic[3].View() + "\n")
	return s.String()
}

func (m createWizardModel) viewCategories() string {
	rows := m.categoryRows()
	if len(rows) == 0 {
		return "    " + ui.StyleMuted.Render("no categories available") + "\n"
	}

	// Keep the list short unless the field is focused
	start, end := 0, len(rows)
	window := 8
	if m.focus != focusCategories {
		window = 0
	}
	if window > 0 && len(rows) > window {
		start = m.catCursor - window/2
		if start < 0 {
			start = 0
		}
		end = start + window
		if end > len(rows) {
			end = len(rows)
			start = end - window
		}
	}

	var s strings.Builder
	if window == 0 {
		names := make([]string, 0, m.selection.Count())
		for _, e := range m.selection.Values() {
			label := e.Primary
			if len(e.Subcategories) > 0 {
				label += " (" + strings.Join(e.Subcategories, ", ") + ")"
			}
			names = append(names, label)
		}
		if len(names) == 0 {
			return "    " + ui.StyleMuted.Render("none selected") + "\n"
		}
		return "    " + strings.Join(names, ", ") + "\n"
	}

	for i := start; i < end; i++ {
		row := rows[i]
		cursor := "  "
		if i == m.catCursor {
			cursor = ui.StylePrimary.Render("› ")
		}
		if row.sub == "" {
			box := "[ ]"
			if m.selection.IsSelected(row.primary) {
				box = ui.StyleSelected.Render("[x]")
			}
			s.WriteString(fmt.Sprintf("    %s%s %s\n", cursor, box, row.primary))
			continue
		}
		box := "( )"
		for _, e := range m.selection.Entries {
			if strings.EqualFold(e.Primary, row.primary) {
				for _, sub := range e.Subcategories {
					if strings.EqualFold(sub, row.sub) {
						box = ui.StyleSelected.Render("(•)")
					}
				}
			}
		}
		s.WriteString(fmt.Sprintf("    %s    %s %s\n", cursor, box, ui.StyleMuted.Render(row.sub)))
	}
	return s.String()
}

func (m createWizardModel) viewSupplier() string {
	var s strings.Builder
	s.WriteString(ui.StyleMuted.Render("All supplier fields are optional.") + "\n\n")
	for i, label := range supplierLabels {
		s.WriteString(m.fieldLabel(label, m.focus == i) + "\n    " + m.supplier[i].View() + "\n")
	}
	return s.String()
}

func (m createWizardModel) viewDocs() string {
	var s strings.Builder
	d := m.wizard.Draft

	s.WriteString(m.fieldLabel("Add file (doc_type=path, enter to stage)", m.focus == focusFileInput) + "\n    " + m.fileInput.View() + "\n")
	s.WriteString(ui.StyleMuted.Render("    types: "+strings.Join(domain.ValidDocTypes(), ", ")) + "\n")

	s.WriteString(m.fieldLabel(fmt.Sprintf("Staged files (%d)", len(d.Files)), m.focus == focusFileList) + "\n")
	if len(d.Files) == 0 {
		s.WriteString("    " + ui.StyleMuted.Render("none") + "\n")
	}
	for i, f := range d.Files {
		cursor := "  "
		if m.focus == focusFileList && i == m.fileCursor {
			cursor = ui.StylePrimary.Render("› ")
		}
		line := fmt.Sprintf("    %s%s %s", cursor, f.Filename(), ui.StyleMuted.Render("["+f.DocType+"]"))
		if f.IsPrimary {
			line += ui.StyleSelected.Render(" ★")
		}
		s.WriteString(line + "\n")
	}

	s.WriteString(m.fieldLabel(fmt.Sprintf("BIM links (%d)", len(d.BIMLinks)), m.focus == focusBIMInput) + "\n    " + m.bimInput.View() + "\n")
	for _, l := range d.BIMLinks {
		s.WriteString("    🔗 " + l.Label + " " + ui.StyleMuted.Render(l.URL) + "\n")
	}

	s.WriteString(m.fieldLabel("Website", m.focus == focusWebsite) + "\n    " + m.siteInput.View() + "\n")
	return s.String()
}

func (m createWizardModel) viewReview() string {
	var s strings.Builder
	s.WriteString(renderDraftSummary(m.wizard.Draft))
	s.WriteString("\n")
	s.WriteString(ui.StyleBold.Render("s") + " create asset   ")
	if len(m.wizard.Draft.ExtractionSources()) > 0 {
		s.WriteString(ui.StyleBold.Render("a") + " create and extract with AI " + ui.IconSpark)
	} else {
		s.WriteString(ui.StyleMuted.Render("a create and extract with AI (needs files or a website)"))
	}
	s.WriteString("\n")
	return s.String()
}

// renderDraftSummary renders a draft for the review step and 'alib draft show'
func renderDraftSummary(d *domain.CreateDraft) string {
	var s strings.Builder
	b := d.BasicInformation
	s.WriteString(ui.StyleHeader.Render("Basic Information") + "\n")
	s.WriteString(ui.RenderKeyValue("Type", orDash(string(b.AssetType))) + "\n")
	s.WriteString(ui.RenderKeyValue("Name", orDash(b.Name)) + "\n")
	if b.ShortDescription != "" {
		s.WriteString(ui.RenderKeyValue("Description", b.ShortDescription) + "\n")
	}
	cats := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		label := c.Primary
		if len(c.Subcategories) > 0 {
			label += " (" + strings.Join(c.Subcategories, ", ") + ")"
		}
		cats = append(cats, label)
	}
	s.WriteString(ui.RenderKeyValue("Categories", orDash(strings.Join(cats, "; "))) + "\n")
	if len(b.Tags) > 0 {
		s.WriteString(ui.RenderKeyValue("Tags", strings.Join(b.Tags, ", ")) + "\n")
	}

	c := d.Contributor
	if c.Name != "" || c.Organization != "" || c.Email != "" {
		s.WriteString("\n" + ui.StyleHeader.Render("Supplier") + "\n")
		s.WriteString(ui.RenderKeyValue("Contact", orDash(strings.TrimSpace(c.Name+" "+c.Email))) + "\n")
		if c.Organization != "" {
			s.WriteString(ui.RenderKeyValue("Organization", c.Organization) + "\n")
		}
	}

	s.WriteString("\n" + ui.StyleHeader.Render("Documentation") + "\n")
	groups := domain.GroupByDocType(d.Files)
	if len(groups) == 0 {
		s.WriteString(ui.StyleMuted.Render("  no files staged") + "\n")
	}
	for _, g := range groups {
		names := make([]string, len(g.Files))
		for i, f := range g.Files {
			names[i] = f.Filename()
		}
		s.WriteString(fmt.Sprintf("  %s %s: %s\n", ui.IconUpload, g.DocType, strings.Join(names, ", ")))
	}
	for _, l := range d.BIMLinks {
		s.WriteString("  🔗 " + l.Label + " " + ui.StyleMuted.Render(l.URL) + "\n")
	}
	if d.WebsiteURL != "" {
		s.WriteString(ui.RenderKeyValue("Website", d.WebsiteURL) + "\n")
	}

	if errs := domain.ValidateBasicInfo(b, 0); !errs.Empty() {
		s.WriteString("\n" + ui.StyleWarning.Render("Incomplete:") + "\n")
		for _, f := range errs.Fields() {
			s.WriteString("  " + ui.StyleFieldError.Render(errs[f]) + "\n")
		}
	}
	return s.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
