package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kamal-hamza/alib-cli/internal/adapters/api"
	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/services"
	"github.com/kamal-hamza/alib-cli/pkg/ui"
)

// sectionEditor is the part of the edit service the wizard drives.
// SaveSection and UploadStaged run off the Update goroutine and get
// snapshots; the form itself is only changed in Update.
type sectionEditor interface {
	SaveSection(ctx context.Context, a *domain.Asset, section domain.Section) error
	UploadStaged(ctx context.Context, assetID string, staged []domain.StagedFile) (*services.UploadResponse, error)
	MarshalSection(form *domain.EditForm, section domain.Section) ([]byte, error)
	WriteSectionFile(form *domain.EditForm, section domain.Section) (string, error)
	ReadSectionFile(form *domain.EditForm, section domain.Section, path string) (bool, error)
}

// editorCommand builds the external editor process for a file
type editorCommand func(ctx context.Context, path string) (*exec.Cmd, error)

type editMode int

const (
	editModeSections editMode = iota
	editModeImages
	editModeStage
	editModeConfirmQuit
)

type editKeyMap struct {
	Edit    key.Binding
	Save    key.Binding
	Skip    key.Binding
	Prev    key.Binding
	Review  key.Binding
	Stage   key.Binding
	Upload  key.Binding
	Images  key.Binding
	Up      key.Binding
	Down    key.Binding
	Primary key.Binding
	Remove  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Save, k.Skip, k.Prev, k.Help, k.Quit}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Save, k.Skip, k.Prev, k.Review},
		{k.Stage, k.Upload, k.Images, k.Primary, k.Remove},
		{k.Up, k.Down, k.Help, k.Quit},
	}
}

var editKeys = editKeyMap{
	Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit in $EDITOR")),
	Save:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save & next")),
	Skip:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
	Prev:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
	Review:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "review")),
	Stage:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "stage file")),
	Upload:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload staged")),
	Images:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "images")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Primary: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "set primary")),
	Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type editorFinishedMsg struct {
	section domain.Section
	path    string
	err     error
}

type sectionSavedMsg struct {
	section domain.Section
	err     error
}

type uploadedMsg struct {
	resp *services.UploadResponse
	err  error
}

// editWizardModel walks the asset one section at a time
type editWizardModel struct {
	ctx    context.Context
	form   *domain.EditForm
	svc    sectionEditor
	editor editorCommand

	mode        editMode
	images      *domain.ImageSet
	imageCursor int
	stageInput  textinput.Model

	preview  viewport.Model
	spinner  spinner.Model
	busy     bool
	help     help.Model
	keys     editKeyMap
	showHelp bool

	message      string
	messageStyle lipgloss.Style
	width        int
	height       int
}

func newEditWizardModel(ctx context.Context, form *domain.EditForm, svc sectionEditor, editor editorCommand) editWizardModel {
	ti := textinput.New()
	ti.Placeholder = "image=./photo.jpg"
	ti.Width = 50

	m := editWizardModel{
		ctx:        ctx,
		form:       form,
		svc:        svc,
		editor:     editor,
		stageInput: ti,
		preview:    viewport.New(80, 20),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
		keys:       editKeys,
	}
	m.refreshPreview()
	return m
}

func (m editWizardModel) Init() tea.Cmd {
	return nil
}

func (m editWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.preview.Width = max(msg.Width-34, 20)
		m.preview.Height = max(msg.Height-8, 5)
		m.refreshPreview()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case editorFinishedMsg:
		if msg.err != nil {
			os.Remove(msg.path)
			m.setMessage("Editor failed: "+msg.err.Error(), ui.StyleError)
			return m, nil
		}
		changed, err := m.svc.ReadSectionFile(m.form, msg.section, msg.path)
		switch {
		case err != nil:
			if errs, ok := asValidation(err); ok {
				m.setMessage("Not applied: "+errs.Error(), ui.StyleError)
			} else {
				m.setMessage(err.Error(), ui.StyleError)
			}
		case changed:
			m.setMessage(msg.section.Title()+" changed; press s to save", ui.StyleInfo)
		default:
			m.setMessage("No changes", ui.StyleMuted)
		}
		m.refreshPreview()
		return m, nil

	case sectionSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.setMessage(api.UserMessage(msg.err), ui.StyleError)
			return m, nil
		}
		m.form.MarkSaved(msg.section)
		m.setMessage(msg.section.Title()+" saved", ui.StyleSuccess)
		m.refreshPreview()
		return m, nil

	case uploadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setMessage(api.UserMessage(msg.err), ui.StyleError)
			return m, nil
		}
		m.form.FinishUpload(msg.resp.Documentation, msg.resp.Failed)
		text := fmt.Sprintf("Uploaded %d file(s)", msg.resp.Uploaded)
		style := ui.StyleSuccess
		if len(msg.resp.Warnings) > 0 {
			text += "; " + strings.Join(msg.resp.Warnings, "; ")
			style = ui.StyleWarning
		}
		m.setMessage(text, style)
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case editModeStage:
			return m.updateStage(msg)
		case editModeImages:
			return m.updateImages(msg)
		case editModeConfirmQuit:
			if msg.String() == "y" || msg.String() == "q" {
				return m, tea.Quit
			}
			m.mode = editModeSections
			m.message = ""
			return m, nil
		}
		return m.updateSections(msg)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m editWizardModel) updateSections(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	section, onSection := m.form.Current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		if len(m.form.UnsavedSections()) > 0 || len(m.form.Staged) > 0 {
			m.mode = editModeConfirmQuit
			m.setMessage("Unsaved changes will be lost. Quit anyway? (y/n)", ui.StyleWarning)
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.form.Prev()
		m.message = ""
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.keys.Review):
		m.form.GoTo("")
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	if !onSection {
		if msg.Type == tea.KeyEnter {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Edit):
		return m, m.openEditor(section)

	case key.Matches(msg, m.keys.Save):
		m.busy = true
		m.setMessage("Saving "+section.Title()+"...", ui.StyleInfo)
		asset, svc, ctx := m.form.Asset, m.svc, m.ctx
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return sectionSavedMsg{section: section, err: svc.SaveSection(ctx, &asset, section)}
		})

	case key.Matches(msg, m.keys.Skip):
		m.form.Skip()
		m.message = ""
		m.refreshPreview()
		return m, nil
	}

	if section != domain.SectionDocumentationUploads {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Stage):
		m.mode = editModeStage
		m.stageInput.SetValue("")
		return m, m.stageInput.Focus()

	case key.Matches(msg, m.keys.Upload):
		if len(m.form.Staged) == 0 {
			m.setMessage("Nothing staged; press f to add a file", ui.StyleWarning)
			return m, nil
		}
		m.busy = true
		m.setMessage(fmt.Sprintf("Uploading %d file(s)...", len(m.form.Staged)), ui.StyleInfo)
		id, staged, svc, ctx := m.form.Asset.ID, slices.Clone(m.form.Staged), m.svc, m.ctx
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			resp, err := svc.UploadStaged(ctx, id, staged)
			return uploadedMsg{resp: resp, err: err}
		})

	case key.Matches(msg, m.keys.Images):
		m.images = m.form.Images()
		if m.images.Len() == 0 {
			m.setMessage("No images yet", ui.StyleMuted)
			return m, nil
		}
		m.mode = editModeImages
		m.imageCursor = 0
		return m, nil
	}
	return m, nil
}

func (m editWizardModel) updateStage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = editModeSections
		m.stageInput.Blur()
		return m, nil
	case tea.KeyEnter:
		files, err := parseStagedArgs([]string{m.stageInput.Value()})
		if err != nil {
			m.setMessage(err.Error(), ui.StyleError)
			return m, nil
		}
		m.form.StageFiles(files...)
		m.mode = editModeSections
		m.stageInput.Blur()
		m.setMessage("Staged "+files[0].Filename()+"; press u to upload", ui.StyleSuccess)
		m.refreshPreview()
		return m, nil
	}
	var cmd tea.Cmd
	m.stageInput, cmd = m.stageInput.Update(msg)
	return m, cmd
}

func (m editWizardModel) updateImages(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.String() == "i":
		m.mode = editModeSections
		m.refreshPreview()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.imageCursor > 0 {
			m.imageCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.imageCursor < m.images.Len()-1 {
			m.imageCursor++
		}
	case key.Matches(msg, m.keys.Primary):
		if err := m.images.SetPrimary(m.imageCursor); err != nil {
			m.setMessage(err.Error(), ui.StyleError)
			return m, nil
		}
		m.form.ApplyImages(m.images)
		m.setMessage(m.images.Label(m.imageCursor)+" is now primary", ui.StyleSuccess)
	case key.Matches(msg, m.keys.Remove):
		label := m.images.Label(m.imageCursor)
		if err := m.images.Remove(m.imageCursor); err != nil {
			m.setMessage(err.Error(), ui.StyleError)
			return m, nil
		}
		m.form.ApplyImages(m.images)
		if m.imageCursor >= m.images.Len() && m.imageCursor > 0 {
			m.imageCursor--
		}
		m.setMessage("Removed "+label, ui.StyleSuccess)
		if m.images.Len() == 0 {
			m.mode = editModeSections
			m.refreshPreview()
		}
	}
	return m, nil
}

// openEditor suspends the UI and hands the section file to $EDITOR
func (m editWizardModel) openEditor(section domain.Section) tea.Cmd {
	path, err := m.svc.WriteSectionFile(m.form, section)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{section: section, err: err} }
	}
	c, err := m.editor(m.ctx, path)
	if err != nil {
		return func() tea.Msg { return editorFinishedMsg{section: section, path: path, err: err} }
	}
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{section: section, path: path, err: err}
	})
}

func (m *editWizardModel) refreshPreview() {
	var content string
	if section, ok := m.form.Current(); ok {
		data, err := m.svc.MarshalSection(m.form, section)
		if err != nil {
			content = ui.StyleError.Render(err.Error())
		} else {
			content = highlightYAML(string(data))
		}
		if section == domain.SectionDocumentationUploads && len(m.form.Staged) > 0 {
			content += "\n# staged, not yet uploaded:\n"
			for _, f := range m.form.Staged {
				content += fmt.Sprintf("#   %s [%s]\n", f.Path, f.DocType)
			}
		}
	} else {
		content = m.renderReview()
	}
	m.preview.SetContent(content)
	m.preview.GotoTop()
}

func (m editWizardModel) renderReview() string {
	var s strings.Builder
	s.WriteString(ui.StyleHeader.Render("Review") + "\n\n")

	unsaved := m.form.UnsavedSections()
	if len(unsaved) == 0 {
		s.WriteString(ui.FormatSuccess("Every change is saved") + "\n")
	} else {
		s.WriteString(ui.StyleWarning.Render("Unsaved sections:") + "\n")
		for _, sec := range unsaved {
			s.WriteString("  • " + sec.Title() + "\n")
		}
		s.WriteString(ui.StyleMuted.Render("Press b to go back and save them.") + "\n")
	}
	if n := len(m.form.Staged); n > 0 {
		s.WriteString("\n" + ui.StyleWarning.Render(fmt.Sprintf("%d file(s) staged but not uploaded", n)) + "\n")
	}
	s.WriteString("\n" + ui.StyleMuted.Render("enter to finish") + "\n")
	return s.String()
}

func (m *editWizardModel) setMessage(text string, style lipgloss.Style) {
	m.message = text
	m.messageStyle = style
}

func (m editWizardModel) View() string {
	var s strings.Builder
	s.WriteString(ui.StyleTitle.Render("Edit: "+m.form.Asset.DisplayName()) + "\n\n")

	left := m.renderSectionList()
	var right string
	switch m.mode {
	case editModeImages:
		right = m.renderImages()
	case editModeStage:
		right = ui.StyleHeader.Render("Stage a file ([doc_type=]path)") + "\n" + m.stageInput.View() + "\n" +
			ui.StyleMuted.Render("types: "+strings.Join(domain.ValidDocTypes(), ", "))
	default:
		right = m.preview.View()
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(32).Render(left),
		right,
	))
	s.WriteString("\n")

	if m.busy {
		s.WriteString(m.spinner.View() + " ")
	}
	if m.message != "" {
		s.WriteString(m.messageStyle.Render(m.message))
	}
	s.WriteString("\n")
	if m.showHelp {
		s.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		s.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return s.String()
}

func (m editWizardModel) renderSectionList() string {
	var s strings.Builder
	for i, sec := range domain.EditSections() {
		marker := "  "
		switch {
		case m.form.Saved[sec]:
			marker = ui.StyleSuccess.Render("✔ ")
		case m.form.Edited[sec]:
			marker = ui.StyleWarning.Render("● ")
		case m.form.Skipped[sec]:
			marker = ui.StyleMuted.Render("» ")
		}
		label := fmt.Sprintf("%2d %s", i+1, sec.Title())
		if i == m.form.Index {
			label = ui.StylePrimary.Render(label)
		}
		s.WriteString(marker + label + "\n")
	}
	review := "   Review"
	if m.form.AtReview() {
		review = ui.StylePrimary.Render(review)
	}
	s.WriteString("  " + review + "\n")
	return s.String()
}

func (m editWizardModel) renderImages() string {
	var s strings.Builder
	s.WriteString(ui.StyleHeader.Render("Images") + "\n")
	primary := m.images.PrimaryIndex()
	for i := 0; i < m.images.Len(); i++ {
		cursor := "  "
		if i == m.imageCursor {
			cursor = ui.StylePrimary.Render("› ")
		}
		line := cursor + m.images.Label(i)
		if i == primary {
			line += ui.StyleSelected.Render(" ★ primary")
		}
		s.WriteString(line + "\n")
	}
	s.WriteString("\n" + ui.StyleMuted.Render("p primary • x remove • i/esc back; save the section to persist") + "\n")
	return s.String()
}
