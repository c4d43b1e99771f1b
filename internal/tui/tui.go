// Package tui is the terminal front end for browsing and creating check templates.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tormodhaugland/ct/internal/log"
	"github.com/tormodhaugland/ct/internal/template"
	"github.com/tormodhaugland/ct/internal/workflow"
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	paneStyle         = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(1)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	toastStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	promptLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	promptErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type templateItem struct {
	tmpl template.Template
}

func (i templateItem) Title() string { return i.tmpl.Title }
func (i templateItem) Description() string {
	return fmt.Sprintf("%s • %s", i.tmpl.ID, i.tmpl.Protocol)
}
func (i templateItem) FilterValue() string { return i.tmpl.ID + " " + i.tmpl.Title }

type keyMap struct {
	Create key.Binding
	Open   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Create: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new template")),
	Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type screen int

const (
	screenTable screen = iota
	screenDetail
)

// Model is the root bubbletea model. Whether the creator is open is read from
// the controller's state rather than tracked here.
type Model struct {
	ctrl     *workflow.Controller
	list     list.Model
	creator  creatorForm
	screen   screen
	detailID string
	width    int
	height   int
	message  string
}

// New builds the root model over ctrl.
func New(ctrl *workflow.Controller) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("212"))

	l := list.New(templateItems(ctrl.ListTemplates()), delegate, 60, 20)
	l.Title = "Check Templates"
	l.Styles.Title = headerStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{
		ctrl: ctrl,
		list: l,
	}
}

func templateItems(templates []template.Template) []list.Item {
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = templateItem{tmpl: t}
	}
	return items
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.list.SetSize(size.Width-4, size.Height-6)
		return m, nil
	}

	if m.ctrl.State() == workflow.Creating {
		return m.updateCreator(msg)
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		m.message = ""
	}

	if m.screen == screenDetail {
		if isKey {
			switch {
			case key.Matches(keyMsg, keys.Quit):
				return m, tea.Quit
			case key.Matches(keyMsg, keys.Back):
				m.screen = screenTable
				m.detailID = ""
			}
		}
		return m, nil
	}

	if isKey && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, keys.Quit):
			return m, tea.Quit

		case key.Matches(keyMsg, keys.Create):
			return m.beginCreate()

		case key.Matches(keyMsg, keys.Open):
			if item, ok := m.list.SelectedItem().(templateItem); ok {
				m.screen = screenDetail
				m.detailID = item.tmpl.ID
				log.Debug(log.CatUI, "opened detail", "id", item.tmpl.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) beginCreate() (tea.Model, tea.Cmd) {
	if err := m.ctrl.BeginCreate(); err != nil {
		m.message = promptErrorStyle.Render(err.Error())
		return m, nil
	}
	m.creator = newCreatorForm()
	return m, textinput.Blink
}

func (m Model) updateCreator(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, action, cmd := m.creator.update(msg)
	m.creator = form

	switch action {
	case creatorCancel:
		if err := m.ctrl.CancelCreate(); err != nil {
			log.ErrorErr(log.CatUI, "cancel failed", err)
		}
		return m, nil

	case creatorSubmit:
		created, err := m.ctrl.SubmitCreate(m.creator.candidate())
		if err != nil {
			m.creator.err = err.Error()
			return m, nil
		}
		m.message = toastStyle.Render(fmt.Sprintf("Created template %s", created.Title))
		setCmd := m.list.SetItems(templateItems(m.ctrl.ListTemplates()))
		return m, setCmd
	}

	return m, cmd
}

func (m Model) View() string {
	if m.ctrl.State() == workflow.Creating {
		return paneStyle.Render(m.creator.view())
	}

	var body, help string
	switch m.screen {
	case screenDetail:
		body = m.detailView()
		help = "esc: back • q: quit"
	default:
		body = m.tableView()
		help = "enter: details • n: new template • /: search • q: quit"
	}

	footer := helpStyle.Render(help)
	if m.message != "" {
		footer = m.message
	}

	if m.width > 0 {
		body = paneStyle.Width(m.width - 2).Render(body)
	} else {
		body = paneStyle.Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m Model) tableView() string {
	if len(m.list.Items()) == 0 {
		var sb strings.Builder
		sb.WriteString(titleStyle.Render("No check templates yet") + "\n\n")
		sb.WriteString("Templates describe a check against a service.\n")
		sb.WriteString("Press n to create your first one.")
		return sb.String()
	}
	return m.list.View()
}

func (m Model) detailView() string {
	t, ok := m.ctrl.GetTemplate(m.detailID)
	if !ok {
		return titleStyle.Render("Template not found") + "\n\n" +
			fmt.Sprintf("No template with id %q exists.", m.detailID)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(t.Title) + "\n\n")
	sb.WriteString(fmt.Sprintf("ID:        %s\n", t.ID))
	sb.WriteString(fmt.Sprintf("Protocol:  %s\n", t.Protocol))
	if t.Description != "" {
		sb.WriteString("\n" + t.Description + "\n")
	}
	return sb.String()
}

// Run starts the full-screen template browser.
func Run(ctrl *workflow.Controller) error {
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
