package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tormodhaugland/ct/internal/protocol"
	"github.com/tormodhaugland/ct/internal/template"
)

const (
	fieldID = iota
	fieldTitle
	fieldDescription
	fieldProtocol
	fieldCount
)

// creatorForm collects a template candidate. It does no validation of its own;
// the workflow controller decides whether a submission is accepted.
type creatorForm struct {
	idInput    textinput.Model
	titleInput textinput.Model
	descInput  textinput.Model
	protocols  []protocol.Protocol
	protoIndex int
	focusIndex int
	err        string
}

// creatorAction tells the parent what the last key asked for.
type creatorAction int

const (
	creatorNone creatorAction = iota
	creatorSubmit
	creatorCancel
)

func newCreatorForm() creatorForm {
	ii := textinput.New()
	ii.Placeholder = "0002"
	ii.CharLimit = 64
	ii.Width = 40
	ii.Focus()

	ti := textinput.New()
	ti.Placeholder = "My Check"
	ti.CharLimit = 128
	ti.Width = 40

	di := textinput.New()
	di.Placeholder = "what this check verifies"
	di.CharLimit = 512
	di.Width = 40

	protocols := protocol.All()
	protoIndex := 0
	for i, p := range protocols {
		if p == protocol.HTTP {
			protoIndex = i
			break
		}
	}

	return creatorForm{
		idInput:    ii,
		titleInput: ti,
		descInput:  di,
		protocols:  protocols,
		protoIndex: protoIndex,
	}
}

func (f creatorForm) candidate() template.Candidate {
	return template.Candidate{
		ID:          f.idInput.Value(),
		Title:       f.titleInput.Value(),
		Description: f.descInput.Value(),
		Protocol:    string(f.protocols[f.protoIndex]),
	}
}

func (f creatorForm) protocol() protocol.Protocol {
	return f.protocols[f.protoIndex]
}

func (f *creatorForm) setFocus(i int) tea.Cmd {
	f.focusIndex = (i + fieldCount) % fieldCount
	f.idInput.Blur()
	f.titleInput.Blur()
	f.descInput.Blur()

	switch f.focusIndex {
	case fieldID:
		return f.idInput.Focus()
	case fieldTitle:
		return f.titleInput.Focus()
	case fieldDescription:
		return f.descInput.Focus()
	}
	return nil
}

func (f creatorForm) update(msg tea.Msg) (creatorForm, creatorAction, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+c":
			return f, creatorCancel, nil

		case "ctrl+s":
			return f, creatorSubmit, nil

		case "enter":
			if f.focusIndex == fieldProtocol {
				return f, creatorSubmit, nil
			}
			cmd := f.setFocus(f.focusIndex + 1)
			return f, creatorNone, cmd

		case "tab", "down":
			cmd := f.setFocus(f.focusIndex + 1)
			return f, creatorNone, cmd

		case "shift+tab", "up":
			cmd := f.setFocus(f.focusIndex - 1)
			return f, creatorNone, cmd

		case "left", "h":
			if f.focusIndex == fieldProtocol {
				f.protoIndex = (f.protoIndex - 1 + len(f.protocols)) % len(f.protocols)
				return f, creatorNone, nil
			}

		case "right", "l":
			if f.focusIndex == fieldProtocol {
				f.protoIndex = (f.protoIndex + 1) % len(f.protocols)
				return f, creatorNone, nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focusIndex {
	case fieldID:
		f.idInput, cmd = f.idInput.Update(msg)
	case fieldTitle:
		f.titleInput, cmd = f.titleInput.Update(msg)
	case fieldDescription:
		f.descInput, cmd = f.descInput.Update(msg)
	}
	return f, creatorNone, cmd
}

func (f creatorForm) view() string {
	var sb strings.Builder

	sb.WriteString(promptLabelStyle.Render("New check template") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", promptLabelStyle.Render("ID:         "), f.idInput.View()))
	sb.WriteString(fmt.Sprintf("%s %s\n", promptLabelStyle.Render("Title:      "), f.titleInput.View()))
	sb.WriteString(fmt.Sprintf("%s %s\n", promptLabelStyle.Render("Description:"), f.descInput.View()))

	proto := string(f.protocol())
	if f.focusIndex == fieldProtocol {
		proto = selectedItemStyle.Render("< " + proto + " >")
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", promptLabelStyle.Render("Protocol:   "), proto))

	if f.err != "" {
		sb.WriteString("\n" + promptErrorStyle.Render("Error: "+f.err) + "\n")
	}

	sb.WriteString("\n" + promptHintStyle.Render("tab: next field • ←/→: protocol • enter: create • esc: cancel"))
	return sb.String()
}
