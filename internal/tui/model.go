// Package tui is the terminal contact form. It renders the form fields and
// status of a contact.State and drives a contact.Flow on submit.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vallamsettyashok/portfolio/internal/contact"
)

type focus int

const (
	focusName focus = iota
	focusEmail
	focusMessage
	focusSubmit
	focusCount
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("238"))
	activeButton = buttonStyle.Background(lipgloss.Color("63")).Foreground(lipgloss.Color("230"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// sentMsg reports that Flow.Send returned. The flow has already logged any
// diagnostic and updated the state.
type sentMsg struct{}

type Model struct {
	ctx   context.Context
	flow  *contact.Flow
	owner string

	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   focus
}

// New returns a form bound to flow, seeded from the flow's state.
func New(ctx context.Context, flow *contact.Flow, owner string) Model {
	snap := flow.State().Snapshot()

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 100
	name.SetValue(snap.Form.Name)
	name.Focus()

	email := textinput.New()
	email.Placeholder = "Your email"
	email.CharLimit = 254
	email.SetValue(snap.Form.Email)

	message := textarea.New()
	message.Placeholder = "Message"
	message.ShowLineNumbers = false
	message.SetHeight(5)
	message.SetValue(snap.Form.Message)

	return Model{
		ctx:     ctx,
		flow:    flow,
		owner:   owner,
		name:    name,
		email:   email,
		message: message,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sentMsg:
		// a successful send clears the message in state
		m.message.SetValue(m.flow.State().Snapshot().Form.Message)
		return m, nil

	case tea.WindowSizeMsg:
		w := max(min(msg.Width-4, 72), 20)
		m.message.SetWidth(w)
		m.name.Width = w
		m.email.Width = w
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m, m.setFocus((m.focus + 1) % focusCount)
		case "shift+tab":
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		case "ctrl+s":
			return m.submit()
		case "enter":
			switch m.focus {
			case focusSubmit:
				return m.submit()
			case focusName, focusEmail:
				return m, m.setFocus(m.focus + 1)
			}
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and mirrors its value
// into the state. Only that one field changes.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	state := m.flow.State()

	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
		state.SetField(contact.FieldName, m.name.Value())
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
		state.SetField(contact.FieldEmail, m.email.Value())
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
		state.SetField(contact.FieldMessage, m.message.Value())
	}
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()

	switch f {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	case focusMessage:
		return m.message.Focus()
	}
	return nil
}

// submit moves the state to sending before returning, so the next View
// already shows it, and runs the request as a command. Submits while a
// request is in flight are dropped.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.flow.State().Status() == contact.StatusSending {
		return m, nil
	}

	form, err := m.flow.Start()
	if err != nil {
		return m, nil
	}

	flow, ctx := m.flow, m.ctx
	return m, func() tea.Msg {
		flow.Send(ctx, form) //nolint:errcheck
		return sentMsg{}
	}
}

func (m Model) View() string {
	snap := m.flow.State().Snapshot()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Contact") + "\n")
	b.WriteString(labelStyle.Render("Interested recruiters can reach out via email or use this form.") + "\n\n")
	b.WriteString(m.name.View() + "\n")
	b.WriteString(m.email.View() + "\n")
	b.WriteString(m.message.View() + "\n\n")

	label := "Send Message"
	if snap.Status == contact.StatusSending {
		label = "Sending..."
	}
	button := buttonStyle
	if m.focus == focusSubmit {
		button = activeButton
	}
	b.WriteString(button.Render(label) + "\n\n")

	if line := snap.Status.Message(snap.Error, m.owner); line != "" && snap.Status != contact.StatusSending {
		style := successStyle
		if snap.Status == contact.StatusError {
			style = errorStyle
		}
		b.WriteString(style.Render(line) + "\n\n")
	}

	b.WriteString(helpStyle.Render("tab: next field • ctrl+s: send • esc: quit"))
	return b.String()
}

// Run starts the form on the terminal and blocks until the user quits.
func Run(ctx context.Context, flow *contact.Flow, owner string) error {
	_, err := tea.NewProgram(New(ctx, flow, owner), tea.WithContext(ctx)).Run()
	return err
}
