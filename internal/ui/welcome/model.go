package welcome

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/theme"
)

// NameSubmittedMsg carries the display name entered during onboarding.
type NameSubmittedMsg struct {
	Name string
}

// Model is the first-run onboarding screen asking for a display name.
type Model struct {
	form   *huh.Form
	name   *string
	width  int
	height int
}

// New creates the welcome screen model with its form ready to run.
func New(width, height int) Model {
	name := ""
	m := Model{
		name:   &name,
		width:  width,
		height: height,
	}
	m.form = buildForm(m.name)
	return m
}

// Init initializes the onboarding form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Start resets the form for a fresh onboarding pass, e.g. after logout.
func (m *Model) Start() tea.Cmd {
	*m.name = ""
	m.form = buildForm(m.name)
	return m.form.Init()
}

func buildForm(name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What should we call you?").
				Placeholder("Your name").
				Value(name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a name is required")
					}
					return nil
				}),
		),
	)
}

// Update handles messages for the welcome screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		name := strings.TrimSpace(*m.name)
		return m, func() tea.Msg { return NameSubmittedMsg{Name: name} }
	}

	return m, cmd
}

// View renders the welcome screen.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	greeting := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		MarginBottom(1).
		Render("Welcome to TaskFlow")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(greeting + "\n" + m.form.View())
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
