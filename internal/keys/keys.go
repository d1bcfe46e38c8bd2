package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Task actions
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Complete key.Binding
	Pin      key.Binding

	// Status filters
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	FilterToday     key.Binding

	// Category filters
	FilterWork     key.Binding
	FilterPersonal key.Binding

	// Sort
	CycleSort key.Binding
	SortOrder key.Binding

	// Search
	Search key.Binding

	// Reminders
	Reminders key.Binding

	// Toasts
	ToastAction  key.Binding
	ToastDismiss key.Binding

	// Session
	Logout key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit task"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task"),
		),
		Complete: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "toggle complete"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle pin"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all tasks"),
		),
		FilterActive: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "active"),
		),
		FilterCompleted: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "completed"),
		),
		FilterToday: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "today"),
		),
		FilterWork: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "work category"),
		),
		FilterPersonal: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "personal category"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort key"),
		),
		SortOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "flip sort order"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Reminders: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "mark reminders read"),
		),
		ToastAction: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toast action"),
		),
		ToastDismiss: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "dismiss toast"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
