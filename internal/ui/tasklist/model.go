package tasklist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/engine"
	"github.com/nhle/taskflow/internal/keys"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/theme"
)

// The task list view never mutates state itself; it translates key presses
// into these messages and the app layer converts them into engine actions.

// ToggleCompleteMsg asks to invert the completed flag on a task.
type ToggleCompleteMsg struct{ ID int64 }

// TogglePinMsg asks to invert the pinned flag on a task.
type TogglePinMsg struct{ ID int64 }

// DeleteTaskMsg asks to delete a task.
type DeleteTaskMsg struct{ ID int64 }

// EditTaskMsg asks to open the edit form for a task.
type EditTaskMsg struct{ Task model.Task }

// NewTaskMsg asks to open the create form.
type NewTaskMsg struct{}

// FilterChangedMsg asks to set the status filter.
type FilterChangedMsg struct{ Filter string }

// CategoryChangedMsg asks to set the category filter.
type CategoryChangedMsg struct{ Category string }

// SortCycleMsg asks to switch to the next sort key.
type SortCycleMsg struct{}

// SortOrderMsg asks to flip the sort order.
type SortOrderMsg struct{}

// SearchChangedMsg carries the committed search term (empty clears it).
type SearchChangedMsg struct{ Term string }

// RemindersReadMsg asks to mark all reminder history as read.
type RemindersReadMsg struct{}

// LogoutMsg asks to reset the session.
type LogoutMsg struct{}

// QuitMsg asks to shut the application down.
type QuitMsg struct{}

// Model is the main task list view component.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// SetTasks replaces the rendered tasks. The app passes in the engine's
// computed display list; ordering here is already final.
func (m *Model) SetTasks(tasks []model.Task) tea.Cmd {
	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = TaskItem{Task: task}
	}
	return m.list.SetItems(items)
}

// SetTitle updates the list header (e.g. "Tasks for Today").
func (m *Model) SetTitle(title string) {
	m.list.Title = title
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}

// Selected returns the task under the cursor, if any.
func (m Model) Selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(keyMsg)
		}
		return m.handleNormalKeys(keyMsg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		term := m.searchInput.Value()
		return m, func() tea.Msg { return SearchChangedMsg{Term: term} }

	case "esc":
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, func() tea.Msg { return SearchChangedMsg{Term: ""} }
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal browsing mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, func() tea.Msg { return QuitMsg{} }

	case key.Matches(msg, k.New):
		return m, func() tea.Msg { return NewTaskMsg{} }

	case key.Matches(msg, k.Edit):
		if task, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditTaskMsg{Task: task} }
		}
		return m, nil

	case key.Matches(msg, k.Delete):
		if task, ok := m.Selected(); ok {
			id := task.ID
			return m, func() tea.Msg { return DeleteTaskMsg{ID: id} }
		}
		return m, nil

	case key.Matches(msg, k.Complete):
		if task, ok := m.Selected(); ok {
			id := task.ID
			return m, func() tea.Msg { return ToggleCompleteMsg{ID: id} }
		}
		return m, nil

	case key.Matches(msg, k.Pin):
		if task, ok := m.Selected(); ok {
			id := task.ID
			return m, func() tea.Msg { return TogglePinMsg{ID: id} }
		}
		return m, nil

	case key.Matches(msg, k.FilterAll):
		return m, filterMsg(engine.FilterAll)
	case key.Matches(msg, k.FilterActive):
		return m, filterMsg(engine.FilterActive)
	case key.Matches(msg, k.FilterCompleted):
		return m, filterMsg(engine.FilterCompleted)
	case key.Matches(msg, k.FilterToday):
		return m, filterMsg(engine.FilterToday)

	case key.Matches(msg, k.FilterWork):
		return m, func() tea.Msg { return CategoryChangedMsg{Category: model.CategoryWork} }
	case key.Matches(msg, k.FilterPersonal):
		return m, func() tea.Msg { return CategoryChangedMsg{Category: model.CategoryPersonal} }

	case key.Matches(msg, k.CycleSort):
		return m, func() tea.Msg { return SortCycleMsg{} }
	case key.Matches(msg, k.SortOrder):
		return m, func() tea.Msg { return SortOrderMsg{} }

	case key.Matches(msg, k.Search):
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, k.Reminders):
		return m, func() tea.Msg { return RemindersReadMsg{} }

	case key.Matches(msg, k.Logout):
		return m, func() tea.Msg { return LogoutMsg{} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func filterMsg(filter string) tea.Cmd {
	return func() tea.Msg { return FilterChangedMsg{Filter: filter} }
}

// View renders the task list, with the search input above it while
// searching.
func (m Model) View() string {
	if m.searchMode {
		return m.searchInput.View() + "\n" + m.list.View()
	}
	return m.list.View()
}
