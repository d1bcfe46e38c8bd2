package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/engine"
	"github.com/nhle/taskflow/internal/guard"
	"github.com/nhle/taskflow/internal/keys"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/notify"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/ui"
	"github.com/nhle/taskflow/internal/ui/taskform"
	"github.com/nhle/taskflow/internal/ui/tasklist"
	"github.com/nhle/taskflow/internal/ui/welcome"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewWelcome ViewState = iota
	ViewList
	ViewForm
)

// refreshListMsg asks the app to recompute the visible task list.
type refreshListMsg struct{}

// clockTickMsg drives the header clock and keeps the "today" filter and
// upcoming-reminder annotations current.
type clockTickMsg struct {
	now time.Time
}

// unreadCountMsg carries the number of unread reminder records.
type unreadCountMsg struct {
	count int
}

// Model is the root Bubble Tea model. It owns the application state and is
// the only place that mutates it, via dispatch.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	ready       bool

	state     engine.State
	store     *store.SQLiteStore
	guard     *guard.Guard
	scheduler *notify.Scheduler
	snapshot  *taskSnapshot
	keys      *keys.KeyMap

	taskList tasklist.Model
	taskForm taskform.Model
	welcome  welcome.Model

	unreadCount int
	now         time.Time
}

// New creates the root application model, hydrating state from the store
// and wiring the reminder scheduler to a snapshot of the task list.
func New(s *store.SQLiteStore, cfg *model.AppConfig) Model {
	k := keys.DefaultKeyMap()
	state := hydrate(s)

	snapshot := &taskSnapshot{}
	snapshot.set(state.Tasks)

	var notifier notify.Notifier
	if cfg.Notify.Enabled {
		notifier = notify.DesktopNotifier{}
	}
	interval := time.Duration(cfg.Notify.TickIntervalSec) * time.Second
	scheduler := notify.New(snapshot.get, notifier, interval)

	view := ViewList
	if state.UserName == "" {
		view = ViewWelcome
	}

	return Model{
		currentView: view,
		state:       state,
		store:       s,
		guard:       guard.New(cfg.Storage.MaxBytes),
		scheduler:   scheduler,
		snapshot:    snapshot,
		keys:        k,
		taskList:    tasklist.New(k, 80, 24),
		taskForm:    taskform.New(80, 24),
		welcome:     welcome.New(80, 24),
		now:         time.Now(),
	}
}

// Init starts the reminder scheduler and the display clock.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.scheduler.Start(),
		tickClock(),
		m.fetchUnreadCount(),
		func() tea.Msg { return refreshListMsg{} },
	}
	if m.currentView == ViewWelcome {
		cmds = append(cmds, m.welcome.Init())
	}
	return tea.Batch(cmds...)
}

// tickClock schedules the next display-clock refresh.
func tickClock() tea.Cmd {
	return tea.Tick(time.Minute, func(now time.Time) tea.Msg {
		return clockTickMsg{now: now}
	})
}

// Update handles messages and routes them to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.taskList.SetSize(w, h)
		m.taskForm.SetSize(w, h)
		m.welcome.SetSize(w, h)
		return m.updateActiveView(msg)

	case refreshListMsg:
		return m, m.refreshList()

	case clockTickMsg:
		m.now = msg.now
		return m, tea.Batch(tickClock(), m.refreshList())

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case toastExpiredMsg:
		// Races harmlessly with manual dismissal; removal is idempotent.
		return m, m.dispatch(engine.RemoveToast{ID: msg.id})

	case notify.DueTaskMsg:
		return m.handleDueTask(msg)

	case welcome.NameSubmittedMsg:
		cmd := m.dispatch(engine.SetUserName{Name: msg.Name})
		m.currentView = ViewList
		return m, tea.Batch(cmd, m.refreshList())

	case taskform.TaskCreatedMsg:
		m.currentView = ViewList
		return m, tea.Batch(m.createTask(msg.Draft), m.refreshList())

	case taskform.TaskEditedMsg:
		m.currentView = ViewList
		return m, tea.Batch(m.editTask(msg.Task), m.refreshList())

	case taskform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case tasklist.NewTaskMsg:
		m.currentView = ViewForm
		return m, m.taskForm.StartCreate()

	case tasklist.EditTaskMsg:
		m.currentView = ViewForm
		return m, m.taskForm.StartEdit(msg.Task)

	case tasklist.ToggleCompleteMsg:
		return m, tea.Batch(m.dispatch(engine.ToggleComplete{ID: msg.ID}), m.refreshList())

	case tasklist.TogglePinMsg:
		return m, tea.Batch(m.dispatch(engine.TogglePin{ID: msg.ID}), m.refreshList())

	case tasklist.DeleteTaskMsg:
		cmd := m.dispatch(engine.DeleteTask{ID: msg.ID})
		toastCmd := m.dispatch(engine.AddToast{
			Message: "Task deleted.",
			Type:    engine.ToastSuccess,
		})
		return m, tea.Batch(cmd, toastCmd, m.refreshList())

	case tasklist.FilterChangedMsg:
		return m, tea.Batch(m.dispatch(engine.SetFilter{Filter: msg.Filter}), m.refreshList())

	case tasklist.CategoryChangedMsg:
		return m, tea.Batch(
			m.dispatch(engine.SetCategoryFilter{Category: msg.Category}),
			m.refreshList(),
		)

	case tasklist.SortCycleMsg:
		sortBy := engine.SortByDate
		if m.state.SortBy == engine.SortByDate {
			sortBy = engine.SortByPriority
		}
		cmd := m.dispatch(engine.SetSort{SortBy: sortBy, SortOrder: m.state.SortOrder})
		return m, tea.Batch(cmd, m.refreshList())

	case tasklist.SortOrderMsg:
		order := engine.SortAsc
		if m.state.SortOrder == engine.SortAsc {
			order = engine.SortDesc
		}
		cmd := m.dispatch(engine.SetSort{SortBy: m.state.SortBy, SortOrder: order})
		return m, tea.Batch(cmd, m.refreshList())

	case tasklist.SearchChangedMsg:
		return m, tea.Batch(m.dispatch(engine.SetSearch{Term: msg.Term}), m.refreshList())

	case tasklist.RemindersReadMsg:
		return m, m.markRemindersRead()

	case tasklist.LogoutMsg:
		cmd := m.dispatch(engine.Logout{})
		m.currentView = ViewWelcome
		return m, tea.Batch(cmd, m.welcome.Start(), m.refreshList())

	case tasklist.QuitMsg:
		m.scheduler.Stop()
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.scheduler.Stop()
			return m, tea.Quit
		}
		if m.currentView == ViewList {
			if cmd, handled := m.handleToastKeys(msg); handled {
				return m, cmd
			}
		}
		return m.updateActiveView(msg)
	}

	return m.updateActiveView(msg)
}

// handleToastKeys lets the user act on the newest toast: trigger its
// attached action or dismiss it before it expires.
func (m *Model) handleToastKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if len(m.state.Toasts) == 0 {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.ToastAction):
		for i := len(m.state.Toasts) - 1; i >= 0; i-- {
			toast := m.state.Toasts[i]
			if toast.Action == nil {
				continue
			}
			actionCmd := m.dispatch(toast.Action)
			removeCmd := m.dispatch(engine.RemoveToast{ID: toast.ID})
			return tea.Batch(actionCmd, removeCmd, m.refreshList()), true
		}
		return nil, false

	case key.Matches(msg, m.keys.ToastDismiss):
		newest := m.state.Toasts[len(m.state.Toasts)-1]
		return m.dispatch(engine.RemoveToast{ID: newest.ID}), true
	}

	return nil, false
}

// updateActiveView forwards a message to the currently visible component.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewWelcome:
		m.welcome, cmd = m.welcome.Update(msg)
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	default:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

// refreshList recomputes the visible task list from the engine state.
func (m *Model) refreshList() tea.Cmd {
	m.taskList.SetTitle(filterTitle(m.state))
	return m.taskList.SetTasks(engine.Visible(m.state, time.Now()))
}

// filterTitle names the active filter for the list header.
func filterTitle(s engine.State) string {
	if s.CategoryFilter == model.CategoryWork {
		return "Work Tasks"
	}
	if s.CategoryFilter == model.CategoryPersonal {
		return "Personal Tasks"
	}
	switch s.Filter {
	case engine.FilterActive:
		return "Active Tasks"
	case engine.FilterCompleted:
		return "Completed Tasks"
	case engine.FilterToday:
		return "Tasks for Today"
	default:
		return "All Tasks"
	}
}

// View renders the full frame: header, active view, toasts, status bar.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var content string
	switch m.currentView {
	case ViewWelcome:
		content = m.welcome.View()
	case ViewForm:
		content = m.taskForm.View()
	default:
		content = m.taskList.View()
	}

	if overlay := m.renderToasts(); overlay != "" {
		content = overlay + "\n" + content
	}

	header := m.layout.RenderHeader("TaskFlow", m.headerStatus())
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// headerStatus renders the right side of the header: user name and clock.
func (m Model) headerStatus() string {
	clock := m.now.Format("15:04")
	if m.state.UserName == "" {
		return clock
	}
	return m.state.UserName + " · " + clock
}

// statusLine renders the bottom status bar text.
func (m Model) statusLine() string {
	total := len(m.state.Tasks)
	done := 0
	for _, t := range m.state.Tasks {
		if t.Completed {
			done++
		}
	}

	usedKiB := guard.Size(m.state.Tasks) / 1024
	capKiB := m.guard.MaxBytes / 1024

	line := fmt.Sprintf("%d tasks · %d done · storage %dK/%dK", total, done, usedKiB, capKiB)
	if m.unreadCount > 0 {
		line += fmt.Sprintf(" · %d reminders", m.unreadCount)
	}
	return line + " · n:new e:edit d:del x:done p:pin /:search q:quit"
}
