package app

import (
	"context"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/engine"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
)

// taskSnapshot shares the current task list with the reminder scheduler's
// goroutine. The Bubble Tea loop writes after every dispatch; the scheduler
// only reads.
type taskSnapshot struct {
	mu    sync.RWMutex
	tasks []model.Task
}

func (s *taskSnapshot) set(tasks []model.Task) {
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
}

func (s *taskSnapshot) get() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks
}

// toastExpiredMsg fires when a toast's display duration has elapsed.
type toastExpiredMsg struct {
	id int64
}

// expireToast schedules the self-expiry of a toast.
func expireToast(id int64) tea.Cmd {
	return tea.Tick(engine.ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// dispatch runs an action through the engine and performs the side effects
// the new state calls for: the storage guard pass, mirroring the task list
// and user name to durable storage, and scheduling toast expiry. All state
// mutation happens here, synchronously.
//
// Persistence is fire-and-forget: a failed write is logged and the
// in-memory state stays authoritative for the session.
func (m *Model) dispatch(a engine.Action) tea.Cmd {
	ctx := context.Background()
	now := time.Now()

	prevToastCount := len(m.state.Toasts)
	m.state = engine.Reduce(m.state, a, now)

	var cmds []tea.Cmd

	if engine.TouchesTasks(a) {
		if kept, evicted := m.guard.Check(m.state.Tasks); evicted {
			// Over the cap: replace the list with the survivors and skip
			// persisting on this pass. The next mutation persists again.
			m.state = engine.Reduce(m.state, engine.SetTasks{Tasks: kept}, now)
			m.state = engine.Reduce(m.state, engine.AddToast{
				Message: "Storage limit reached; oldest tasks were pruned.",
				Type:    engine.ToastWarning,
			}, now)
		} else if err := m.store.Save(ctx, store.KeyTasks, m.state.Tasks); err != nil {
			log.Printf("persisting tasks: %v", err)
		}
		m.snapshot.set(m.state.Tasks)
	}

	switch a.(type) {
	case engine.SetUserName:
		if err := m.store.Save(ctx, store.KeyUserName, m.state.UserName); err != nil {
			log.Printf("persisting user name: %v", err)
		}
	case engine.Logout:
		if err := m.store.Delete(ctx, store.KeyUserName); err != nil {
			log.Printf("clearing user name: %v", err)
		}
	}

	// Every toast added by this dispatch gets its own expiry timer.
	for _, toast := range m.state.Toasts[min(prevToastCount, len(m.state.Toasts)):] {
		cmds = append(cmds, expireToast(toast.ID))
	}

	return tea.Batch(cmds...)
}

// hydrate loads the persisted task list and user name into a fresh state.
// Missing or corrupt data silently falls back to defaults.
func hydrate(s *store.SQLiteStore) engine.State {
	ctx := context.Background()
	state := engine.NewState()

	var tasks []model.Task
	if s.Load(ctx, store.KeyTasks, &tasks) {
		state.Tasks = tasks
	}

	var name string
	if s.Load(ctx, store.KeyUserName, &name) {
		state.UserName = name
	}

	return state
}
