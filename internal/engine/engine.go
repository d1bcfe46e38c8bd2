package engine

import (
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// Status filters for the task list.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
	FilterToday     = "today"
)

// Sort keys and orders.
const (
	SortByDate     = "date"
	SortByPriority = "priority"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Toast types.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
	ToastWarning = "warning"
)

// ToastDuration is how long a toast stays up before it self-expires.
const ToastDuration = 4000 * time.Millisecond

// Toast is a transient in-app notice. It may carry an optional action the
// user can trigger before the toast expires.
type Toast struct {
	ID          int64
	Message     string
	Type        string
	ActionLabel string
	Action      Action
}

// State is the canonical application state. It is created once at startup,
// hydrated from the store, and mutated exclusively through Reduce.
type State struct {
	// Tasks in insertion order. Display order is computed by Visible,
	// never stored.
	Tasks []model.Task

	Filter         string
	CategoryFilter string
	SortBy         string
	SortOrder      string
	SearchTerm     string

	Toasts []Toast

	// UserName is the display name. Empty means not onboarded.
	UserName string
}

// NewState returns the initial application state.
func NewState() State {
	return State{
		Filter:    FilterAll,
		SortBy:    SortByDate,
		SortOrder: SortAsc,
	}
}

// Reduce applies an action to the state and returns the resulting state.
// It is pure: no I/O, no mutation of the input. The clock is only consulted
// for toast ID generation. Unrecognized action types return the state
// unchanged.
func Reduce(s State, a Action, now time.Time) State {
	switch a := a.(type) {
	case SetUserName:
		s.UserName = a.Name
		return s

	case Logout:
		return NewState()

	case SetFilter:
		s.Filter = a.Filter
		s.CategoryFilter = ""
		return s

	case SetCategoryFilter:
		s.CategoryFilter = a.Category
		s.Filter = FilterAll
		return s

	case SetSort:
		s.SortBy = a.SortBy
		s.SortOrder = a.SortOrder
		return s

	case SetSearch:
		s.SearchTerm = a.Term
		return s

	case AddTask:
		s.Tasks = append(copyTasks(s.Tasks), a.Task)
		return s

	case UpdateTask:
		s.Tasks = mapTask(s.Tasks, a.Patch.ID, func(t model.Task) model.Task {
			return applyPatch(t, a.Patch)
		})
		return s

	case DeleteTask:
		tasks := make([]model.Task, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != a.ID {
				tasks = append(tasks, t)
			}
		}
		s.Tasks = tasks
		return s

	case ToggleComplete:
		s.Tasks = mapTask(s.Tasks, a.ID, func(t model.Task) model.Task {
			t.Completed = !t.Completed
			return t
		})
		return s

	case TogglePin:
		s.Tasks = mapTask(s.Tasks, a.ID, func(t model.Task) model.Task {
			t.Pinned = !t.Pinned
			return t
		})
		return s

	case AddToast:
		toast := Toast{
			ID:          nextToastID(s.Toasts, now),
			Message:     a.Message,
			Type:        a.Type,
			ActionLabel: a.ActionLabel,
			Action:      a.Action,
		}
		s.Toasts = append(copyToasts(s.Toasts), toast)
		return s

	case RemoveToast:
		toasts := make([]Toast, 0, len(s.Toasts))
		for _, t := range s.Toasts {
			if t.ID != a.ID {
				toasts = append(toasts, t)
			}
		}
		s.Toasts = toasts
		return s

	case SetTasks:
		s.Tasks = a.Tasks
		return s

	default:
		return s
	}
}

// applyPatch merges non-nil patch fields into the task.
func applyPatch(t model.Task, p TaskPatch) model.Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Pinned != nil {
		t.Pinned = *p.Pinned
	}
	return t
}

// mapTask returns a copy of tasks with fn applied to the task matching id.
// The list is returned unchanged in content when no task matches.
func mapTask(tasks []model.Task, id int64, fn func(model.Task) model.Task) []model.Task {
	out := copyTasks(tasks)
	for i, t := range out {
		if t.ID == id {
			out[i] = fn(t)
		}
	}
	return out
}

// nextToastID generates a timestamp-based toast ID, bumped past collisions
// so two toasts raised in the same millisecond stay distinct.
func nextToastID(toasts []Toast, now time.Time) int64 {
	id := now.UnixMilli()
	for toastIDTaken(toasts, id) {
		id++
	}
	return id
}

func toastIDTaken(toasts []Toast, id int64) bool {
	for _, t := range toasts {
		if t.ID == id {
			return true
		}
	}
	return false
}

func copyTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}

func copyToasts(toasts []Toast) []Toast {
	out := make([]Toast, len(toasts))
	copy(out, toasts)
	return out
}
