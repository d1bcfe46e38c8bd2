package engine

import "github.com/nhle/taskflow/internal/model"

// Action is a tagged request to change application state. The UI layer
// constructs actions and hands them to Reduce; this set of types is the
// entire contract surface between presentation and engine.
//
// Reduce treats action types it does not recognize as a no-op rather than
// an error, so new UI actions can ship before the engine learns about them.
type Action interface {
	isAction()
}

// SetUserName replaces the display name.
type SetUserName struct {
	Name string
}

// Logout resets the entire state to its initial defaults, including an
// empty user name and an empty task list.
type Logout struct{}

// SetFilter sets the status filter and clears any category filter.
type SetFilter struct {
	Filter string
}

// SetCategoryFilter sets the category filter and resets the status filter
// back to "all". The two filters are mutually exclusive.
type SetCategoryFilter struct {
	Category string
}

// SetSort replaces both sort fields atomically.
type SetSort struct {
	SortBy    string
	SortOrder string
}

// SetSearch replaces the free-text search term.
type SetSearch struct {
	Term string
}

// AddTask appends a task. The task must already carry a unique ID; the
// engine does not generate task IDs.
type AddTask struct {
	Task model.Task
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	ID          int64
	Title       *string
	Description *string
	Priority    *string
	Category    *string
	DueDate     *string
	DueTime     *string
	Completed   *bool
	Pinned      *bool
}

// UpdateTask merges the patch into the task with the matching ID.
// A no-op if no task matches.
type UpdateTask struct {
	Patch TaskPatch
}

// DeleteTask removes the task with the matching ID. A no-op if absent.
type DeleteTask struct {
	ID int64
}

// ToggleComplete inverts the completed flag on the matching task.
type ToggleComplete struct {
	ID int64
}

// TogglePin inverts the pinned flag on the matching task.
type TogglePin struct {
	ID int64
}

// AddToast appends a toast. The engine assigns a fresh timestamp-based ID.
type AddToast struct {
	Message     string
	Type        string
	ActionLabel string
	Action      Action
}

// RemoveToast removes the toast with the matching ID. Removal is
// idempotent: expiry timers and manual dismissal may race.
type RemoveToast struct {
	ID int64
}

// SetTasks wholesale-replaces the task list. Used by hydration and by the
// storage guard's eviction pass.
type SetTasks struct {
	Tasks []model.Task
}

func (SetUserName) isAction()       {}
func (Logout) isAction()            {}
func (SetFilter) isAction()         {}
func (SetCategoryFilter) isAction() {}
func (SetSort) isAction()           {}
func (SetSearch) isAction()         {}
func (AddTask) isAction()           {}
func (UpdateTask) isAction()        {}
func (DeleteTask) isAction()        {}
func (ToggleComplete) isAction()    {}
func (TogglePin) isAction()         {}
func (AddToast) isAction()          {}
func (RemoveToast) isAction()       {}
func (SetTasks) isAction()          {}

// TouchesTasks reports whether the action can mutate the task list. The
// dispatch pipeline uses this to decide when to run the storage guard and
// mirror the list to durable storage.
func TouchesTasks(a Action) bool {
	switch a.(type) {
	case AddTask, UpdateTask, DeleteTask, ToggleComplete, TogglePin, SetTasks, Logout:
		return true
	default:
		return false
	}
}
