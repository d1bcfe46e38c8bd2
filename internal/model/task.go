package model

import "time"

// Priority levels for a task.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task categories. A task may also carry no category at all.
const (
	CategoryWork     = "work"
	CategoryPersonal = "personal"
)

// Task is a single to-do item with scheduling and priority metadata.
//
// The JSON tags define the persisted layout. Older saved data may omit any
// field; readers treat missing fields as their zero value.
type Task struct {
	// ID is the unique identifier, derived from the creation timestamp in
	// milliseconds. IDs are monotonic and never reused after deletion, so
	// they double as an age proxy for sorting and eviction.
	ID int64 `json:"id"`

	// Title is the display string. Non-empty is enforced at the form
	// boundary, not here.
	Title string `json:"title"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Priority is one of the Priority* constants. Defaults to medium.
	Priority string `json:"priority,omitempty"`

	// Category is one of the Category* constants, or empty.
	Category string `json:"category,omitempty"`

	// DueDate is an optional local calendar day in YYYY-MM-DD form.
	DueDate string `json:"dueDate,omitempty"`

	// DueTime is an optional 24-hour local time of day in HH:MM form.
	DueTime string `json:"dueTime,omitempty"`

	Completed bool `json:"completed"`

	// Pinned tasks always sort before unpinned ones regardless of the
	// chosen sort key.
	Pinned bool `json:"pinned"`
}

// PriorityWeight returns the numeric weight used for priority sorting.
// Unknown values weigh zero and sort after the known levels.
func PriorityWeight(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// LocalDate formats t as a YYYY-MM-DD string in the process-local timezone.
// Every "is this due today" comparison in the application goes through this
// helper so the list filter and the reminder scheduler agree near midnight.
func LocalDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// NextTaskID returns a fresh task ID for the given creation instant. The ID
// is the unix millisecond timestamp, bumped past any IDs already present so
// rapid successive creations stay unique.
func NextTaskID(existing []Task, now time.Time) int64 {
	id := now.UnixMilli()
	for taken(existing, id) {
		id++
	}
	return id
}

func taken(tasks []Task, id int64) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
