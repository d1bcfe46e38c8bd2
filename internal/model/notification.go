package model

import "time"

// Notification is a persisted record of a reminder that fired for a task.
// It is history only: the at-most-once firing memory lives in the scheduler
// and is intentionally not persisted.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id" db:"id"`

	// TaskID links this notification to the originating task.
	TaskID int64 `json:"task_id" db:"task_id"`

	// Condition identifies which due condition fired (due_soon, due_now,
	// overdue).
	Condition string `json:"condition" db:"condition"`

	// Message is the human-readable notification text.
	Message string `json:"message" db:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read" db:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
