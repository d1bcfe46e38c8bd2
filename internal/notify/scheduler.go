// Package notify runs the reminder scheduler: a background loop that scans
// the current task list on a fixed interval and raises due/overdue
// notifications, each at most once per task per condition.
package notify

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/model"
)

// Condition identifies which due state a reminder fired for.
type Condition string

const (
	// ConditionDueSoon fires one minute before the due time.
	ConditionDueSoon Condition = "due_soon"
	// ConditionDueNow fires at the due time.
	ConditionDueNow Condition = "due_now"
	// ConditionOverdue fires one minute past the due time.
	ConditionOverdue Condition = "overdue"
)

// DefaultInterval is how often the scheduler scans for due tasks.
const DefaultInterval = 60 * time.Second

// DueTaskMsg is a tea.Msg sent when a task crosses a due condition.
type DueTaskMsg struct {
	Task      model.Task
	Condition Condition
}

// Notifier delivers platform-level notifications. Delivery is best-effort
// and fire-and-forget.
type Notifier interface {
	// RequestPermission asks the platform for notification permission and
	// reports whether it was granted. Called once on scheduler start.
	RequestPermission() bool

	// Notify shows a notification with the given title and body.
	Notify(title, body string) error
}

// Scheduler scans tasks for due conditions on a fixed tick. It never
// mutates task data; it only reads snapshots and emits messages. The
// fired-condition memory is per-process and intentionally resets on
// restart.
type Scheduler struct {
	tasks    func() []model.Task
	clock    func() time.Time
	notifier Notifier
	interval time.Duration

	mu      sync.Mutex
	fired   map[string]struct{}
	granted bool
	running bool

	resultCh chan tea.Msg
	stopCh   chan struct{}
}

// New creates a Scheduler. tasks must return a snapshot of the current task
// list; it is called from the scheduler goroutine.
func New(tasks func() []model.Task, notifier Notifier, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		tasks:    tasks,
		clock:    time.Now,
		notifier: notifier,
		interval: interval,
		fired:    make(map[string]struct{}),
		resultCh: make(chan tea.Msg, 16),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the scheduling goroutine and returns a command that
// subscribes to its results. Permission is requested once, here, if the
// platform has not decided yet.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	if s.notifier != nil {
		granted := s.notifier.RequestPermission()
		s.mu.Lock()
		s.granted = granted
		s.mu.Unlock()
	}

	go s.loop()

	return s.waitForResult()
}

// Stop halts the scheduling goroutine.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	close(s.stopCh)
	s.running = false
}

// loop runs the periodic scan until Stop is called.
func (s *Scheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick(s.clock())
		}
	}
}

// tick evaluates every task against the current time and emits each newly
// crossed condition exactly once.
func (s *Scheduler) tick(now time.Time) {
	for _, task := range s.tasks() {
		cond, ok := evaluate(task, now)
		if !ok {
			continue
		}

		key := conditionKey(task, cond)
		s.mu.Lock()
		if _, seen := s.fired[key]; seen {
			s.mu.Unlock()
			continue
		}
		s.fired[key] = struct{}{}
		granted := s.granted
		s.mu.Unlock()

		if granted && s.notifier != nil {
			title, body := describe(task, cond)
			_ = s.notifier.Notify(title, body)
		}

		s.sendResult(DueTaskMsg{Task: task, Condition: cond})
	}
}

// evaluate computes the due condition for a task at the given instant.
// Only incomplete tasks due today (local calendar date) with a due time are
// eligible; conditions are mutually exclusive.
func evaluate(task model.Task, now time.Time) (Condition, bool) {
	if task.Completed || task.DueDate == "" || task.DueTime == "" {
		return "", false
	}
	if task.DueDate != model.LocalDate(now) {
		return "", false
	}

	due, err := time.Parse("15:04", task.DueTime)
	if err != nil {
		return "", false
	}

	dueMinutes := due.Hour()*60 + due.Minute()
	nowMinutes := now.Hour()*60 + now.Minute()
	diff := dueMinutes - nowMinutes

	switch diff {
	case 1:
		return ConditionDueSoon, true
	case 0:
		return ConditionDueNow, true
	case -1:
		return ConditionOverdue, true
	default:
		return "", false
	}
}

// conditionKey builds the at-most-once key for a (task, condition) pair.
// The due date and time participate so a rescheduled task can fire again.
func conditionKey(task model.Task, cond Condition) string {
	return fmt.Sprintf("%d-%s-%s-%s", task.ID, task.DueDate, task.DueTime, cond)
}

// describe renders the notification title and body for a condition.
func describe(task model.Task, cond Condition) (title, body string) {
	switch cond {
	case ConditionDueSoon:
		return "Task due soon", fmt.Sprintf("%q is due at %s.", task.Title, task.DueTime)
	case ConditionDueNow:
		return "Task due now", fmt.Sprintf("%q is due right now.", task.Title)
	default:
		return "Task overdue", fmt.Sprintf("%q was due at %s.", task.Title, task.DueTime)
	}
}

// Message returns the toast text for a due condition.
func (m DueTaskMsg) Message() string {
	_, body := describe(m.Task, m.Condition)
	switch m.Condition {
	case ConditionDueSoon:
		return "Due soon: " + body
	case ConditionDueNow:
		return "Due now: " + body
	default:
		return "Overdue: " + body
	}
}

// sendResult sends a message on the result channel without blocking.
func (s *Scheduler) sendResult(msg tea.Msg) {
	select {
	case s.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the scheduler.
	}
}

// waitForResult returns a tea.Cmd that waits for the next result from
// the result channel.
func (s *Scheduler) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-s.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next due-task
// message. Call this after processing a DueTaskMsg to keep listening.
func (s *Scheduler) WaitForNextResult() tea.Cmd {
	return s.waitForResult()
}
