package notify

import (
	"testing"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// recordingNotifier captures system notifications for assertions.
type recordingNotifier struct {
	granted bool
	titles  []string
}

func (n *recordingNotifier) RequestPermission() bool { return n.granted }

func (n *recordingNotifier) Notify(title, _ string) error {
	n.titles = append(n.titles, title)
	return nil
}

func newTestScheduler(tasks []model.Task, granted bool) (*Scheduler, *recordingNotifier) {
	n := &recordingNotifier{granted: granted}
	s := New(func() []model.Task { return tasks }, n, time.Minute)
	s.granted = granted
	return s, n
}

// drain collects every message currently buffered on the result channel.
func drain(s *Scheduler) []DueTaskMsg {
	var msgs []DueTaskMsg
	for {
		select {
		case msg := <-s.resultCh:
			if due, ok := msg.(DueTaskMsg); ok {
				msgs = append(msgs, due)
			}
		default:
			return msgs
		}
	}
}

func localTime(hour, minute int) time.Time {
	return time.Date(2024, 6, 15, hour, minute, 30, 0, time.Local)
}

func dueTask(id int64, dueTime string) model.Task {
	return model.Task{
		ID:      id,
		Title:   "deadline",
		DueDate: model.LocalDate(localTime(12, 0)),
		DueTime: dueTime,
	}
}

func TestTickEmitsDueSoonOnceAtOneMinuteBefore(t *testing.T) {
	s, n := newTestScheduler([]model.Task{dueTask(1, "14:00")}, true)

	s.tick(localTime(13, 59))

	msgs := drain(s)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Condition != ConditionDueSoon {
		t.Fatalf("expected due_soon, got %s", msgs[0].Condition)
	}
	if len(n.titles) != 1 {
		t.Fatalf("expected 1 system notification, got %d", len(n.titles))
	}

	// Second tick with the clock unchanged: the condition key has fired.
	s.tick(localTime(13, 59))
	if msgs := drain(s); len(msgs) != 0 {
		t.Fatalf("expected no repeat, got %d messages", len(msgs))
	}
}

func TestTickConditionsAreMutuallyExclusive(t *testing.T) {
	cases := []struct {
		nowMinute int
		want      Condition
	}{
		{59, ConditionDueSoon}, // 13:59, due 14:00
		{0, ConditionDueNow},   // 14:00
		{1, ConditionOverdue},  // 14:01
	}

	for _, tc := range cases {
		s, _ := newTestScheduler([]model.Task{dueTask(1, "14:00")}, true)

		hour := 14
		if tc.nowMinute == 59 {
			hour = 13
		}
		s.tick(localTime(hour, tc.nowMinute))

		msgs := drain(s)
		if len(msgs) != 1 {
			t.Fatalf("minute %d: expected 1 message, got %d", tc.nowMinute, len(msgs))
		}
		if msgs[0].Condition != tc.want {
			t.Fatalf("minute %d: expected %s, got %s", tc.nowMinute, tc.want, msgs[0].Condition)
		}
	}
}

func TestTickSkipsCompletedAndUndatedTasks(t *testing.T) {
	done := dueTask(1, "14:00")
	done.Completed = true

	noTime := dueTask(2, "")

	otherDay := dueTask(3, "14:00")
	otherDay.DueDate = "2020-01-01"

	s, _ := newTestScheduler([]model.Task{done, noTime, otherDay}, true)
	s.tick(localTime(13, 59))

	if msgs := drain(s); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}

func TestTickOutsideWindowIsQuiet(t *testing.T) {
	s, _ := newTestScheduler([]model.Task{dueTask(1, "14:00")}, true)

	s.tick(localTime(13, 57))
	s.tick(localTime(14, 3))

	if msgs := drain(s); len(msgs) != 0 {
		t.Fatalf("expected no messages outside the window, got %d", len(msgs))
	}
}

func TestTickWithoutPermissionSkipsSystemNotification(t *testing.T) {
	s, n := newTestScheduler([]model.Task{dueTask(1, "14:00")}, false)

	s.tick(localTime(13, 59))

	// The in-app message still goes out; only the system call is skipped.
	if msgs := drain(s); len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if len(n.titles) != 0 {
		t.Fatalf("expected no system notifications, got %d", len(n.titles))
	}
}

func TestRescheduledTaskFiresAgain(t *testing.T) {
	task := dueTask(1, "14:00")
	tasks := []model.Task{task}
	s, _ := newTestScheduler(nil, true)
	s.tasks = func() []model.Task { return tasks }

	s.tick(localTime(13, 59))
	if msgs := drain(s); len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}

	// Move the due time: a new condition key, so a new reminder.
	tasks[0].DueTime = "15:00"
	s.tick(localTime(14, 59))
	if msgs := drain(s); len(msgs) != 1 {
		t.Fatalf("expected 1 message after reschedule, got %d", len(msgs))
	}
}

func TestEvaluateRejectsMalformedDueTime(t *testing.T) {
	task := dueTask(1, "25:99")
	if _, ok := evaluate(task, localTime(13, 59)); ok {
		t.Fatalf("expected malformed due time to be ignored")
	}
}
