package store

import (
	"context"
	"testing"

	"github.com/nhle/taskflow/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTaskListRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tasks := []model.Task{
		{ID: 1, Title: "first", Priority: model.PriorityHigh, Pinned: true},
		{ID: 2, Title: "second", DueDate: "2024-06-01", DueTime: "14:00", Completed: true},
	}

	if err := s.Save(ctx, KeyTasks, tasks); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got []model.Task
	if ok := s.Load(ctx, KeyTasks, &got); !ok {
		t.Fatalf("Load: expected ok")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != 1 || got[0].Title != "first" || !got[0].Pinned {
		t.Fatalf("unexpected first task: %+v", got[0])
	}
	if got[1].DueTime != "14:00" || !got[1].Completed {
		t.Fatalf("unexpected second task: %+v", got[1])
	}
}

func TestLoadMissingKeyLeavesDefault(t *testing.T) {
	s := newTestStore(t)

	tasks := []model.Task{{ID: 99, Title: "default"}}
	if ok := s.Load(context.Background(), KeyTasks, &tasks); ok {
		t.Fatalf("expected ok=false for missing key")
	}
	if len(tasks) != 1 || tasks[0].ID != 99 {
		t.Fatalf("default value was clobbered: %+v", tasks)
	}
}

func TestLoadCorruptValueLeavesDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Write garbage straight into the kv table, bypassing Save.
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?)", KeyTasks, "{not json!",
	)
	if err != nil {
		t.Fatalf("inserting corrupt value: %v", err)
	}

	var tasks []model.Task
	if ok := s.Load(ctx, KeyTasks, &tasks); ok {
		t.Fatalf("expected ok=false for corrupt value")
	}
	if tasks != nil {
		t.Fatalf("expected untouched destination, got %+v", tasks)
	}
}

func TestSaveOverwritesExistingKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, KeyUserName, "Alice"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, KeyUserName, "Bob"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var name string
	if ok := s.Load(ctx, KeyUserName, &name); !ok {
		t.Fatalf("Load: expected ok")
	}
	if name != "Bob" {
		t.Fatalf("expected Bob, got %q", name)
	}
}

func TestDeleteClearsKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, KeyUserName, "Alice"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, KeyUserName); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var name string
	if ok := s.Load(ctx, KeyUserName, &name); ok {
		t.Fatalf("expected key gone after delete")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, KeyUserName); err != nil {
		t.Fatalf("Delete absent key: %v", err)
	}
}

func TestNotificationLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, cond := range []string{"due_soon", "due_now"} {
		err := s.LogNotification(ctx, model.Notification{
			TaskID:    int64(i + 1),
			Condition: cond,
			Message:   "reminder",
		})
		if err != nil {
			t.Fatalf("LogNotification: %v", err)
		}
	}

	count, err := s.UnreadNotificationCount(ctx)
	if err != nil {
		t.Fatalf("UnreadNotificationCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	recent, err := s.RecentNotifications(ctx, 10)
	if err != nil {
		t.Fatalf("RecentNotifications: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].ID == "" {
		t.Fatalf("expected generated notification ID")
	}

	if err := s.MarkAllNotificationsRead(ctx); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}
	count, err = s.UnreadNotificationCount(ctx)
	if err != nil {
		t.Fatalf("UnreadNotificationCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread after mark, got %d", count)
	}
}
