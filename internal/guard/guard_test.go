package guard

import (
	"strings"
	"testing"

	"github.com/nhle/taskflow/internal/model"
)

// bulkTasks builds n tasks whose combined serialized size comfortably
// exceeds the given cap when padded is true.
func bulkTasks(n int, padded bool) []model.Task {
	desc := ""
	if padded {
		desc = strings.Repeat("x", 200)
	}
	tasks := make([]model.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, model.Task{
			ID:          int64(1000 + i),
			Title:       "task",
			Description: desc,
		})
	}
	return tasks
}

func TestCheckUnderCapIsNoOp(t *testing.T) {
	g := New(DefaultMaxBytes)
	tasks := bulkTasks(10, false)

	kept, evicted := g.Check(tasks)
	if evicted {
		t.Fatalf("expected no eviction under the cap")
	}
	if len(kept) != 10 {
		t.Fatalf("expected 10 tasks, got %d", len(kept))
	}
}

func TestCheckEvictsOldestTwentyPercent(t *testing.T) {
	// 100 padded tasks serialize well past a 1 KiB cap.
	g := New(1024)
	tasks := bulkTasks(100, true)

	kept, evicted := g.Check(tasks)
	if !evicted {
		t.Fatalf("expected eviction over the cap")
	}
	if len(kept) != 80 {
		t.Fatalf("expected 80 survivors, got %d", len(kept))
	}

	// The 20 lowest IDs are exactly the evicted ones.
	for _, task := range kept {
		if task.ID < 1020 {
			t.Fatalf("task %d should have been evicted", task.ID)
		}
	}
}

func TestCheckPreservesSurvivorOrder(t *testing.T) {
	g := New(1024)
	tasks := bulkTasks(50, true)
	// Shuffle the insertion order a little: move the oldest to the end.
	tasks = append(tasks[1:], tasks[0])

	kept, evicted := g.Check(tasks)
	if !evicted {
		t.Fatalf("expected eviction")
	}
	// floor(50 * 0.2) == 10 evicted, all with the lowest IDs 1000..1009.
	if len(kept) != 40 {
		t.Fatalf("expected 40 survivors, got %d", len(kept))
	}
	// Survivors keep their insertion order.
	for i, task := range kept {
		if task.ID != int64(1010+i) {
			t.Fatalf("survivor %d: expected ID %d, got %d", i, 1010+i, task.ID)
		}
	}
}

func TestCheckDoesNotProtectPinnedTasks(t *testing.T) {
	g := New(1024)
	tasks := bulkTasks(100, true)
	tasks[0].Pinned = true

	kept, evicted := g.Check(tasks)
	if !evicted {
		t.Fatalf("expected eviction")
	}
	for _, task := range kept {
		if task.ID == tasks[0].ID {
			t.Fatalf("pinned task unexpectedly survived eviction")
		}
	}
}

func TestCheckRoundsEvictionCountDown(t *testing.T) {
	g := New(1)
	tasks := bulkTasks(9, true)

	kept, evicted := g.Check(tasks)
	if !evicted {
		t.Fatalf("expected eviction")
	}
	// floor(9 * 0.2) == 1
	if len(kept) != 8 {
		t.Fatalf("expected 8 survivors, got %d", len(kept))
	}
}

func TestNewFallsBackToDefaultCap(t *testing.T) {
	g := New(0)
	if g.MaxBytes != DefaultMaxBytes {
		t.Fatalf("expected default cap, got %d", g.MaxBytes)
	}
}
