package engine

import (
	"testing"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

func TestAddThenDeleteLeavesOthersInOrder(t *testing.T) {
	s := NewState()
	for _, id := range []int64{1, 2, 3} {
		s = Reduce(s, AddTask{Task: model.Task{ID: id, Title: "task"}}, testNow)
	}

	s = Reduce(s, DeleteTask{ID: 2}, testNow)

	if len(s.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(s.Tasks))
	}
	if s.Tasks[0].ID != 1 || s.Tasks[1].ID != 3 {
		t.Fatalf("unexpected order: %d, %d", s.Tasks[0].ID, s.Tasks[1].ID)
	}
}

func TestDeleteMissingIDIsNoOp(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddTask{Task: model.Task{ID: 1}}, testNow)

	s = Reduce(s, DeleteTask{ID: 42}, testNow)

	if len(s.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(s.Tasks))
	}
}

func TestToggleCompleteIsInvolution(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddTask{Task: model.Task{ID: 7, Completed: false}}, testNow)

	s = Reduce(s, ToggleComplete{ID: 7}, testNow)
	if !s.Tasks[0].Completed {
		t.Fatalf("expected completed after first toggle")
	}

	s = Reduce(s, ToggleComplete{ID: 7}, testNow)
	if s.Tasks[0].Completed {
		t.Fatalf("expected not completed after second toggle")
	}
}

func TestTogglePin(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddTask{Task: model.Task{ID: 7}}, testNow)

	s = Reduce(s, TogglePin{ID: 7}, testNow)
	if !s.Tasks[0].Pinned {
		t.Fatalf("expected pinned")
	}
}

func TestUpdateTaskMergesOnlyPatchedFields(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddTask{Task: model.Task{
		ID:       1,
		Title:    "original",
		Priority: model.PriorityLow,
		DueDate:  "2024-06-20",
	}}, testNow)

	title := "renamed"
	pri := model.PriorityHigh
	s = Reduce(s, UpdateTask{Patch: TaskPatch{ID: 1, Title: &title, Priority: &pri}}, testNow)

	got := s.Tasks[0]
	if got.Title != "renamed" || got.Priority != model.PriorityHigh {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.DueDate != "2024-06-20" {
		t.Fatalf("unpatched field changed: %q", got.DueDate)
	}
}

func TestFilterAndCategoryFilterAreMutuallyExclusive(t *testing.T) {
	s := NewState()

	s = Reduce(s, SetFilter{Filter: FilterToday}, testNow)
	s = Reduce(s, SetCategoryFilter{Category: model.CategoryWork}, testNow)

	if s.Filter != FilterAll {
		t.Fatalf("expected filter reset to all, got %q", s.Filter)
	}
	if s.CategoryFilter != model.CategoryWork {
		t.Fatalf("expected category filter work, got %q", s.CategoryFilter)
	}

	s = Reduce(s, SetFilter{Filter: FilterActive}, testNow)
	if s.CategoryFilter != "" {
		t.Fatalf("expected category filter cleared, got %q", s.CategoryFilter)
	}
}

func TestLogoutResetsEverything(t *testing.T) {
	s := NewState()
	s = Reduce(s, SetUserName{Name: "Dana"}, testNow)
	s = Reduce(s, AddTask{Task: model.Task{ID: 1}}, testNow)
	s = Reduce(s, SetSearch{Term: "x"}, testNow)

	s = Reduce(s, Logout{}, testNow)

	if s.UserName != "" || len(s.Tasks) != 0 || s.SearchTerm != "" {
		t.Fatalf("state not reset: %+v", s)
	}
	if s.Filter != FilterAll || s.SortBy != SortByDate || s.SortOrder != SortAsc {
		t.Fatalf("defaults not restored: %+v", s)
	}
}

type unknownAction struct{}

func (unknownAction) isAction() {}

func TestUnknownActionIsNoOp(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddTask{Task: model.Task{ID: 1, Title: "keep"}}, testNow)

	got := Reduce(s, unknownAction{}, testNow)

	if len(got.Tasks) != 1 || got.Tasks[0].Title != "keep" {
		t.Fatalf("unknown action changed state: %+v", got)
	}
}

func TestAddToastGeneratesUniqueTimestampIDs(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddToast{Message: "one", Type: ToastInfo}, testNow)
	s = Reduce(s, AddToast{Message: "two", Type: ToastError}, testNow)

	if len(s.Toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(s.Toasts))
	}
	if s.Toasts[0].ID == s.Toasts[1].ID {
		t.Fatalf("expected distinct toast IDs, both %d", s.Toasts[0].ID)
	}
	if s.Toasts[0].ID != testNow.UnixMilli() {
		t.Fatalf("expected timestamp-based ID, got %d", s.Toasts[0].ID)
	}
}

func TestRemoveToastIsIdempotent(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddToast{Message: "one", Type: ToastInfo}, testNow)
	id := s.Toasts[0].ID

	s = Reduce(s, RemoveToast{ID: id}, testNow)
	s = Reduce(s, RemoveToast{ID: id}, testNow)

	if len(s.Toasts) != 0 {
		t.Fatalf("expected no toasts, got %d", len(s.Toasts))
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := NewState()
	s = Reduce(s, AddTask{Task: model.Task{ID: 1, Completed: false}}, testNow)

	_ = Reduce(s, ToggleComplete{ID: 1}, testNow)

	if s.Tasks[0].Completed {
		t.Fatalf("input state was mutated")
	}
}

func TestTouchesTasks(t *testing.T) {
	touching := []Action{
		AddTask{}, UpdateTask{}, DeleteTask{}, ToggleComplete{},
		TogglePin{}, SetTasks{}, Logout{},
	}
	for _, a := range touching {
		if !TouchesTasks(a) {
			t.Fatalf("expected %T to touch tasks", a)
		}
	}

	inert := []Action{SetFilter{}, SetSearch{}, AddToast{}, RemoveToast{}, SetUserName{}}
	for _, a := range inert {
		if TouchesTasks(a) {
			t.Fatalf("expected %T not to touch tasks", a)
		}
	}
}
