package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// maxDueDate sorts after any real YYYY-MM-DD value, so tasks without a due
// date always land at the end of a date-ascending sort.
const maxDueDate = "9999-12-31"

// Visible computes the display list for the current state: filter by
// status, then category, then search term, then stable-sort with pinned
// tasks first. The input state is not modified.
func Visible(s State, now time.Time) []model.Task {
	today := model.LocalDate(now)

	filtered := make([]model.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if !matchesFilter(t, s.Filter, today) {
			continue
		}
		if s.CategoryFilter != "" && t.Category != s.CategoryFilter {
			continue
		}
		if !matchesSearch(t, s.SearchTerm) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return less(filtered[i], filtered[j], s.SortBy, s.SortOrder)
	})

	return filtered
}

func matchesFilter(t model.Task, filter, today string) bool {
	switch filter {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterToday:
		return t.DueDate == today
	default:
		return true
	}
}

func matchesSearch(t model.Task, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// less orders a before b. Pinned tasks precede unpinned ones independent of
// the sort order; within each group the base comparison follows sortBy and
// is negated for descending order.
func less(a, b model.Task, sortBy, sortOrder string) bool {
	if a.Pinned != b.Pinned {
		return a.Pinned
	}

	cmp := 0
	switch sortBy {
	case SortByPriority:
		// Higher weight first in the base comparison, so "asc" means
		// high-priority-first. Intentional polarity.
		cmp = model.PriorityWeight(b.Priority) - model.PriorityWeight(a.Priority)
	default:
		cmp = strings.Compare(dueDateOrMax(a), dueDateOrMax(b))
	}

	if sortOrder == SortDesc {
		cmp = -cmp
	}
	return cmp < 0
}

func dueDateOrMax(t model.Task) string {
	if t.DueDate == "" {
		return maxDueDate
	}
	return t.DueDate
}
