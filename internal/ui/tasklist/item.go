package tasklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering. The engine owns
// search, so the built-in list filter stays disabled; this satisfies the
// list.Item interface.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{i.Task.Priority}
	if i.Task.Category != "" {
		parts = append(parts, i.Task.Category)
	}
	if i.Task.DueDate != "" {
		parts = append(parts, i.Task.DueDate)
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	taskItem, ok := item.(TaskItem)
	if !ok {
		return
	}

	task := taskItem.Task
	isSelected := index == m.Index()

	var prefix string
	if task.Completed {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	pin := ""
	if task.Pinned {
		pin = theme.PinStyle.Render("⚑ ")
	}

	priBadge := theme.PriorityStyle(task.Priority).Render(priorityLabel(task.Priority))

	category := ""
	if task.Category != "" {
		category = theme.CategoryStyle(task.Category).Render(task.Category)
	}

	due := ""
	if task.DueDate != "" {
		text := " " + task.DueDate
		if task.DueTime != "" {
			text += " " + task.DueTime
		}
		due = theme.DueStyle.Render(text)
	}

	line := fmt.Sprintf("%s %s%s %s%s%s", prefix, pin, priBadge, task.Title, category, due)

	if task.Completed {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel returns the short badge text for a priority.
func priorityLabel(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "[H]"
	case model.PriorityLow:
		return "[L]"
	default:
		return "[M]"
	}
}
