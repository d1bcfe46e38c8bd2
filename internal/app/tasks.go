package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/engine"
	"github.com/nhle/taskflow/internal/model"
)

// createTask assigns an ID to a submitted draft and adds it. A blank title
// is rejected with an error toast and no task is created.
func (m *Model) createTask(draft model.Task) tea.Cmd {
	if strings.TrimSpace(draft.Title) == "" {
		return m.dispatch(engine.AddToast{
			Message: "A task needs a title.",
			Type:    engine.ToastError,
		})
	}

	draft.ID = model.NextTaskID(m.state.Tasks, time.Now())
	addCmd := m.dispatch(engine.AddTask{Task: draft})
	toastCmd := m.dispatch(engine.AddToast{
		Message: "Task added.",
		Type:    engine.ToastSuccess,
	})
	return tea.Batch(addCmd, toastCmd)
}

// editTask applies a full edit of an existing task.
func (m *Model) editTask(task model.Task) tea.Cmd {
	if strings.TrimSpace(task.Title) == "" {
		return m.dispatch(engine.AddToast{
			Message: "A task needs a title.",
			Type:    engine.ToastError,
		})
	}

	patch := engine.TaskPatch{
		ID:          task.ID,
		Title:       &task.Title,
		Description: &task.Description,
		Priority:    &task.Priority,
		Category:    &task.Category,
		DueDate:     &task.DueDate,
		DueTime:     &task.DueTime,
	}
	updateCmd := m.dispatch(engine.UpdateTask{Patch: patch})
	toastCmd := m.dispatch(engine.AddToast{
		Message: "Task updated.",
		Type:    engine.ToastSuccess,
	})
	return tea.Batch(updateCmd, toastCmd)
}
