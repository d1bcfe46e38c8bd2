package app

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/engine"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/notify"
)

// handleDueTask surfaces a fired reminder as a toast, records it in the
// reminder history, and re-subscribes to the scheduler.
func (m Model) handleDueTask(msg notify.DueTaskMsg) (tea.Model, tea.Cmd) {
	toast := engine.AddToast{
		Message: msg.Message(),
		Type:    engine.ToastWarning,
	}
	if msg.Condition != notify.ConditionDueSoon {
		toast.Type = engine.ToastError
		toast.ActionLabel = "Delete task"
		toast.Action = engine.DeleteTask{ID: msg.Task.ID}
	}

	cmds := []tea.Cmd{
		m.dispatch(toast),
		m.logReminder(msg),
		m.scheduler.WaitForNextResult(),
	}
	return m, tea.Batch(cmds...)
}

// logReminder appends the fired reminder to the history log and reports
// the new unread count.
func (m Model) logReminder(msg notify.DueTaskMsg) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		record := model.Notification{
			TaskID:    msg.Task.ID,
			Condition: string(msg.Condition),
			Message:   msg.Message(),
		}
		if err := m.store.LogNotification(ctx, record); err != nil {
			log.Printf("logging reminder: %v", err)
		}

		count, err := m.store.UnreadNotificationCount(ctx)
		if err != nil {
			log.Printf("counting reminders: %v", err)
			return nil
		}
		return unreadCountMsg{count: count}
	}
}

// fetchUnreadCount reads the unread reminder count from the store.
func (m Model) fetchUnreadCount() tea.Cmd {
	return func() tea.Msg {
		count, err := m.store.UnreadNotificationCount(context.Background())
		if err != nil {
			log.Printf("counting reminders: %v", err)
			return nil
		}
		return unreadCountMsg{count: count}
	}
}

// markRemindersRead clears the unread reminder badge.
func (m Model) markRemindersRead() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.store.MarkAllNotificationsRead(ctx); err != nil {
			log.Printf("marking reminders read: %v", err)
			return nil
		}
		return unreadCountMsg{count: 0}
	}
}
