package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/ganttd/internal/scheduler"
	"github.com/sandeepkv93/ganttd/internal/views"
)

func waitForExpiryCmd(ch <-chan scheduler.ExpiryEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ToastExpiredMsg{Event: ev}
	}
}

// pushToast shows a transient notice and schedules its expiry. Without a
// scheduler toasts stay until pushed out by newer ones.
func (m *Model) pushToast(text string, isErr bool) {
	m.toastSeq++
	toast := Toast{
		ID:       fmt.Sprintf("toast-%d", m.toastSeq),
		Text:     text,
		IsError:  isErr,
		ExpireAt: m.now().Add(m.toastTTL),
	}
	m.Toasts = append(m.Toasts, toast)
	if len(m.Toasts) > maxToasts {
		for _, old := range m.Toasts[:len(m.Toasts)-maxToasts] {
			m.cancelToast(old.ID)
		}
		m.Toasts = append([]Toast(nil), m.Toasts[len(m.Toasts)-maxToasts:]...)
	}
	if m.Scheduler == nil || m.toastTTL <= 0 {
		return
	}
	if err := m.Scheduler.Schedule(scheduler.ExpiryEvent{ID: toast.ID, ExpireAt: toast.ExpireAt}); err != nil {
		m.Logger.Warn("schedule toast expiry", "toast", toast.ID, "error", err)
	}
}

func (m *Model) cancelToast(id string) {
	if m.Scheduler != nil {
		m.Scheduler.Cancel(id)
	}
}

func (m *Model) dismissToast(id string) bool {
	for i, t := range m.Toasts {
		if t.ID == id {
			m.Toasts = append(m.Toasts[:i:i], m.Toasts[i+1:]...)
			return true
		}
	}
	return false
}

func (m Model) toastViews() []views.ToastData {
	out := make([]views.ToastData, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		out = append(out, views.ToastData{Text: t.Text, IsError: t.IsError})
	}
	return out
}
