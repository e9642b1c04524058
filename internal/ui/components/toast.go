package components

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dermaquiz/internal/ui/theme"
)

type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// ToastDuration is how long a toast stays in the footer.
const ToastDuration = 4 * time.Second

var toastSeq atomic.Uint64

// ToastMsg asks the app to show a transient status line.
type ToastMsg struct {
	ID   uint64
	Kind ToastKind
	Text string
}

// ToastExpiredMsg clears the toast with the same ID if it is still shown.
type ToastExpiredMsg struct {
	ID uint64
}

// Toast returns a command that emits a ToastMsg.
func Toast(kind ToastKind, text string) tea.Cmd {
	msg := ToastMsg{ID: toastSeq.Add(1), Kind: kind, Text: text}
	return func() tea.Msg { return msg }
}

// ErrorToast is Toast(ToastError, err.Error()).
func ErrorToast(err error) tea.Cmd {
	return Toast(ToastError, err.Error())
}

// Expire schedules the ToastExpiredMsg for m.
func (m ToastMsg) Expire() tea.Cmd {
	id := m.ID
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

func (m ToastMsg) View() string {
	switch m.Kind {
	case ToastError:
		return theme.ToastError.Render("✗ " + m.Text)
	case ToastSuccess:
		return theme.ToastSuccess.Render("✓ " + m.Text)
	default:
		return theme.ToastInfo.Render(m.Text)
	}
}
