package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dermaquiz/internal/ui/layout"
)

// Screen is one page of the TUI. The app draws the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the content area only.
	View(width, height int) string
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens with a focused text field. While
// CapturesInput is true the app forwards esc and q instead of navigating.
type InputCapturer interface {
	CapturesInput() bool
}

// Resumer is called when the screen above it is popped.
type Resumer interface {
	Resume() tea.Cmd
}
