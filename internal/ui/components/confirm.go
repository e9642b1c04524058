package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dermaquiz/internal/ui/theme"
)

// Confirm is an inline yes/no prompt. OnYes runs on y or enter; n and esc
// dismiss it.
type Confirm struct {
	Prompt string
	OnYes  func() tea.Cmd
	done   bool
}

func NewConfirm(prompt string, onYes func() tea.Cmd) *Confirm {
	return &Confirm{Prompt: prompt, OnYes: onYes}
}

// Done reports whether the prompt was answered either way.
func (c *Confirm) Done() bool { return c.done }

func (c *Confirm) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || c.done {
		return nil
	}
	switch k.String() {
	case "y", "Y", "enter":
		c.done = true
		if c.OnYes != nil {
			return c.OnYes()
		}
	case "n", "N", "esc":
		c.done = true
	}
	return nil
}

func (c *Confirm) View() string {
	return theme.ToastError.Render(c.Prompt) + theme.Hint.Render("  [y/n]")
}
