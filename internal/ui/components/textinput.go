package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// InputKind restricts what a TextInput accepts.
type InputKind int

const (
	KindText InputKind = iota
	// KindInteger accepts digits and a minus sign.
	KindInteger
	// KindRange accepts what a "min-max" score range may contain.
	KindRange
)

// TextInput wraps bubbles/textinput with per-kind key filtering.
type TextInput struct {
	Model textinput.Model
	Kind  InputKind
}

func NewTextInput(placeholder, value string, kind InputKind) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 500
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return TextInput{Model: ti, Kind: kind}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.Text != "" && !t.accepts(k.Text) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) accepts(s string) bool {
	var allowed string
	switch t.Kind {
	case KindInteger:
		allowed = "-0123456789"
	case KindRange:
		allowed = "-0123456789 "
	default:
		return true
	}
	return strings.Trim(s, allowed) == ""
}

func (t TextInput) View() string {
	return t.Model.View()
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// IntValue parses the input as an integer.
func (t TextInput) IntValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}
