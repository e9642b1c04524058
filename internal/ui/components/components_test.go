package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestTextInputIntegerFiltersKeys(t *testing.T) {
	ti := NewTextInput("score", "", KindInteger)
	for _, k := range []string{"-", "a", "1", "x", "2"} {
		ti, _ = ti.Update(press(k))
	}
	assert.Equal(t, "-12", ti.Value())

	n, err := ti.IntValue()
	require.NoError(t, err)
	assert.Equal(t, -12, n)
}

func TestTextInputRangeAllowsSpaces(t *testing.T) {
	ti := NewTextInput("", "", KindRange)
	for _, k := range []string{"1", " ", "-", "q", "5"} {
		ti, _ = ti.Update(press(k))
	}
	assert.Equal(t, "1 -5", ti.Value())
}

func TestTextInputKeepsInitialValue(t *testing.T) {
	ti := NewTextInput("", "oily", KindText)
	ti, _ = ti.Update(press("!"))
	assert.Equal(t, "oily!", ti.Value())
}

func TestMenuSkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b", Action: func() tea.Cmd { picked = "b"; return nil }},
		{Label: "c", Disabled: true},
		{Label: "d", Action: func() tea.Cmd { picked = "d"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(press("down"))
	assert.Equal(t, 3, m.Selected)
	m, _ = m.Update(press("down"))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(press("enter"))
	assert.Equal(t, "d", picked)

	m, _ = m.Update(press("up"))
	assert.Equal(t, 1, m.Selected)
	assert.Contains(t, m.View(), "▸ b")
}

func TestMenuEmpty(t *testing.T) {
	m := NewMenu(nil)
	_, ok := m.Current()
	assert.False(t, ok)
	m, cmd := m.Update(press("enter"))
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())
}

func TestConfirm(t *testing.T) {
	t.Run("yes runs action", func(t *testing.T) {
		ran := false
		c := NewConfirm("Delete?", func() tea.Cmd { ran = true; return nil })
		c.Update(press("y"))
		assert.True(t, ran)
		assert.True(t, c.Done())
	})

	t.Run("esc dismisses", func(t *testing.T) {
		ran := false
		c := NewConfirm("Delete?", func() tea.Cmd { ran = true; return nil })
		c.Update(press("esc"))
		assert.False(t, ran)
		assert.True(t, c.Done())
		c.Update(press("y"))
		assert.False(t, ran)
	})

	t.Run("other keys ignored", func(t *testing.T) {
		c := NewConfirm("Delete?", nil)
		c.Update(press("q"))
		assert.False(t, c.Done())
		assert.Contains(t, c.View(), "Delete?")
	})
}

func TestToast(t *testing.T) {
	msg := Toast(ToastSuccess, "saved")()
	toast, ok := msg.(ToastMsg)
	require.True(t, ok)
	assert.Equal(t, "saved", toast.Text)
	assert.NotZero(t, toast.ID)
	assert.Contains(t, toast.View(), "saved")

	other := Toast(ToastInfo, "x")().(ToastMsg)
	assert.NotEqual(t, toast.ID, other.ID)
	assert.NotNil(t, toast.Expire())
}
