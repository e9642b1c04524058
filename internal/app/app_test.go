package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/dermaquiz/internal/router"
	"github.com/abhisek/dermaquiz/internal/screen"
	"github.com/abhisek/dermaquiz/internal/ui/components"
)

type stubScreen struct {
	title     string
	capturing bool
	keys      []string
}

func (s *stubScreen) Init() tea.Cmd { return nil }

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}

func (s *stubScreen) View(int, int) string { return "content of " + s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) CapturesInput() bool  { return s.capturing }

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestEscPopsUnlessCapturing(t *testing.T) {
	root := &stubScreen{title: "Quizzes"}
	editor := &stubScreen{title: "Editor"}
	m := newAppModel(root, "http://localhost:8080/api", nil)
	m, _ = update(m, router.PushScreenMsg{Screen: editor})

	editor.capturing = true
	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"esc"}, editor.keys)

	editor.capturing = false
	m, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m, _ = update(m, cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestQQuitsAtRoot(t *testing.T) {
	m := newAppModel(&stubScreen{title: "Quizzes"}, "", nil)
	_, cmd := update(m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestToastShownUntilExpired(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := newAppModel(&stubScreen{title: "Quizzes"}, "http://api.test", zap.New(core))
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	toast := components.Toast(components.ToastError, "quiz not found")().(components.ToastMsg)
	m, cmd := update(m, toast)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.render(), "quiz not found")
	assert.Equal(t, 1, logs.Len())

	// A stale expiry does not clear a newer toast.
	m, _ = update(m, components.ToastExpiredMsg{ID: toast.ID + 100})
	assert.NotNil(t, m.toast)

	m, _ = update(m, components.ToastExpiredMsg{ID: toast.ID})
	assert.Nil(t, m.toast)
	assert.NotContains(t, m.render(), "quiz not found")
}

func TestViewShowsHostAndTitle(t *testing.T) {
	m := newAppModel(&stubScreen{title: "Quizzes"}, "http://api.test", nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	content := m.render()
	assert.Contains(t, content, "Quizzes")
	assert.Contains(t, content, "http://api.test")
	assert.Contains(t, content, "content of Quizzes")
}
