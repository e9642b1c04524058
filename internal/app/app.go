// Package app hosts the Bubble Tea program: the screen stack, the shared
// header and footer, and toasts.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/api"
	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/router"
	"github.com/abhisek/dermaquiz/internal/screen"
	"github.com/abhisek/dermaquiz/internal/screens/quizedit"
	"github.com/abhisek/dermaquiz/internal/screens/quizlist"
	"github.com/abhisek/dermaquiz/internal/ui/components"
	"github.com/abhisek/dermaquiz/internal/ui/layout"
)

// Options configures the dashboard.
type Options struct {
	Client *api.Client
	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	host   string
	log    *zap.Logger
	toast  *components.ToastMsg
	width  int
	height int
}

func newAppModel(root screen.Screen, host string, log *zap.Logger) AppModel {
	if log == nil {
		log = zap.NewNop()
	}
	return AppModel{router: router.New(root), host: host, log: log}
}

// rootScreen is the quiz list; each entry opens an editor with its own
// shell over the same client.
func rootScreen(client *api.Client) screen.Screen {
	return quizlist.New(client, func(id int64) screen.Screen {
		return quizedit.New(editor.NewShell(client, id))
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.ToastMsg:
		if msg.Kind == components.ToastError {
			m.log.Warn("toast", zap.String("screen", m.router.Active().Title()), zap.String("text", msg.Text))
		}
		m.toast = &msg
		return m, msg.Expire()

	case components.ToastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.ID {
			m.toast = nil
		}
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
			break
		}
		switch msg.String() {
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		case "q":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.host, m.width)

	var status string
	if m.toast != nil {
		status = m.toast.View()
	}
	footer := layout.RenderFooter(m.hints(active), status, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the dashboard and blocks until it exits.
func Run(opts Options) error {
	m := newAppModel(rootScreen(opts.Client), opts.Client.BaseURL(), opts.Logger)
	m.log.Info("dashboard started", zap.String("api", m.host))

	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
