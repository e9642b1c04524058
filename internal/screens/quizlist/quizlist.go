// Package quizlist is the TUI's root screen: the quiz sets on the backend.
package quizlist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dermaquiz/internal/quiz"
	"github.com/abhisek/dermaquiz/internal/router"
	"github.com/abhisek/dermaquiz/internal/screen"
	"github.com/abhisek/dermaquiz/internal/ui/components"
	"github.com/abhisek/dermaquiz/internal/ui/layout"
	"github.com/abhisek/dermaquiz/internal/ui/theme"
)

// Lister is the slice of the API client this screen uses.
type Lister interface {
	ListQuizzes(ctx context.Context) ([]quiz.QuizSet, error)
	CreateQuiz(ctx context.Context, qs quiz.QuizSet) (*quiz.QuizSet, error)
	DeleteQuiz(ctx context.Context, id int64) error
}

// OpenFunc builds the editor screen for a quiz.
type OpenFunc func(id int64) screen.Screen

type loadedMsg struct {
	quizzes []quiz.QuizSet
	err     error
}

type createdMsg struct {
	quiz *quiz.QuizSet
	err  error
}

type deletedMsg struct {
	name string
	err  error
}

type Screen struct {
	client  Lister
	open    OpenFunc
	quizzes []quiz.QuizSet
	menu    components.Menu
	loaded  bool
	err     error

	naming  *components.TextInput
	confirm *components.Confirm
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
	_ screen.Resumer         = (*Screen)(nil)
)

func New(client Lister, open OpenFunc) *Screen {
	return &Screen{client: client, open: open}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

// Resume reloads so renames and default changes made in the editor show up.
func (s *Screen) Resume() tea.Cmd {
	return s.load()
}

func (s *Screen) load() tea.Cmd {
	return func() tea.Msg {
		qs, err := s.client.ListQuizzes(context.Background())
		return loadedMsg{quizzes: qs, err: err}
	}
}

func (s *Screen) Title() string { return "Quizzes" }

func (s *Screen) CapturesInput() bool {
	return s.naming != nil || s.confirm != nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.naming != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Create"}, {Key: "Esc", Description: "Cancel"}}
	case s.confirm != nil:
		return []layout.KeyHint{{Key: "y", Description: "Delete"}, {Key: "n", Description: "Keep"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Edit"},
		{Key: "n", Description: "New"},
		{Key: "d", Description: "Delete"},
		{Key: "r", Description: "Reload"},
		{Key: "q", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.err = msg.err
		if msg.err == nil {
			s.setQuizzes(msg.quizzes)
		}
		return s, nil

	case createdMsg:
		if msg.err != nil {
			return s, components.ErrorToast(msg.err)
		}
		return s, tea.Batch(
			components.Toast(components.ToastSuccess, fmt.Sprintf("Created %q", msg.quiz.Name)),
			router.Push(s.open(msg.quiz.ID)),
		)

	case deletedMsg:
		if msg.err != nil {
			return s, tea.Batch(components.ErrorToast(msg.err), s.load())
		}
		return s, tea.Batch(components.Toast(components.ToastSuccess, fmt.Sprintf("Deleted %q", msg.name)), s.load())

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.naming != nil {
		var cmd tea.Cmd
		*s.naming, cmd = s.naming.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.confirm != nil {
		cmd := s.confirm.Update(msg)
		if s.confirm.Done() {
			s.confirm = nil
		}
		return cmd
	}
	if s.naming != nil {
		return s.handleNaming(msg)
	}

	switch msg.String() {
	case "n":
		in := components.NewTextInput("Quiz name", "", components.KindText)
		s.naming = &in
		return in.Init()
	case "d", "x":
		if q, ok := s.selected(); ok {
			s.confirm = components.NewConfirm(fmt.Sprintf("Delete %q and everything in it?", q.Name), func() tea.Cmd {
				return s.delete(q)
			})
		}
		return nil
	case "r":
		return s.load()
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return cmd
}

func (s *Screen) handleNaming(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.naming = nil
		return nil
	case "enter":
		name := strings.TrimSpace(s.naming.Value())
		qs, err := quiz.NewQuizSet(name, false)
		if err != nil {
			return components.ErrorToast(err)
		}
		s.naming = nil
		return func() tea.Msg {
			created, err := s.client.CreateQuiz(context.Background(), qs)
			return createdMsg{quiz: created, err: err}
		}
	}
	var cmd tea.Cmd
	*s.naming, cmd = s.naming.Update(msg)
	return cmd
}

func (s *Screen) delete(q quiz.QuizSet) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{name: q.Name, err: s.client.DeleteQuiz(context.Background(), q.ID)}
	}
}

func (s *Screen) selected() (quiz.QuizSet, bool) {
	if _, ok := s.menu.Current(); !ok {
		return quiz.QuizSet{}, false
	}
	return s.quizzes[s.menu.Selected], true
}

// setQuizzes rebuilds the menu, keeping the cursor on the same quiz when
// it still exists.
func (s *Screen) setQuizzes(qs []quiz.QuizSet) {
	var keep int64
	if cur, ok := s.selected(); ok {
		keep = cur.ID
	}
	s.quizzes = qs
	items := make([]components.MenuItem, len(qs))
	for i, q := range qs {
		item := components.MenuItem{Label: q.Name, Action: func() tea.Cmd {
			return router.Push(s.open(q.ID))
		}}
		if q.IsDefault {
			item.Badge = "default"
		}
		items[i] = item
	}
	s.menu = components.NewMenu(items)
	for i, q := range qs {
		if q.ID == keep {
			s.menu.Select(i)
		}
	}
}

func (s *Screen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading quizzes...")
	case s.err != nil:
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s\n\nPress r to retry.", s.err))
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Quiz sets"))
	b.WriteString("\n\n")
	if len(s.quizzes) == 0 {
		b.WriteString(theme.Dim.Italic(true).Render("No quizzes yet. Press n to create one."))
		b.WriteString("\n")
	} else {
		b.WriteString(s.menu.View())
	}

	switch {
	case s.naming != nil:
		b.WriteString("\n" + theme.Body.Render("New quiz: ") + s.naming.View())
	case s.confirm != nil:
		b.WriteString("\n" + s.confirm.View())
	}
	return theme.Card.Width(min(width-4, 72)).Render(b.String())
}
