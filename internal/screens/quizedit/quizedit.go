// Package quizedit is the quiz editor: the quiz header, its questions with
// their options, and the result mappings, each in its own pane.
package quizedit

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/quiz"
	"github.com/abhisek/dermaquiz/internal/screen"
	"github.com/abhisek/dermaquiz/internal/ui/components"
	"github.com/abhisek/dermaquiz/internal/ui/layout"
)

type pane int

const (
	paneQuiz pane = iota
	paneQuestions
	paneResults
	paneCount
)

func (p pane) String() string {
	switch p {
	case paneQuiz:
		return "Quiz"
	case paneQuestions:
		return "Questions"
	case paneResults:
		return "Results"
	}
	return ""
}

// field being typed into. For result ranges the draft is stashed instead
// of committed.
type field struct {
	key   editor.Key
	field editor.Field
	input components.TextInput
}

// prompt collects text for something that does not exist yet.
type prompt struct {
	label  string
	input  components.TextInput
	submit func(value string) tea.Cmd
}

// line is one row of the questions pane.
type line struct {
	question quiz.Question
	option   *quiz.Option
}

func (l line) key() editor.Key {
	if l.option != nil {
		return editor.Key{Kind: editor.KindOption, ID: l.option.ID}
	}
	return editor.Key{Kind: editor.KindQuestion, ID: l.question.ID}
}

type Screen struct {
	shell *editor.Shell
	model *editor.Model

	pane       pane
	quizCursor int
	lineCursor int
	cardCursor int
	section    int

	editing *field
	prompt  *prompt
	confirm *components.Confirm
	picker  *components.Menu

	loadErr error
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
)

func New(shell *editor.Shell) *Screen {
	return &Screen{shell: shell, model: editor.NewModel(), pane: paneQuestions}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	if snap := s.model.Snapshot(); snap != nil {
		return snap.Quiz.Name
	}
	return "Quiz"
}

func (s *Screen) CapturesInput() bool {
	return s.editing != nil || s.prompt != nil || s.confirm != nil || s.picker != nil
}

func (s *Screen) quizKey() editor.Key {
	return editor.Key{Kind: editor.KindQuiz, ID: s.shell.QuizID()}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.loadErr = msg.err
			return s, errorToast(msg.err)
		}
		s.loadErr = nil
		s.model.Apply(msg.snap)
		s.clamp()
		return s, nil

	case savedMsg:
		return s, s.finish(msg)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	// Blink and other input messages go to whichever field is open.
	var cmd tea.Cmd
	switch {
	case s.editing != nil:
		s.editing.input, cmd = s.editing.input.Update(msg)
	case s.prompt != nil:
		s.prompt.input, cmd = s.prompt.input.Update(msg)
	}
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case s.confirm != nil:
		cmd := s.confirm.Update(msg)
		if s.confirm.Done() {
			s.confirm = nil
		}
		return cmd
	case s.picker != nil:
		return s.handlePicker(msg)
	case s.editing != nil:
		return s.handleEditing(msg)
	case s.prompt != nil:
		return s.handlePrompt(msg)
	}

	if !s.model.Loaded() {
		if msg.String() == "r" {
			return s.load()
		}
		return nil
	}

	switch msg.String() {
	case "tab":
		s.pane = (s.pane + 1) % paneCount
		return nil
	case "shift+tab":
		s.pane = (s.pane + paneCount - 1) % paneCount
		return nil
	case "r":
		// A reload would overwrite the snapshot the pending save returns.
		if s.model.Busy() {
			return components.Toast(components.ToastInfo, "Still saving")
		}
		return s.load()
	}

	switch s.pane {
	case paneQuiz:
		return s.quizKeys(msg)
	case paneQuestions:
		return s.questionKeys(msg)
	case paneResults:
		return s.resultKeys(msg)
	}
	return nil
}

// handleEditing routes keys while a field is open. Enter and Tab commit,
// Esc discards the draft.
func (s *Screen) handleEditing(msg tea.KeyPressMsg) tea.Cmd {
	ed := s.editing
	switch msg.String() {
	case "esc":
		s.model.Cancel(ed.key)
		s.editing = nil
		return nil
	case "enter", "tab":
		s.model.SetDraft(ed.key, ed.field, ed.input.Value())
		s.editing = nil
		if ed.key.Kind == editor.KindResult {
			s.model.Stash(ed.key)
			return nil
		}
		return s.commit(ed.key)
	}
	var cmd tea.Cmd
	ed.input, cmd = ed.input.Update(msg)
	s.model.SetDraft(ed.key, ed.field, ed.input.Value())
	return cmd
}

func (s *Screen) handlePrompt(msg tea.KeyPressMsg) tea.Cmd {
	p := s.prompt
	switch msg.String() {
	case "esc":
		s.prompt = nil
		return nil
	case "enter":
		s.prompt = nil
		return p.submit(p.input.Value())
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// edit opens a text field on key. A draft left by a failed save is shown
// instead of current.
func (s *Screen) edit(key editor.Key, f editor.Field, current string, kind components.InputKind) tea.Cmd {
	if err := s.model.Begin(key, f, current); err != nil {
		return components.ErrorToast(err)
	}
	in := components.NewTextInput(string(f), s.model.Value(key, f, current), kind)
	s.editing = &field{key: key, field: f, input: in}
	return in.Init()
}

// set writes value into a field in one step, for toggles and selectors.
func (s *Screen) set(key editor.Key, f editor.Field, current, value string) tea.Cmd {
	if err := s.model.Begin(key, f, current); err != nil {
		return components.ErrorToast(err)
	}
	s.model.SetDraft(key, f, value)
	return s.commit(key)
}

func (s *Screen) commit(key editor.Key) tea.Cmd {
	e, err := s.model.Commit(key)
	if err != nil {
		return components.ErrorToast(err)
	}
	snap := s.model.Snapshot()
	return run(key, "", func(ctx context.Context) (*editor.Snapshot, error) {
		return s.shell.Commit(ctx, snap, e)
	})
}

func (s *Screen) ask(label string, kind components.InputKind, submit func(string) tea.Cmd) tea.Cmd {
	in := components.NewTextInput(label, "", kind)
	s.prompt = &prompt{label: label, input: in, submit: submit}
	return in.Init()
}

// clamp keeps the cursors inside the current snapshot.
func (s *Screen) clamp() {
	snap := s.model.Snapshot()
	if snap == nil {
		return
	}
	if n := len(s.lines()); s.lineCursor >= n {
		s.lineCursor = max(n-1, 0)
	}
	if n := len(snap.Configured()); s.cardCursor >= n {
		s.cardCursor = max(n-1, 0)
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirm != nil:
		return []layout.KeyHint{{Key: "y", Description: "Confirm"}, {Key: "n", Description: "Cancel"}}
	case s.picker != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Add"}, {Key: "Esc", Description: "Cancel"}}
	case s.editing != nil, s.prompt != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}, {Key: "Esc", Description: "Cancel"}}
	}

	hints := []layout.KeyHint{{Key: "Tab", Description: "Pane"}}
	switch s.pane {
	case paneQuiz:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Edit"})
	case paneQuestions:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Edit"},
			layout.KeyHint{Key: "s", Description: "Section/Score"},
			layout.KeyHint{Key: "a", Description: "Question"},
			layout.KeyHint{Key: "o", Description: "Option"},
			layout.KeyHint{Key: "x", Description: "Delete"},
		)
	case paneResults:
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Section"},
			layout.KeyHint{Key: "Enter", Description: "Edit"},
			layout.KeyHint{Key: "w", Description: "Save"},
			layout.KeyHint{Key: "a", Description: "Add"},
			layout.KeyHint{Key: "x", Description: "Delete"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}
