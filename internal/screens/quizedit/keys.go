package quizedit

import (
	"context"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/quiz"
	"github.com/abhisek/dermaquiz/internal/ui/components"
)

func (s *Screen) quizKeys(msg tea.KeyPressMsg) tea.Cmd {
	qs := s.model.Snapshot().Quiz
	key := s.quizKey()
	switch msg.String() {
	case "up", "k":
		s.quizCursor = 0
	case "down", "j":
		s.quizCursor = 1
	case "enter", "space", " ":
		if s.quizCursor == 0 {
			return s.edit(key, editor.FieldName, qs.Name, components.KindText)
		}
		cur := strconv.FormatBool(qs.IsDefault)
		return s.set(key, editor.FieldDefault, cur, strconv.FormatBool(!qs.IsDefault))
	}
	return nil
}

// lines flattens questions and their options into the rows of the
// questions pane.
func (s *Screen) lines() []line {
	snap := s.model.Snapshot()
	if snap == nil {
		return nil
	}
	var out []line
	for _, q := range snap.Quiz.Questions {
		out = append(out, line{question: q})
		for i := range q.Options {
			out = append(out, line{question: q, option: &q.Options[i]})
		}
	}
	return out
}

func (s *Screen) questionKeys(msg tea.KeyPressMsg) tea.Cmd {
	lines := s.lines()
	switch msg.String() {
	case "up", "k":
		if s.lineCursor > 0 {
			s.lineCursor--
		}
		return nil
	case "down", "j":
		if s.lineCursor < len(lines)-1 {
			s.lineCursor++
		}
		return nil
	case "a":
		return s.addQuestion(lines)
	}

	if s.lineCursor >= len(lines) {
		return nil
	}
	cur := lines[s.lineCursor]
	key := cur.key()

	switch msg.String() {
	case "enter":
		if cur.option != nil {
			return s.edit(key, editor.FieldText, cur.option.Value, components.KindText)
		}
		return s.edit(key, editor.FieldText, cur.question.Value, components.KindText)
	case "s":
		if cur.option != nil {
			return s.edit(key, editor.FieldScore, strconv.Itoa(cur.option.Score), components.KindInteger)
		}
		sec := cur.question.Section
		return s.set(key, editor.FieldSection, string(sec), string(sec.Next()))
	case "o":
		return s.addOption(cur.question)
	case "x", "delete":
		return s.confirmDelete(cur)
	}
	return nil
}

// addQuestion asks for the text of a new question. It lands in the section
// of the question under the cursor so related questions stay together.
func (s *Screen) addQuestion(lines []line) tea.Cmd {
	sec := quiz.SectionOilyDry
	if s.lineCursor < len(lines) {
		sec = lines[s.lineCursor].question.Section
	}
	return s.ask(fmt.Sprintf("New %s question", sec), components.KindText, func(value string) tea.Cmd {
		return s.save(s.quizKey(), "Question added", func(ctx context.Context) (*editor.Snapshot, error) {
			return s.shell.AddQuestion(ctx, value, sec)
		})
	})
}

// addOption creates an option scored 0; the score is edited afterwards.
func (s *Screen) addOption(q quiz.Question) tea.Cmd {
	key := editor.Key{Kind: editor.KindQuestion, ID: q.ID}
	return s.ask("New option", components.KindText, func(value string) tea.Cmd {
		return s.save(key, "Option added", func(ctx context.Context) (*editor.Snapshot, error) {
			return s.shell.AddOption(ctx, q.ID, value, 0)
		})
	})
}

func (s *Screen) confirmDelete(l line) tea.Cmd {
	key := l.key()
	if l.option != nil {
		id := l.option.ID
		s.confirm = components.NewConfirm(fmt.Sprintf("Delete option %q?", l.option.Value), func() tea.Cmd {
			return s.save(key, "Option deleted", func(ctx context.Context) (*editor.Snapshot, error) {
				return s.shell.DeleteOption(ctx, id)
			})
		})
		return nil
	}
	id := l.question.ID
	s.confirm = components.NewConfirm(fmt.Sprintf("Delete question %q and its options?", l.question.Value), func() tea.Cmd {
		return s.save(key, "Question deleted", func(ctx context.Context) (*editor.Snapshot, error) {
			return s.shell.DeleteQuestion(ctx, id)
		})
	})
	return nil
}

func (s *Screen) resultKeys(msg tea.KeyPressMsg) tea.Cmd {
	snap := s.model.Snapshot()
	cards := snap.Configured()
	sections := quiz.Sections()

	switch msg.String() {
	case "up", "k":
		if s.cardCursor > 0 {
			s.cardCursor--
		}
		return nil
	case "down", "j":
		if s.cardCursor < len(cards)-1 {
			s.cardCursor++
		}
		return nil
	case "left", "h":
		s.section = (s.section + len(sections) - 1) % len(sections)
		return nil
	case "right", "l":
		s.section = (s.section + 1) % len(sections)
		return nil
	case "a":
		return s.openPicker(snap)
	}

	if s.cardCursor >= len(cards) {
		return nil
	}
	card := cards[s.cardCursor]
	key := editor.Key{Kind: editor.KindResult, ID: card.Result.ID}

	switch msg.String() {
	case "enter":
		sec := sections[s.section]
		return s.edit(key, editor.FieldRange(sec), card.Result.Range(sec), components.KindRange)
	case "w", "ctrl+s":
		draft := s.model.ResultDraft(card.Result)
		return s.save(key, fmt.Sprintf("Saved %s", card.SkinType.Name), func(ctx context.Context) (*editor.Snapshot, error) {
			return s.shell.SaveResult(ctx, snap, draft)
		})
	case "x", "delete":
		s.confirm = components.NewConfirm(fmt.Sprintf("Remove the %s mapping?", card.SkinType.Name), func() tea.Cmd {
			return s.save(key, "Mapping removed", func(ctx context.Context) (*editor.Snapshot, error) {
				return s.shell.DeleteResult(ctx, card.Result.ID)
			})
		})
	}
	return nil
}

func (s *Screen) openPicker(snap *editor.Snapshot) tea.Cmd {
	avail := snap.Available()
	if len(avail) == 0 {
		return components.Toast(components.ToastInfo, "Every skin type is already mapped")
	}
	items := make([]components.MenuItem, len(avail))
	for i, st := range avail {
		items[i] = components.MenuItem{Label: st.Name, Action: func() tea.Cmd {
			return s.save(s.quizKey(), fmt.Sprintf("Added %s", st.Name), func(ctx context.Context) (*editor.Snapshot, error) {
				return s.shell.AddResult(ctx, snap, st.ID)
			})
		}}
	}
	m := components.NewMenu(items)
	s.picker = &m
	return nil
}

func (s *Screen) handlePicker(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.picker = nil
		return nil
	case "enter":
		item, ok := s.picker.Current()
		s.picker = nil
		if !ok {
			return nil
		}
		return item.Action()
	}
	var cmd tea.Cmd
	*s.picker, cmd = s.picker.Update(msg)
	return cmd
}
