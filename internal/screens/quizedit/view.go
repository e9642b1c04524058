package quizedit

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/quiz"
	"github.com/abhisek/dermaquiz/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	snap := s.model.Snapshot()
	if snap == nil {
		if s.loadErr != nil {
			return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s\n\nPress r to retry.", s.loadErr))
		}
		return center.Foreground(theme.TextDim).Render("\n\nLoading quiz...")
	}

	var body string
	switch s.pane {
	case paneQuiz:
		body = s.viewQuiz(snap)
	case paneQuestions:
		body = s.viewQuestions(snap, height-6)
	case paneResults:
		body = s.viewResults(snap, height-6)
	}

	var b strings.Builder
	b.WriteString(s.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(body)
	if bottom := s.viewOverlay(); bottom != "" {
		b.WriteString("\n")
		b.WriteString(bottom)
	}
	return lipgloss.NewStyle().Padding(0, 2).MaxHeight(height).Render(b.String())
}

func (s *Screen) viewTabs() string {
	tabs := make([]string, 0, paneCount)
	for p := range paneCount {
		label := " " + p.String() + " "
		if p == s.pane {
			tabs = append(tabs, theme.Selected.Reverse(true).Render(label))
		} else {
			tabs = append(tabs, theme.Dim.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// viewOverlay renders whichever prompt is open below the pane.
func (s *Screen) viewOverlay() string {
	switch {
	case s.confirm != nil:
		return s.confirm.View()
	case s.prompt != nil:
		return theme.Body.Render(s.prompt.label+": ") + s.prompt.input.View()
	case s.picker != nil:
		return theme.Title.Render("Add skin type") + "\n" + s.picker.View()
	}
	return ""
}

// rowState renders the status suffix of a row.
func (s *Screen) rowState(key editor.Key) string {
	row := s.model.Row(key)
	switch {
	case row.Phase == editor.PhaseSaving:
		return " " + theme.Saving.Render("saving…")
	case row.Phase == editor.PhaseError:
		return " " + theme.Failed.Render("✗ not saved")
	case row.Dirty:
		return " " + theme.Dirty.Render("● unsaved")
	}
	return ""
}

// fieldView shows the open input when key/f is being edited, else the
// draft or stored value.
func (s *Screen) fieldView(key editor.Key, f editor.Field, stored string) string {
	if s.editing != nil && s.editing.key == key && s.editing.field == f {
		return s.editing.input.View()
	}
	v := s.model.Value(key, f, stored)
	if s.model.HasDraft(key, f) {
		return theme.Dirty.Render(v)
	}
	return v
}

func cursor(on bool) string {
	if on {
		return theme.Selected.Render("▸ ")
	}
	return "  "
}

func (s *Screen) viewQuiz(snap *editor.Snapshot) string {
	key := s.quizKey()
	def := "no"
	if snap.Quiz.IsDefault {
		def = "yes"
	}

	var b strings.Builder
	b.WriteString(cursor(s.quizCursor == 0))
	b.WriteString(theme.Hint.Render("Name     "))
	b.WriteString(s.fieldView(key, editor.FieldName, snap.Quiz.Name))
	b.WriteString(s.rowState(key))
	b.WriteString("\n")
	b.WriteString(cursor(s.quizCursor == 1))
	b.WriteString(theme.Hint.Render("Default  "))
	b.WriteString(def)
	b.WriteString("\n\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%d questions, %d result mappings", len(snap.Quiz.Questions), len(snap.Quiz.Results))))
	return b.String()
}

func boundsLine(bounds quiz.SectionBounds) string {
	parts := make([]string, 0, 4)
	for _, sec := range quiz.Sections() {
		parts = append(parts, fmt.Sprintf("%s %s", sec, bounds.For(sec)))
	}
	return theme.Hint.Render("Bounds  " + strings.Join(parts, "   "))
}

func (s *Screen) viewQuestions(snap *editor.Snapshot, height int) string {
	lines := s.lines()
	if len(lines) == 0 {
		return theme.Dim.Italic(true).Render("No questions yet. Press a to add one.")
	}

	rendered := make([]string, len(lines))
	for i, l := range lines {
		key := l.key()
		var b strings.Builder
		b.WriteString(cursor(i == s.lineCursor))
		if l.option == nil {
			sec := s.model.Value(key, editor.FieldSection, string(l.question.Section))
			b.WriteString(theme.Badge.Render(sec))
			b.WriteString(" ")
			b.WriteString(s.fieldView(key, editor.FieldText, l.question.Value))
			lo, hi := l.question.ScoreSpan()
			b.WriteString(theme.Dim.Render(fmt.Sprintf("  [%d..%d]", lo, hi)))
		} else {
			b.WriteString("    • ")
			b.WriteString(s.fieldView(key, editor.FieldText, l.option.Value))
			b.WriteString(theme.Hint.Render("  score "))
			b.WriteString(s.fieldView(key, editor.FieldScore, fmt.Sprint(l.option.Score)))
		}
		b.WriteString(s.rowState(key))
		rendered[i] = b.String()
	}

	return boundsLine(snap.Bounds()) + "\n\n" + strings.Join(window(rendered, s.lineCursor, height), "\n")
}

// window returns at most height rows of rows, keeping at in view.
func window(rows []string, at, height int) []string {
	if height <= 0 || len(rows) <= height {
		return rows
	}
	start := max(at-height/2, 0)
	if start+height > len(rows) {
		start = len(rows) - height
	}
	return rows[start : start+height]
}

func (s *Screen) viewResults(snap *editor.Snapshot, height int) string {
	cards := snap.Configured()
	bounds := snap.Bounds()
	var b strings.Builder
	b.WriteString(boundsLine(bounds))
	b.WriteString("\n\n")

	if len(cards) == 0 {
		b.WriteString(theme.Dim.Italic(true).Render("No skin types mapped yet. Press a to add one."))
		return b.String()
	}

	rendered := make([]string, 0, len(cards))
	for i, c := range cards {
		key := editor.Key{Kind: editor.KindResult, ID: c.Result.ID}
		focused := i == s.cardCursor

		var row strings.Builder
		row.WriteString(cursor(focused))
		row.WriteString(theme.Title.Render(c.SkinType.Name))
		row.WriteString(s.rowState(key))
		row.WriteString("\n   ")
		for j, sec := range quiz.Sections() {
			f := editor.FieldRange(sec)
			label := fmt.Sprintf("%s ", sec)
			if focused && j == s.section {
				label = theme.Selected.Render(label)
			} else {
				label = theme.Hint.Render(label)
			}
			row.WriteString(label)
			row.WriteString(s.fieldView(key, f, c.Result.Range(sec)))
			row.WriteString("   ")
		}
		if err := s.model.Row(key).Err; err != nil && focused {
			row.WriteString("\n   ")
			row.WriteString(theme.Failed.Render(strings.ReplaceAll(err.Error(), "\n", "; ")))
		}
		rendered = append(rendered, row.String())
	}
	b.WriteString(strings.Join(window(rendered, s.cardCursor, max(height/3, 1)), "\n"))

	results := make([]quiz.Result, len(cards))
	for i, c := range cards {
		results[i] = c.Result
	}
	for _, o := range quiz.FindOverlaps(results) {
		b.WriteString("\n")
		b.WriteString(theme.Dim.Render(fmt.Sprintf("! %s: %s %s overlaps %s %s",
			o.Section, snap.SkinTypeName(o.A), o.RangeA, snap.SkinTypeName(o.B), o.RangeB)))
	}
	return b.String()
}
