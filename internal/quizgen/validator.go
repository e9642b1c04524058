package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

// Validator inspects one drafted question. Seen holds the normalised text
// of existing questions and of drafts already accepted in this batch.
type Validator interface {
	Name() string
	Validate(q quiz.Question, seen map[string]bool) *ValidationError
}

type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Validator, e.Message)
}

func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// DuplicateValidator rejects questions already in the quiz or the batch.
type DuplicateValidator struct{}

func (DuplicateValidator) Name() string { return "duplicate" }

func (v DuplicateValidator) Validate(q quiz.Question, seen map[string]bool) *ValidationError {
	if seen[normalise(q.Value)] {
		return &ValidationError{Validator: v.Name(), Message: "question already exists"}
	}
	return nil
}

// OptionsValidator wants 2 to MaxOptions distinct answers that do not all
// score the same, since such a question cannot move the section total.
type OptionsValidator struct {
	MaxOptions int
}

func (OptionsValidator) Name() string { return "options" }

func (v OptionsValidator) Validate(q quiz.Question, _ map[string]bool) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...)}
	}
	if len(q.Options) < 2 {
		return fail("needs at least 2 options, got %d", len(q.Options))
	}
	if v.MaxOptions > 0 && len(q.Options) > v.MaxOptions {
		return fail("at most %d options, got %d", v.MaxOptions, len(q.Options))
	}
	texts := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		n := normalise(o.Value)
		if texts[n] {
			return fail("option %q repeated", o.Value)
		}
		texts[n] = true
	}
	if lo, hi := q.ScoreSpan(); lo == hi {
		return fail("every option scores %d", lo)
	}
	return nil
}
