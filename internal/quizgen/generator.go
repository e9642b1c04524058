// Package quizgen drafts quiz questions with a language model. Drafts are
// only suggestions: callers show them and create the ones they keep
// through the normal API.
package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/dermaquiz/internal/llm"
	"github.com/abhisek/dermaquiz/internal/quiz"
)

// ErrNoDrafts is returned when the model answered but every draft was
// rejected.
var ErrNoDrafts = errors.New("no usable drafts")

// Input describes one drafting request.
type Input struct {
	Section  quiz.Section
	Count    int
	Existing []string
	Guidance string
}

// InputFor builds an Input from a loaded quiz, listing its questions in
// section as existing.
func InputFor(qs quiz.QuizSet, section quiz.Section, count int) Input {
	return Input{Section: section, Count: count, Existing: existingFor(qs, section)}
}

// Rejection records a draft that did not pass validation.
type Rejection struct {
	Value  string
	Reason error
}

// Batch is the outcome of one request.
type Batch struct {
	Questions []quiz.Question
	Rejected  []Rejection
	Usage     llm.Usage
}

type Generator interface {
	Draft(ctx context.Context, in Input) (*Batch, error)
}

// LLMGenerator drafts through an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	cfg      Config
}

func New(p llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: p, cfg: cfg}
}

func (g *LLMGenerator) Draft(ctx context.Context, in Input) (*Batch, error) {
	if !in.Section.Valid() {
		return nil, fmt.Errorf("unknown section %q", in.Section)
	}
	if in.Count < 1 {
		in.Count = 1
	}
	if g.cfg.MaxCount > 0 && in.Count > g.cfg.MaxCount {
		return nil, fmt.Errorf("at most %d questions per request, asked for %d", g.cfg.MaxCount, in.Count)
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuestionDraft), llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(in, g.cfg),
		Schema:      DraftSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("draft questions: %w", err)
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}

	seen := make(map[string]bool, len(in.Existing)+len(out.Questions))
	for _, s := range in.Existing {
		seen[normalise(s)] = true
	}

	batch := &Batch{Usage: resp.Usage}
	for _, d := range out.Questions {
		q, err := g.accept(d, in.Section, seen)
		if err != nil {
			batch.Rejected = append(batch.Rejected, Rejection{Value: d.Value, Reason: err})
			continue
		}
		seen[normalise(q.Value)] = true
		batch.Questions = append(batch.Questions, q)
		if len(batch.Questions) == in.Count {
			break
		}
	}
	if len(batch.Questions) == 0 {
		return batch, ErrNoDrafts
	}
	return batch, nil
}

// accept turns a draft into a question. The shape check comes first so
// validators see trimmed text.
func (g *LLMGenerator) accept(d draftQuestion, section quiz.Section, seen map[string]bool) (quiz.Question, error) {
	options := make([]quiz.Option, 0, len(d.Options))
	for _, o := range d.Options {
		opt, err := quiz.NewOption(o.Value, o.Score)
		if err != nil {
			return quiz.Question{}, err
		}
		options = append(options, opt)
	}
	q, err := quiz.NewQuestion(d.Value, section, options...)
	if err != nil {
		return quiz.Question{}, err
	}
	for _, v := range g.cfg.Validators {
		if verr := v.Validate(q, seen); verr != nil {
			return quiz.Question{}, verr
		}
	}
	return q, nil
}
