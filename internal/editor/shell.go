package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/dermaquiz/internal/api"
	"github.com/abhisek/dermaquiz/internal/quiz"
)

// Backend is the part of the API client the editor drives.
type Backend interface {
	GetQuiz(ctx context.Context, id int64) (*quiz.QuizSet, error)
	ListSkinTypes(ctx context.Context) ([]quiz.SkinType, error)
	UpdateQuiz(ctx context.Context, id int64, patch api.QuizPatch) error

	CreateQuestion(ctx context.Context, quizID int64, q quiz.Question) (*quiz.Question, error)
	UpdateQuestion(ctx context.Context, q quiz.Question) error
	DeleteQuestion(ctx context.Context, id int64) error

	CreateOption(ctx context.Context, questionID int64, o quiz.Option) (*quiz.Option, error)
	UpdateOption(ctx context.Context, o quiz.Option) error
	DeleteOption(ctx context.Context, id int64) error

	CreateResult(ctx context.Context, r quiz.Result) (*quiz.Result, error)
	UpdateResult(ctx context.Context, r quiz.Result) error
	DeleteResult(ctx context.Context, id int64) error
}

var _ Backend = (*api.Client)(nil)

var (
	ErrUnknownEntity      = errors.New("entity is no longer part of this quiz")
	ErrSkinTypeConfigured = errors.New("skin type is already configured for this quiz")
	ErrUnsupportedField   = errors.New("field cannot be edited")
)

// Shell runs every mutation of the quiz editor: one request for the
// changed entity followed by a full reload of the detail graph. A failed
// mutation returns its error and no snapshot; nothing is rolled back.
type Shell struct {
	backend Backend
	quizID  int64
}

// NewShell creates a Shell for one quiz.
func NewShell(backend Backend, quizID int64) *Shell {
	return &Shell{backend: backend, quizID: quizID}
}

// QuizID returns the quiz this shell edits.
func (s *Shell) QuizID() int64 {
	return s.quizID
}

// Load fetches the skin types and the quiz detail in parallel.
func (s *Shell) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		types, err := s.backend.ListSkinTypes(gctx)
		if err != nil {
			return fmt.Errorf("load skin types: %w", err)
		}
		snap.SkinTypes = types
		return nil
	})
	g.Go(func() error {
		qs, err := s.backend.GetQuiz(gctx, s.quizID)
		if err != nil {
			return fmt.Errorf("load quiz %d: %w", s.quizID, err)
		}
		snap.Quiz = *qs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Commit saves one field of a quiz, question or option and reloads.
// Result ranges are saved as a whole card through SaveResult.
func (s *Shell) Commit(ctx context.Context, snap *Snapshot, e Edit) (*Snapshot, error) {
	var err error
	switch e.Key.Kind {
	case KindQuiz:
		err = s.commitQuiz(ctx, snap, e)
	case KindQuestion:
		err = s.commitQuestion(ctx, snap, e)
	case KindOption:
		err = s.commitOption(ctx, snap, e)
	default:
		err = fmt.Errorf("%s %s: %w", e.Key.Kind, e.Field, ErrUnsupportedField)
	}
	if err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

func (s *Shell) commitQuiz(ctx context.Context, snap *Snapshot, e Edit) error {
	patch := api.QuizPatch{Name: snap.Quiz.Name, IsDefault: snap.Quiz.IsDefault}
	switch e.Field {
	case FieldName:
		patch.Name = strings.TrimSpace(e.Value)
		if patch.Name == "" {
			return &quiz.ShapeError{Entity: "quiz", Fields: []string{"name is required"}}
		}
	case FieldDefault:
		v, err := strconv.ParseBool(e.Value)
		if err != nil {
			return fmt.Errorf("default flag %q: %w", e.Value, err)
		}
		patch.IsDefault = v
	default:
		return fmt.Errorf("quiz %s: %w", e.Field, ErrUnsupportedField)
	}
	return s.backend.UpdateQuiz(ctx, s.quizID, patch)
}

func (s *Shell) commitQuestion(ctx context.Context, snap *Snapshot, e Edit) error {
	q, ok := snap.Quiz.FindQuestion(e.Key.ID)
	if !ok {
		return fmt.Errorf("question %d: %w", e.Key.ID, ErrUnknownEntity)
	}
	switch e.Field {
	case FieldText:
		q.Value = strings.TrimSpace(e.Value)
	case FieldSection:
		sec, err := quiz.ParseSection(e.Value)
		if err != nil {
			return err
		}
		q.Section = sec
	default:
		return fmt.Errorf("question %s: %w", e.Field, ErrUnsupportedField)
	}
	q.Options = nil
	if err := q.Validate(); err != nil {
		return err
	}
	return s.backend.UpdateQuestion(ctx, q)
}

func (s *Shell) commitOption(ctx context.Context, snap *Snapshot, e Edit) error {
	o, _, ok := snap.Quiz.FindOption(e.Key.ID)
	if !ok {
		return fmt.Errorf("option %d: %w", e.Key.ID, ErrUnknownEntity)
	}
	switch e.Field {
	case FieldText:
		o.Value = strings.TrimSpace(e.Value)
	case FieldScore:
		score, err := strconv.Atoi(strings.TrimSpace(e.Value))
		if err != nil {
			return fmt.Errorf("score %q is not an integer", e.Value)
		}
		o.Score = score
	default:
		return fmt.Errorf("option %s: %w", e.Field, ErrUnsupportedField)
	}
	if err := o.Validate(); err != nil {
		return err
	}
	return s.backend.UpdateOption(ctx, o)
}

// AddQuestion creates a question in the given section and reloads.
func (s *Shell) AddQuestion(ctx context.Context, value string, section quiz.Section, options ...quiz.Option) (*Snapshot, error) {
	q, err := quiz.NewQuestion(value, section, options...)
	if err != nil {
		return nil, err
	}
	q.QuizID = s.quizID
	if _, err := s.backend.CreateQuestion(ctx, s.quizID, q); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// DeleteQuestion removes a question with its options and reloads.
func (s *Shell) DeleteQuestion(ctx context.Context, id int64) (*Snapshot, error) {
	if err := s.backend.DeleteQuestion(ctx, id); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// AddOption appends an option to a question and reloads.
func (s *Shell) AddOption(ctx context.Context, questionID int64, value string, score int) (*Snapshot, error) {
	o, err := quiz.NewOption(value, score)
	if err != nil {
		return nil, err
	}
	o.QuestionID = questionID
	if _, err := s.backend.CreateOption(ctx, questionID, o); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// DeleteOption removes an option and reloads.
func (s *Shell) DeleteOption(ctx context.Context, id int64) (*Snapshot, error) {
	if err := s.backend.DeleteOption(ctx, id); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// AddResult configures a skin type for this quiz with every range at
// "0-0" and reloads. Only skin types still available can be added.
func (s *Shell) AddResult(ctx context.Context, snap *Snapshot, skinTypeID int64) (*Snapshot, error) {
	if !snap.IsAvailable(skinTypeID) {
		return nil, fmt.Errorf("skin type %d: %w", skinTypeID, ErrSkinTypeConfigured)
	}
	r, err := quiz.NewResult(s.quizID, skinTypeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.backend.CreateResult(ctx, r); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// SaveResult validates the four ranges against the bounds of the current
// snapshot, saves them in canonical form and reloads. A validation failure
// sends nothing.
func (s *Shell) SaveResult(ctx context.Context, snap *Snapshot, r quiz.Result) (*Snapshot, error) {
	if _, ok := snap.Quiz.FindResult(r.ID); !ok {
		return nil, fmt.Errorf("result %d: %w", r.ID, ErrUnknownEntity)
	}
	valid, err := quiz.ValidateResult(r, snap.Bounds())
	if err != nil {
		return nil, err
	}
	if err := s.backend.UpdateResult(ctx, valid); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}

// DeleteResult removes a mapping and reloads. Confirmation is the caller's
// job.
func (s *Shell) DeleteResult(ctx context.Context, id int64) (*Snapshot, error) {
	if err := s.backend.DeleteResult(ctx, id); err != nil {
		return nil, err
	}
	return s.Load(ctx)
}
