package quiz

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// QuizSet is a skin-assessment quiz with its questions and result mappings.
type QuizSet struct {
	ID        int64      `json:"id,omitempty"`
	Name      string     `json:"name" validate:"required,max=200"`
	IsDefault bool       `json:"is_default"`
	Questions []Question `json:"questions,omitempty" validate:"dive"`
	Results   []Result   `json:"results,omitempty"`
}

// Question belongs to exactly one quiz and contributes its option scores to
// one section.
type Question struct {
	ID      int64    `json:"id,omitempty"`
	QuizID  int64    `json:"quiz_id,omitempty"`
	Value   string   `json:"value" validate:"required,max=500"`
	Section Section  `json:"section" validate:"required,section"`
	Options []Option `json:"options,omitempty" validate:"dive"`
}

// Option is one answer to a question. Scores may be negative.
type Option struct {
	ID         int64  `json:"id,omitempty"`
	QuestionID int64  `json:"question_id,omitempty"`
	Value      string `json:"value" validate:"required,max=500"`
	Score      int    `json:"score"`
}

// SkinType is reference data owned by the backend, not by a quiz.
type SkinType struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// Result maps a quiz to a skin type through one "min-max" score range per
// section. The strings are kept in the form the backend stores; use
// ValidateResult to get the parsed ranges.
type Result struct {
	ID         int64  `json:"id,omitempty"`
	QuizID     int64  `json:"quiz_id,omitempty"`
	SkinTypeID int64  `json:"skin_type_id" validate:"required,gt=0"`
	ODRange    string `json:"od_range"`
	SRRange    string `json:"sr_range"`
	PNRange    string `json:"pn_range"`
	WTRange    string `json:"wt_range"`
}

// ScoreSpan returns the lowest and highest option score of the question.
// A question without options spans {0,0}.
func (q Question) ScoreSpan() (lo, hi int) {
	if len(q.Options) == 0 {
		return 0, 0
	}
	lo, hi = q.Options[0].Score, q.Options[0].Score
	for _, o := range q.Options[1:] {
		lo = min(lo, o.Score)
		hi = max(hi, o.Score)
	}
	return lo, hi
}

// Range returns the stored range string for a section.
func (r Result) Range(s Section) string {
	switch s {
	case SectionOilyDry:
		return r.ODRange
	case SectionSensitive:
		return r.SRRange
	case SectionPigmented:
		return r.PNRange
	case SectionWrinkledTight:
		return r.WTRange
	}
	return ""
}

// WithRange returns a copy of r with the range for section s replaced.
func (r Result) WithRange(s Section, v string) Result {
	switch s {
	case SectionOilyDry:
		r.ODRange = v
	case SectionSensitive:
		r.SRRange = v
	case SectionPigmented:
		r.PNRange = v
	case SectionWrinkledTight:
		r.WTRange = v
	}
	return r
}

// ShapeError reports a malformed entity rejected by one of the constructors.
type ShapeError struct {
	Entity string
	Fields []string
	Err    error
}

func (e *ShapeError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid %s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Fields, "; "))
}

func (e *ShapeError) Unwrap() error { return e.Err }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("section", func(fl validator.FieldLevel) bool {
		return Section(fl.Field().String()).Valid()
	})
	return v
}

func checkShape(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ShapeError{Entity: entity, Err: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return &ShapeError{Entity: entity, Fields: fields, Err: err}
}

// NewOption builds an option after trimming and validating its text.
func NewOption(value string, score int) (Option, error) {
	o := Option{Value: strings.TrimSpace(value), Score: score}
	if err := checkShape("option", o); err != nil {
		return Option{}, err
	}
	return o, nil
}

// NewQuestion builds a question with its options and validates the whole
// shape, including every option.
func NewQuestion(value string, section Section, options ...Option) (Question, error) {
	q := Question{
		Value:   strings.TrimSpace(value),
		Section: section,
		Options: options,
	}
	if err := checkShape("question", q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// NewQuizSet builds a quiz ready for the nested create call.
func NewQuizSet(name string, isDefault bool, questions ...Question) (QuizSet, error) {
	qs := QuizSet{
		Name:      strings.TrimSpace(name),
		IsDefault: isDefault,
		Questions: questions,
	}
	if err := checkShape("quiz", qs); err != nil {
		return QuizSet{}, err
	}
	return qs, nil
}

// NewSkinType validates reference data before it is sent to the backend.
func NewSkinType(name, description string) (SkinType, error) {
	st := SkinType{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description)}
	if err := checkShape("skin type", st); err != nil {
		return SkinType{}, err
	}
	return st, nil
}

// NewResult builds a mapping for a skin type with every range at "0-0".
func NewResult(quizID, skinTypeID int64) (Result, error) {
	r := Result{QuizID: quizID, SkinTypeID: skinTypeID}
	for _, s := range sections {
		r = r.WithRange(s, ZeroRange.String())
	}
	if err := checkShape("result", r); err != nil {
		return Result{}, err
	}
	return r, nil
}

// Validate re-checks an entity that was built or edited outside the
// constructors, e.g. decoded from a request body.
func (q Question) Validate() error { return checkShape("question", q) }

// Validate checks the option shape.
func (o Option) Validate() error { return checkShape("option", o) }

// Validate checks the quiz shape including nested questions and options.
func (qs QuizSet) Validate() error { return checkShape("quiz", qs) }

// Validate checks the skin type shape.
func (st SkinType) Validate() error { return checkShape("skin type", st) }

// FindQuestion returns the question with the given ID.
func (qs QuizSet) FindQuestion(id int64) (Question, bool) {
	for _, q := range qs.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// FindOption returns an option and its owning question.
func (qs QuizSet) FindOption(id int64) (Option, Question, bool) {
	for _, q := range qs.Questions {
		for _, o := range q.Options {
			if o.ID == id {
				return o, q, true
			}
		}
	}
	return Option{}, Question{}, false
}

// FindResult returns the result mapping with the given ID.
func (qs QuizSet) FindResult(id int64) (Result, bool) {
	for _, r := range qs.Results {
		if r.ID == id {
			return r, true
		}
	}
	return Result{}, false
}
