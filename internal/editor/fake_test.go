package editor

import (
	"context"
	"slices"
	"sync"

	"github.com/abhisek/dermaquiz/internal/api"
	"github.com/abhisek/dermaquiz/internal/quiz"
)

// fakeBackend keeps one quiz in memory and records every call by name.
type fakeBackend struct {
	mu         sync.Mutex
	quiz       quiz.QuizSet
	skinTypes  []quiz.SkinType
	nextID     int64
	calls      []string
	fail       map[string]error
	lastResult quiz.Result
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		quiz: quiz.QuizSet{ID: 1, Name: "Default quiz", IsDefault: true},
		skinTypes: []quiz.SkinType{
			{ID: 1, Name: "Oily"},
			{ID: 2, Name: "Dry"},
			{ID: 3, Name: "Combination"},
		},
		nextID: 100,
		fail:   map[string]error{},
	}
}

func (f *fakeBackend) record(name string) error {
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func (f *fakeBackend) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeBackend) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) GetQuiz(_ context.Context, id int64) (*quiz.QuizSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetQuiz"); err != nil {
		return nil, err
	}
	if id != f.quiz.ID {
		return nil, &api.Error{StatusCode: 404, Message: "quiz not found"}
	}
	cp := f.quiz
	cp.Questions = make([]quiz.Question, len(f.quiz.Questions))
	for i, q := range f.quiz.Questions {
		q.Options = slices.Clone(q.Options)
		cp.Questions[i] = q
	}
	cp.Results = slices.Clone(f.quiz.Results)
	return &cp, nil
}

func (f *fakeBackend) ListSkinTypes(context.Context) ([]quiz.SkinType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListSkinTypes"); err != nil {
		return nil, err
	}
	return slices.Clone(f.skinTypes), nil
}

func (f *fakeBackend) UpdateQuiz(_ context.Context, _ int64, p api.QuizPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateQuiz"); err != nil {
		return err
	}
	f.quiz.Name = p.Name
	f.quiz.IsDefault = p.IsDefault
	return nil
}

func (f *fakeBackend) CreateQuestion(_ context.Context, quizID int64, q quiz.Question) (*quiz.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateQuestion"); err != nil {
		return nil, err
	}
	q.ID = f.id()
	q.QuizID = quizID
	for i := range q.Options {
		q.Options[i].ID = f.id()
		q.Options[i].QuestionID = q.ID
	}
	f.quiz.Questions = append(f.quiz.Questions, q)
	return &q, nil
}

func (f *fakeBackend) UpdateQuestion(_ context.Context, q quiz.Question) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateQuestion"); err != nil {
		return err
	}
	for i := range f.quiz.Questions {
		if f.quiz.Questions[i].ID == q.ID {
			f.quiz.Questions[i].Value = q.Value
			f.quiz.Questions[i].Section = q.Section
		}
	}
	return nil
}

func (f *fakeBackend) DeleteQuestion(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteQuestion"); err != nil {
		return err
	}
	f.quiz.Questions = slices.DeleteFunc(f.quiz.Questions, func(q quiz.Question) bool { return q.ID == id })
	return nil
}

func (f *fakeBackend) CreateOption(_ context.Context, questionID int64, o quiz.Option) (*quiz.Option, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateOption"); err != nil {
		return nil, err
	}
	o.ID = f.id()
	o.QuestionID = questionID
	for i := range f.quiz.Questions {
		if f.quiz.Questions[i].ID == questionID {
			f.quiz.Questions[i].Options = append(f.quiz.Questions[i].Options, o)
		}
	}
	return &o, nil
}

func (f *fakeBackend) UpdateOption(_ context.Context, o quiz.Option) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateOption"); err != nil {
		return err
	}
	for i := range f.quiz.Questions {
		for j := range f.quiz.Questions[i].Options {
			if f.quiz.Questions[i].Options[j].ID == o.ID {
				f.quiz.Questions[i].Options[j].Value = o.Value
				f.quiz.Questions[i].Options[j].Score = o.Score
			}
		}
	}
	return nil
}

func (f *fakeBackend) DeleteOption(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteOption"); err != nil {
		return err
	}
	for i := range f.quiz.Questions {
		f.quiz.Questions[i].Options = slices.DeleteFunc(f.quiz.Questions[i].Options, func(o quiz.Option) bool { return o.ID == id })
	}
	return nil
}

func (f *fakeBackend) CreateResult(_ context.Context, r quiz.Result) (*quiz.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateResult"); err != nil {
		return nil, err
	}
	r.ID = f.id()
	f.quiz.Results = append(f.quiz.Results, r)
	return &r, nil
}

func (f *fakeBackend) UpdateResult(_ context.Context, r quiz.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastResult = r
	if err := f.record("UpdateResult"); err != nil {
		return err
	}
	for i := range f.quiz.Results {
		if f.quiz.Results[i].ID == r.ID {
			f.quiz.Results[i] = r
		}
	}
	return nil
}

func (f *fakeBackend) DeleteResult(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteResult"); err != nil {
		return err
	}
	f.quiz.Results = slices.DeleteFunc(f.quiz.Results, func(r quiz.Result) bool { return r.ID == id })
	return nil
}
