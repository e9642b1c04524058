package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("already exists")
)

// QuizRepo persists quiz sets and everything that hangs off them.
type QuizRepo interface {
	List(ctx context.Context) ([]quiz.QuizSet, error)
	// Get returns the full detail graph: questions with options and result
	// mappings, each ordered by ID.
	Get(ctx context.Context, id int64) (*quiz.QuizSet, error)
	// Create stores a quiz with nested questions and options in one
	// transaction.
	Create(ctx context.Context, qs quiz.QuizSet) (*quiz.QuizSet, error)
	// Update renames a quiz and sets its default flag. Marking a quiz as
	// default clears the flag on every other quiz.
	Update(ctx context.Context, id int64, name string, isDefault bool) error
	Delete(ctx context.Context, id int64) error

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

// SkinTypeRepo persists the skin type reference list.
type SkinTypeRepo interface {
	List(ctx context.Context) ([]quiz.SkinType, error)
	Create(ctx context.Context, st quiz.SkinType) (*quiz.SkinType, error)
	// Seed inserts the given skin types when the table is empty and reports
	// how many were inserted.
	Seed(ctx context.Context, types []quiz.SkinType) (int, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match when set
	After   int64     // id > After, for paging
	From    time.Time // timestamp >= From
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the LLM event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	// GetLLMEvent returns one event or nil when it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
	// LLMUsageByPurpose sums token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}
