package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

// QuizPatch is the body of PUT /quizzes/{id}.
type QuizPatch struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// ListQuizzes returns every quiz set without its nested graph.
func (c *Client) ListQuizzes(ctx context.Context) ([]quiz.QuizSet, error) {
	var out []quiz.QuizSet
	if err := c.do(ctx, http.MethodGet, "/quizzes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQuiz fetches the full detail graph: questions with options, and
// result mappings.
func (c *Client) GetQuiz(ctx context.Context, id int64) (*quiz.QuizSet, error) {
	var out quiz.QuizSet
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/quizzes/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateQuiz creates a quiz together with its nested questions and options
// in a single call.
func (c *Client) CreateQuiz(ctx context.Context, qs quiz.QuizSet) (*quiz.QuizSet, error) {
	var out quiz.QuizSet
	if err := c.do(ctx, http.MethodPost, "/quizzes", qs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuiz edits the name and default flag.
func (c *Client) UpdateQuiz(ctx context.Context, id int64, patch QuizPatch) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/quizzes/%d", id), patch, nil)
}

// DeleteQuiz removes a quiz and everything it owns.
func (c *Client) DeleteQuiz(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/quizzes/%d", id), nil, nil)
}

// ListSkinTypes returns the reference list of skin types.
func (c *Client) ListSkinTypes(ctx context.Context) ([]quiz.SkinType, error) {
	var out []quiz.SkinType
	if err := c.do(ctx, http.MethodGet, "/skin-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSkinType adds a skin type to the reference list.
func (c *Client) CreateSkinType(ctx context.Context, st quiz.SkinType) (*quiz.SkinType, error) {
	var out quiz.SkinType
	if err := c.do(ctx, http.MethodPost, "/skin-types", st, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
