package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

// CreateQuestion adds a question (and any options it carries) to a quiz.
func (c *Client) CreateQuestion(ctx context.Context, quizID int64, q quiz.Question) (*quiz.Question, error) {
	var out quiz.Question
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/quizzes/%d/questions", quizID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuestion sends the whole question object. Options are not touched.
func (c *Client) UpdateQuestion(ctx context.Context, q quiz.Question) error {
	q.Options = nil
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/questions/%d", q.ID), q, nil)
}

// DeleteQuestion removes a question and its options.
func (c *Client) DeleteQuestion(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil, nil)
}

// CreateOption adds an option to a question.
func (c *Client) CreateOption(ctx context.Context, questionID int64, o quiz.Option) (*quiz.Option, error) {
	var out quiz.Option
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/questions/%d/options", questionID), o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOption sends the whole option object.
func (c *Client) UpdateOption(ctx context.Context, o quiz.Option) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/options/%d", o.ID), o, nil)
}

// DeleteOption removes an option.
func (c *Client) DeleteOption(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/options/%d", id), nil, nil)
}
