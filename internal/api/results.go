package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

// CreateResult adds a result mapping to a quiz.
func (c *Client) CreateResult(ctx context.Context, r quiz.Result) (*quiz.Result, error) {
	var out quiz.Result
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/quizzes/%d/results", r.QuizID), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateResult sends the four range strings of a mapping.
func (c *Client) UpdateResult(ctx context.Context, r quiz.Result) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/results/%d", r.ID), r, nil)
}

// DeleteResult removes a result mapping.
func (c *Client) DeleteResult(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/results/%d", id), nil, nil)
}
