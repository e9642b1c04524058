package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL+"/api/", opts...)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("ftp://example.com")
	require.Error(t, err)
}

func TestGetQuiz_SendsAuthAndDecodes(t *testing.T) {
	var gotAuth, gotReqID, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         7,
			"name":       "Baumann",
			"is_default": true,
			"questions": []map[string]any{
				{"id": 1, "quiz_id": 7, "value": "Shine at noon?", "section": "OD",
					"options": []map[string]any{{"id": 3, "question_id": 1, "value": "Yes", "score": 2}}},
			},
			"results": []map[string]any{
				{"id": 9, "quiz_id": 7, "skin_type_id": 2, "od_range": "0-2", "sr_range": "0-0", "pn_range": "0-0", "wt_range": "0-0"},
			},
		})
	}, WithToken("secret"))

	qs, err := c.GetQuiz(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "/api/quizzes/7", gotPath)
	assert.Equal(t, "Baumann", qs.Name)
	require.Len(t, qs.Questions, 1)
	assert.Equal(t, quiz.SectionOilyDry, qs.Questions[0].Section)
	assert.Equal(t, 2, qs.Questions[0].Options[0].Score)
	require.Len(t, qs.Results, 1)
	assert.Equal(t, "0-2", qs.Results[0].ODRange)
}

func TestUpdateQuestion_SendsWholeQuestionWithoutOptions(t *testing.T) {
	var body map[string]any
	var method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateQuestion(context.Background(), quiz.Question{
		ID: 4, QuizID: 1, Value: "New text", Section: quiz.SectionPigmented,
		Options: []quiz.Option{{ID: 1, Value: "a"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "New text", body["value"])
	assert.Equal(t, "PN", body["section"])
	_, hasOptions := body["options"]
	assert.False(t, hasOptions)
}

func TestErrorResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"name is required"}`))
	})

	err := c.UpdateQuiz(context.Background(), 1, QuizPatch{})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "name is required", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestErrorResponse_PlainText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	err := c.DeleteOption(context.Background(), 3)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestUnauthorized_RunsHook(t *testing.T) {
	cleared := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, OnUnauthorized(func() { cleared++ }))

	_, err := c.ListSkinTypes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, cleared)
}

func TestNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.GetQuiz(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoRetryOnFailure(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := c.ListQuizzes(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}, WithTimeout(20*time.Millisecond))

	_, err := c.ListQuizzes(context.Background())
	require.Error(t, err)
}

func TestCreateResult_PostsUnderQuiz(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var in quiz.Result
		_ = json.NewDecoder(r.Body).Decode(&in)
		in.ID = 12
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	})

	r, err := quiz.NewResult(3, 5)
	require.NoError(t, err)
	out, err := c.CreateResult(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "/api/quizzes/3/results", path)
	assert.Equal(t, int64(12), out.ID)
	assert.Equal(t, "0-0", out.WTRange)
}
