package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dermaquiz/internal/api"
	"github.com/abhisek/dermaquiz/internal/editor"
	"github.com/abhisek/dermaquiz/internal/quiz"
	"github.com/abhisek/dermaquiz/internal/store"
)

const testToken = "s3cret"

func newTestServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.SkinTypes().Seed(context.Background(), store.DefaultSkinTypes())
	require.NoError(t, err)

	srv := New(st.Quizzes(), st.SkinTypes(), Options{
		Token:          testToken,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func newClient(t *testing.T, ts *httptest.Server, opts ...api.Option) *api.Client {
	t.Helper()
	c, err := api.New(ts.URL+"/api", append([]api.Option{api.WithToken(testToken)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestHealthzNeedsNoToken(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerAuth(t *testing.T) {
	ts, _ := newTestServer(t)

	cleared := false
	c, err := api.New(ts.URL+"/api", api.WithToken("wrong"), api.OnUnauthorized(func() { cleared = true }))
	require.NoError(t, err)

	_, err = c.ListQuizzes(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
	assert.True(t, cleared)

	resp, err := http.Get(ts.URL + "/api/quizzes")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/quizzes", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDEchoed(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestCreateQuizNestedAndErrors(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t, ts)
	ctx := context.Background()

	created, err := c.CreateQuiz(ctx, quiz.QuizSet{
		Name:      "Baumann",
		IsDefault: true,
		Questions: []quiz.Question{{
			Value:   "Shine by noon?",
			Section: quiz.SectionOilyDry,
			Options: []quiz.Option{{Value: "no", Score: 0}, {Value: "yes", Score: 3}},
		}},
	})
	require.NoError(t, err)
	require.Len(t, created.Questions, 1)
	assert.Len(t, created.Questions[0].Options, 2)

	_, err = c.CreateQuiz(ctx, quiz.QuizSet{Name: "  "})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "name")

	_, err = c.GetQuiz(ctx, 999)
	require.ErrorIs(t, err, api.ErrNotFound)

	_, err = c.CreateQuestion(ctx, created.ID, quiz.Question{Value: "bad", Section: "XX"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestInvalidPathID(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/quizzes/abc", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, strings.HasPrefix(body["error"], "invalid id"))
}

func TestDuplicateResultConflicts(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t, ts)
	ctx := context.Background()

	qs, err := c.CreateQuiz(ctx, quiz.QuizSet{Name: "Q"})
	require.NoError(t, err)
	types, err := c.ListSkinTypes(ctx)
	require.NoError(t, err)

	r, err := quiz.NewResult(qs.ID, types[0].ID)
	require.NoError(t, err)
	_, err = c.CreateResult(ctx, r)
	require.NoError(t, err)

	_, err = c.CreateResult(ctx, r)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
}

func TestServerStoresUnvalidatedRanges(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t, ts)
	ctx := context.Background()

	qs, err := c.CreateQuiz(ctx, quiz.QuizSet{Name: "Q"})
	require.NoError(t, err)
	types, err := c.ListSkinTypes(ctx)
	require.NoError(t, err)
	r, err := quiz.NewResult(qs.ID, types[0].ID)
	require.NoError(t, err)
	created, err := c.CreateResult(ctx, r)
	require.NoError(t, err)

	// Range checks live in the client; the backend keeps what it is given.
	created.ODRange = "5-50"
	require.NoError(t, c.UpdateResult(ctx, *created))
	got, err := c.GetQuiz(ctx, qs.ID)
	require.NoError(t, err)
	assert.Equal(t, "5-50", got.Results[0].ODRange)
}

// TestEditorAgainstServer drives the editor shell through the real client
// and server: the full reload after each mutation must reflect every change.
func TestEditorAgainstServer(t *testing.T) {
	ts, _ := newTestServer(t)
	c := newClient(t, ts)
	ctx := context.Background()

	qs, err := c.CreateQuiz(ctx, quiz.QuizSet{Name: "Skin check"})
	require.NoError(t, err)
	sh := editor.NewShell(c, qs.ID)

	snap, err := sh.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Available(), 16)

	o1, _ := quiz.NewOption("tight", 0)
	o2, _ := quiz.NewOption("normal", 1)
	o3, _ := quiz.NewOption("shiny", 2)
	snap, err = sh.AddQuestion(ctx, "How does your skin feel?", quiz.SectionOilyDry, o1, o2, o3)
	require.NoError(t, err)
	qid := snap.Quiz.Questions[0].ID

	snap, err = sh.AddQuestion(ctx, "Pores?", quiz.SectionOilyDry)
	require.NoError(t, err)
	pores := snap.Quiz.Questions[1].ID
	_, err = sh.AddOption(ctx, pores, "small", 0)
	require.NoError(t, err)
	snap, err = sh.AddOption(ctx, pores, "large", 2)
	require.NoError(t, err)
	assert.Equal(t, quiz.Bounds{Min: 0, Max: 4}, snap.Bounds().For(quiz.SectionOilyDry))

	snap, err = sh.Commit(ctx, snap, editor.Edit{
		Key:   editor.Key{Kind: editor.KindQuestion, ID: qid},
		Field: editor.FieldSection,
		Value: "SR",
	})
	require.NoError(t, err)
	assert.Equal(t, quiz.Bounds{Min: 0, Max: 2}, snap.Bounds().For(quiz.SectionSensitive))
	assert.Equal(t, quiz.Bounds{Min: 0, Max: 2}, snap.Bounds().For(quiz.SectionOilyDry))

	skin := snap.Available()[0]
	snap, err = sh.AddResult(ctx, snap, skin.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Available(), 15)
	m := snap.Configured()[0]
	assert.Equal(t, skin.Name, m.SkinType.Name)

	r := m.Result.WithRange(quiz.SectionOilyDry, "0 - 2").WithRange(quiz.SectionSensitive, "1-2")
	snap, err = sh.SaveResult(ctx, snap, r)
	require.NoError(t, err)
	saved, _ := snap.Quiz.FindResult(r.ID)
	assert.Equal(t, "0-2", saved.ODRange)
	assert.Equal(t, "1-2", saved.SRRange)

	_, err = sh.SaveResult(ctx, snap, saved.WithRange(quiz.SectionPigmented, "0-1"))
	assert.ErrorIs(t, err, quiz.ErrRangeAbove)

	snap, err = sh.Commit(ctx, snap, editor.Edit{
		Key:   editor.Key{Kind: editor.KindQuiz, ID: qs.ID},
		Field: editor.FieldName,
		Value: "Skin check v2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Skin check v2", snap.Quiz.Name)

	snap, err = sh.DeleteResult(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Available(), 16)
	assert.Empty(t, snap.Configured())
}
