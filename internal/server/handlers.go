package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/dermaquiz/internal/quiz"
	"github.com/abhisek/dermaquiz/internal/store"
)

type quizPatchBody struct {
	Name      string `json:"name" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

type createResultBody struct {
	SkinTypeID int64  `json:"skin_type_id" binding:"required,gt=0"`
	ODRange    string `json:"od_range"`
	SRRange    string `json:"sr_range"`
	PNRange    string `json:"pn_range"`
	WTRange    string `json:"wt_range"`
}

// The backend stores range strings as given; checking them against the
// section bounds is the client's job.
type updateResultBody struct {
	ODRange string `json:"od_range" binding:"required"`
	SRRange string `json:"sr_range" binding:"required"`
	PNRange string `json:"pn_range" binding:"required"`
	WTRange string `json:"wt_range" binding:"required"`
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id " + strconv.Quote(c.Param("id"))})
		return 0, false
	}
	return id, true
}

// fail maps store and shape errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	var shape *quiz.ShapeError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &shape):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) listQuizzes(c *gin.Context) {
	list, err := s.quizzes.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getQuiz(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	qs, err := s.quizzes.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, qs)
}

func (s *Server) createQuiz(c *gin.Context) {
	var body quiz.QuizSet
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	qs, err := quiz.NewQuizSet(body.Name, body.IsDefault, body.Questions...)
	if err != nil {
		fail(c, err)
		return
	}
	created, err := s.quizzes.Create(c.Request.Context(), qs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateQuiz(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body quizPatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		fail(c, &quiz.ShapeError{Entity: "quiz", Fields: []string{"name is required"}})
		return
	}
	if err := s.quizzes.Update(c.Request.Context(), id, name, body.IsDefault); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteQuiz(c *gin.Context) {
	s.deleteBy(c, s.quizzes.Delete)
}

func (s *Server) createQuestion(c *gin.Context) {
	quizID, ok := pathID(c)
	if !ok {
		return
	}
	var body quiz.Question
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	q, err := quiz.NewQuestion(body.Value, body.Section, body.Options...)
	if err != nil {
		fail(c, err)
		return
	}
	created, err := s.quizzes.CreateQuestion(c.Request.Context(), quizID, q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var q quiz.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		badRequest(c, err)
		return
	}
	q.ID = id
	q.Value = strings.TrimSpace(q.Value)
	q.Options = nil
	if err := q.Validate(); err != nil {
		fail(c, err)
		return
	}
	if err := s.quizzes.UpdateQuestion(c.Request.Context(), q); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteQuestion(c *gin.Context) {
	s.deleteBy(c, s.quizzes.DeleteQuestion)
}

func (s *Server) createOption(c *gin.Context) {
	questionID, ok := pathID(c)
	if !ok {
		return
	}
	var body quiz.Option
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	o, err := quiz.NewOption(body.Value, body.Score)
	if err != nil {
		fail(c, err)
		return
	}
	created, err := s.quizzes.CreateOption(c.Request.Context(), questionID, o)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateOption(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var o quiz.Option
	if err := c.ShouldBindJSON(&o); err != nil {
		badRequest(c, err)
		return
	}
	o.ID = id
	o.Value = strings.TrimSpace(o.Value)
	if err := o.Validate(); err != nil {
		fail(c, err)
		return
	}
	if err := s.quizzes.UpdateOption(c.Request.Context(), o); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteOption(c *gin.Context) {
	s.deleteBy(c, s.quizzes.DeleteOption)
}

func (s *Server) createResult(c *gin.Context) {
	quizID, ok := pathID(c)
	if !ok {
		return
	}
	var body createResultBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	r, err := quiz.NewResult(quizID, body.SkinTypeID)
	if err != nil {
		fail(c, err)
		return
	}
	given := map[quiz.Section]string{
		quiz.SectionOilyDry:       body.ODRange,
		quiz.SectionSensitive:     body.SRRange,
		quiz.SectionPigmented:     body.PNRange,
		quiz.SectionWrinkledTight: body.WTRange,
	}
	for sec, v := range given {
		if v != "" {
			r = r.WithRange(sec, v)
		}
	}
	created, err := s.quizzes.CreateResult(c.Request.Context(), r)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateResult(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body updateResultBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	r := quiz.Result{
		ID:      id,
		ODRange: body.ODRange,
		SRRange: body.SRRange,
		PNRange: body.PNRange,
		WTRange: body.WTRange,
	}
	if err := s.quizzes.UpdateResult(c.Request.Context(), r); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteResult(c *gin.Context) {
	s.deleteBy(c, s.quizzes.DeleteResult)
}

func (s *Server) listSkinTypes(c *gin.Context) {
	list, err := s.skinTypes.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createSkinType(c *gin.Context) {
	var body quiz.SkinType
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	st, err := quiz.NewSkinType(body.Name, body.Description)
	if err != nil {
		fail(c, err)
		return
	}
	created, err := s.skinTypes.Create(c.Request.Context(), st)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) deleteBy(c *gin.Context, del func(ctx context.Context, id int64) error) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
