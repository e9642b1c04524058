// Package server is the reference REST backend for the quiz builder. It
// implements the same contract the dashboard expects from the clinic
// backend, so the tool can be developed and tested on its own.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/dermaquiz/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	// Token is the bearer token clients must present. Empty disables auth.
	Token string
	// AllowedOrigins lists the browser origins allowed by CORS.
	AllowedOrigins []string
	Logger         *zap.Logger
}

// Server serves the quiz API from a store.
type Server struct {
	quizzes   store.QuizRepo
	skinTypes store.SkinTypeRepo
	log       *zap.Logger
	engine    *gin.Engine
}

// New wires the routes. Every API route lives under /api.
func New(quizzes store.QuizRepo, skinTypes store.SkinTypeRepo, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		quizzes:   quizzes,
		skinTypes: skinTypes,
		log:       log,
		engine:    gin.New(),
	}

	r := s.engine
	r.Use(gin.Recovery(), requestLogger(log))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Content-Type", "Accept", "Authorization", "X-Request-ID"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", bearerAuth(opts.Token))
	{
		api.GET("/quizzes", s.listQuizzes)
		api.POST("/quizzes", s.createQuiz)
		api.GET("/quizzes/:id", s.getQuiz)
		api.PUT("/quizzes/:id", s.updateQuiz)
		api.DELETE("/quizzes/:id", s.deleteQuiz)

		api.POST("/quizzes/:id/questions", s.createQuestion)
		api.PUT("/questions/:id", s.updateQuestion)
		api.DELETE("/questions/:id", s.deleteQuestion)

		api.POST("/questions/:id/options", s.createOption)
		api.PUT("/options/:id", s.updateOption)
		api.DELETE("/options/:id", s.deleteOption)

		api.POST("/quizzes/:id/results", s.createResult)
		api.PUT("/results/:id", s.updateResult)
		api.DELETE("/results/:id", s.deleteResult)

		api.GET("/skin-types", s.listSkinTypes)
		api.POST("/skin-types", s.createSkinType)
	}

	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
