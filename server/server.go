package server

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/clinassist/answer"
	"github.com/poiesic/clinassist/storage"
)

// Server serves the clinical question-answering API.
type Server struct {
	pipeline *answer.Pipeline
	notes    storage.NoteRepository
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates a new API server.
func NewServer(pipeline *answer.Pipeline, notes storage.NoteRepository, opts ...Option) (*Server, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}
	if notes == nil {
		return nil, ErrNoteRepositoryRequired
	}

	s := &Server{
		pipeline: pipeline,
		notes:    notes,
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Router builds the gin router with all API routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/api/query", s.handleQuery)
	router.GET("/api/patients", s.handlePatients)
	router.GET("/api/health", s.handleHealth)

	return router
}

// Run serves the API on the given port until the listener fails.
func (s *Server) Run(port int) error {
	s.logger.Info("starting web server", "port", port)
	return s.Router().Run(fmt.Sprintf(":%d", port))
}

type queryRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type sourceResponse struct {
	PatientID string  `json:"patient_id"`
	NoteID    string  `json:"note_id"`
	Score     float64 `json:"score"`
}

type queryResponse struct {
	Response string           `json:"response"`
	Sources  []sourceResponse `json:"sources"`
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	opts := answer.DefaultAskOptions()
	if req.K > 0 {
		opts.TopK = req.K
	}

	result, err := s.pipeline.AskWithOptions(c.Request.Context(), req.Query, opts)
	if err != nil {
		if errors.Is(err, answer.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		s.logger.Error("error processing query", "query", req.Query, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sources := make([]sourceResponse, 0, len(result.Sources))
	for _, sn := range result.Sources {
		sources = append(sources, sourceResponse{
			PatientID: sn.Note.Patient(),
			NoteID:    sn.Note.NoteID,
			Score:     roundScore(sn.Score),
		})
	}

	c.JSON(http.StatusOK, queryResponse{
		Response: result.Response,
		Sources:  sources,
	})
}

func (s *Server) handlePatients(c *gin.Context) {
	patients, err := s.notes.ListPatients(c.Request.Context())
	if err != nil {
		s.logger.Error("error retrieving patient list", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if patients == nil {
		patients = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"patients": patients,
		"count":    len(patients),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// roundScore rounds to three decimal places for API responses.
func roundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}
