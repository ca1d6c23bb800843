package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trip-planner/config"
	"trip-planner/models"
	"trip-planner/services"
	"trip-planner/utils"
)

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// TripPlanner runs the planning pipeline for one query
type TripPlanner interface {
	Plan(ctx context.Context, query string) (*models.PipelineResult, error)
}

// PlanRequest is the body accepted by POST /plan-trip
type PlanRequest struct {
	Query string `json:"query" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status     int                  `json:"status"`
	Message    string               `json:"message"`
	Error      string               `json:"error"`
	RequestID  string               `json:"request_id,omitempty"`
	Violations []services.Violation `json:"violations,omitempty"`
}

// Server exposes the planner over HTTP
type Server struct {
	cfg     config.ServerConfig
	planner TripPlanner
	logger  *utils.Logger
	router  *gin.Engine
}

// New builds the router. Gin's mode is taken from cfg.
func New(cfg config.ServerConfig, planner TripPlanner, logger *utils.Logger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	s := &Server{cfg: cfg, planner: planner, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestID(), s.accessLog())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/health", s.health)
	router.POST("/plan-trip", s.planTrip)

	s.router = router
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting trip planner server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down trip planner server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// corsConfig allows credentials for the listed origins. With no origins
// configured any origin is accepted without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) planTrip(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := utils.RequestID(ctx)

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		msg := "query is required"
		if err != nil {
			msg = err.Error()
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:    http.StatusBadRequest,
			Message:   "Invalid request body",
			Error:     msg,
			RequestID: requestID,
		})
		return
	}

	result, err := s.planner.Plan(ctx, req.Query)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Status:     http.StatusBadRequest,
				Message:    "Invalid trip request",
				Error:      verr.Error(),
				RequestID:  requestID,
				Violations: verr.Violations,
			})
			return
		}
		s.logger.WithContext(ctx).Error("trip planning failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:    http.StatusInternalServerError,
			Message:   "Trip planning failed",
			Error:     err.Error(),
			RequestID: requestID,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// requestID reuses the caller's X-Request-ID or mints one
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = utils.NewRequestID()
		}
		c.Request = c.Request.WithContext(utils.WithRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithContext(c.Request.Context()).Info("request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
