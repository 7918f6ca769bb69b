package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Skufu/GlucoRisk/internal/report"
	"github.com/Skufu/GlucoRisk/internal/screening"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler serves the screening endpoints.
type Handler struct {
	engine   *screening.Engine
	db       HealthChecker
	logger   *zap.Logger
	maxBatch int
	workers  int
}

// NewHandler wires the engine and an optional database for readiness. A nil
// db reports the database as disabled.
func NewHandler(engine *screening.Engine, db HealthChecker, logger *zap.Logger, maxBatch, workers int) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:   engine,
		db:       db,
		logger:   logger,
		maxBatch: maxBatch,
		workers:  workers,
	}
}

// RegisterRoutes mounts the handlers on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.handleHealth)
	r.GET("/readyz", h.handleReady)

	api := r.Group("/api")
	api.GET("/rules", h.handleRules)
	api.POST("/screenings", h.handleScreening)
	api.POST("/screenings/batch", h.handleBatch)
}

type screeningResponse struct {
	ID string `json:"id"`
	report.Report
	Activations []screening.Activation `json:"activations,omitempty"`
}

type batchRequest struct {
	Patients []screening.Input `json:"patients"`
}

type batchResponse struct {
	Results []screeningResponse `json:"results"`
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleReady(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     fmt.Sprintf("unhealthy: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}

func (h *Handler) handleRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rules": h.engine.Rules()})
}

func (h *Handler) handleScreening(c *gin.Context) {
	var in screening.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	m, err := in.Measurements()
	if err != nil {
		respondValidation(c, err, "")
		return
	}

	resp := h.respond(m, c.Query("trace") == "full")
	h.logger.Debug("screening evaluated",
		zap.String("id", resp.ID),
		zap.Stringer("best", resp.Best),
		zap.Float64("certainty", resp.Certainty),
		zap.Int("fired", len(resp.Fired)),
	)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	switch {
	case len(req.Patients) == 0:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": []string{"patients must not be empty"},
		})
		return
	case h.maxBatch > 0 && len(req.Patients) > h.maxBatch:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": []string{fmt.Sprintf("at most %d patients per batch, got %d", h.maxBatch, len(req.Patients))},
		})
		return
	}

	batch := make([]screening.Measurements, len(req.Patients))
	var details []string
	for i, in := range req.Patients {
		m, err := in.Measurements()
		if err != nil {
			details = append(details, problemsOf(err, fmt.Sprintf("patients[%d]: ", i))...)
			continue
		}
		batch[i] = m
	}
	if len(details) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation_failed", "details": details})
		return
	}

	results, err := h.engine.EvaluateAll(c.Request.Context(), batch, h.workers)
	if err != nil {
		h.logger.Warn("batch evaluation aborted", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "evaluation aborted"})
		return
	}

	out := batchResponse{Results: make([]screeningResponse, len(results))}
	for i, res := range results {
		out.Results[i] = screeningResponse{
			ID:     uuid.NewString(),
			Report: report.Build(batch[i], res),
		}
	}
	h.logger.Debug("batch evaluated", zap.Int("patients", len(results)))
	c.JSON(http.StatusOK, out)
}

func (h *Handler) respond(m screening.Measurements, trace bool) screeningResponse {
	resp := screeningResponse{
		ID:     uuid.NewString(),
		Report: report.Build(m, h.engine.Evaluate(m)),
	}
	if trace {
		resp.Activations = h.engine.Explain(m)
	}
	return resp
}

func respondBindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
}

func respondValidation(c *gin.Context, err error, prefix string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation_failed",
		"details": problemsOf(err, prefix),
	})
}

func problemsOf(err error, prefix string) []string {
	var verr *screening.ValidationError
	if !errors.As(err, &verr) {
		return []string{prefix + err.Error()}
	}
	out := make([]string, len(verr.Problems))
	for i, p := range verr.Problems {
		out[i] = prefix + p
	}
	return out
}
