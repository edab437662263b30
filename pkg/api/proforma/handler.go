// Package proforma exposes the projection engine over HTTP.
package proforma

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/logger"
	"hospitality_proforma/pkg/core/pipeline"
	"hospitality_proforma/pkg/core/report"
	"hospitality_proforma/pkg/core/scenario"
	"hospitality_proforma/pkg/core/store"
	"hospitality_proforma/pkg/core/valuation"
)

const defaultListLimit = 20

// Handler serves scenario runs. Repo may be nil, in which case runs are not
// persisted and the run lookup routes answer 404.
type Handler struct {
	engine *pipeline.Engine
	repo   store.Repository
	log    *zap.SugaredLogger
}

// NewHandler creates a handler over the given engine and repository
func NewHandler(engine *pipeline.Engine, repo store.Repository) *Handler {
	return &Handler{engine: engine, repo: repo, log: logger.Named("api")}
}

// Register mounts the routes
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api/proforma")
	api.POST("/run", h.Run)
	api.POST("/returns", h.Returns)
	api.POST("/report", h.Report)
	api.GET("/runs", h.ListRuns)
	api.GET("/runs/:id", h.GetRun)
}

// PropertyReturns is one property's line in the returns response
type PropertyReturns struct {
	ID             string                       `json:"id"`
	Name           string                       `json:"name"`
	Returns        valuation.ReturnsSummary     `json:"returns"`
	Discounted     valuation.DiscountedCashFlow `json:"discounted"`
	ExitCoversDebt bool                         `json:"exit_covers_debt"`
}

// ReturnsResponse is the body of POST /api/proforma/returns
type ReturnsResponse struct {
	RunID        string                       `json:"run_id"`
	Portfolio    valuation.ReturnsSummary     `json:"portfolio"`
	Discounted   valuation.DiscountedCashFlow `json:"discounted"`
	Distribution valuation.Distribution       `json:"distribution"`
	Properties   []PropertyReturns            `json:"properties"`
	Rejected     []pipeline.Rejection         `json:"rejected,omitempty"`
}

// Health answers liveness checks
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run projects the posted scenario and returns the full result
func (h *Handler) Run(c *gin.Context) {
	res, ok := h.execute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// Returns projects the posted scenario and returns only the returns summaries
func (h *Handler) Returns(c *gin.Context) {
	res, ok := h.execute(c)
	if !ok {
		return
	}
	resp := ReturnsResponse{
		RunID:        res.RunID,
		Portfolio:    res.Returns,
		Discounted:   res.Discounted,
		Distribution: res.Distribution,
		Properties:   make([]PropertyReturns, 0, len(res.Properties)),
		Rejected:     res.Rejected,
	}
	for _, pr := range res.Properties {
		resp.Properties = append(resp.Properties, PropertyReturns{
			ID:             pr.ID,
			Name:           pr.Name,
			Returns:        pr.Returns,
			Discounted:     pr.Discounted,
			ExitCoversDebt: pr.Exit.DebtCovered(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Report projects the posted scenario and renders it. ?format=md returns the
// Markdown source instead of HTML.
func (h *Handler) Report(c *gin.Context) {
	res, ok := h.execute(c)
	if !ok {
		return
	}
	opts := report.Options{
		Title:          c.Query("title"),
		SkipProperties: c.Query("properties") == "false",
		SkipFindings:   c.Query("findings") == "false",
	}

	if c.Query("format") == "md" {
		md, err := report.Markdown(res, opts)
		if err != nil {
			h.respondWithError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}
	page, err := report.HTMLDocument(res, opts)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// GetRun returns a stored run
func (h *Handler) GetRun(c *gin.Context) {
	if h.repo == nil {
		h.notFound(c, "Run not found")
		return
	}
	res, err := h.repo.LoadRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListRuns lists stored runs, newest first
func (h *Handler) ListRuns(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []store.RunSummary{}})
		return
	}
	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": "Invalid limit"}})
			return
		}
		limit = n
	}
	runs, err := h.repo.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.respondWithError(c, err)
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// execute decodes the body, runs the scenario and persists the result. It
// writes the error response itself and reports whether the caller should
// continue.
func (h *Handler) execute(c *gin.Context) (*pipeline.Result, bool) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": "Request body must be a scenario"}})
		return nil, false
	}
	s, err := scenario.Decode(body, scenario.FormatJSON)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "INVALID_INPUT", "message": err.Error()}})
		return nil, false
	}
	if s.Name == "" {
		s.Name = "api"
	}

	res, err := h.engine.Run(c.Request.Context(), s)
	if err != nil {
		h.respondWithError(c, err)
		return nil, false
	}

	if h.repo != nil {
		if err := h.repo.SaveRun(c.Request.Context(), res); err != nil {
			h.log.Warnw("[API] failed to persist run", "run_id", res.RunID, "error", err)
		}
	}
	return res, true
}

// respondWithError maps engine and store errors to JSON error responses
func (h *Handler) respondWithError(c *gin.Context, err error) {
	var ces assumption.ConfigErrors
	switch {
	case errors.As(err, &ces):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": gin.H{
				"code":    "INVALID_ASSUMPTIONS",
				"message": ces.Error(),
				"fields":  ces,
			},
		})
	case errors.Is(err, store.ErrNotFound):
		h.notFound(c, "Run not found")
	default:
		h.log.Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "An unexpected error occurred",
			},
		})
	}
}

func (h *Handler) notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": msg}})
}
