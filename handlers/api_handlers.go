package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"student-aid-matcher/logger"
	"student-aid-matcher/matcher"
	"student-aid-matcher/models"
	"student-aid-matcher/service"
	"student-aid-matcher/sheets"
)

// APIHandler holds the dependencies for API handlers
type APIHandler struct {
	Service *service.Service
	log     *logger.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(svc *service.Service, log *logger.Logger) *APIHandler {
	return &APIHandler{
		Service: svc,
		log:     log,
	}
}

// ValidateFileRequest is the body of POST /api/files/validate
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ExportRequest is the body of POST /api/export. Matches are taken from the
// session when SessionID is set.
type ExportRequest struct {
	SessionID  string               `json:"sessionId"`
	Matches    []models.MatchResult `json:"matches"`
	OutputPath string               `json:"outputPath"`
}

// ExportResponse names the file that was written
type ExportResponse struct {
	Path string `json:"path"`
}

// statusFor maps an operation error to an HTTP status
func statusFor(err error) int {
	var readErr *sheets.ReadError
	switch {
	case errors.Is(err, service.ErrMissingSelection):
		return http.StatusBadRequest
	case errors.Is(err, sheets.ErrFileNotFound), errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, sheets.ErrExport):
		return http.StatusInternalServerError
	case errors.Is(err, sheets.ErrUnsupportedFormat), errors.As(err, &readErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError[T any](c *gin.Context, data T, err error) {
	c.JSON(statusFor(err), models.Fail(data, err))
}

func respondOK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, models.OK(data))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.Result[any]{Message: "Invalid request body: " + err.Error()})
}

// --- Category Handlers ---

// GetCategories handles GET /api/categories
func (h *APIHandler) GetCategories(c *gin.Context) {
	respondOK(c, h.Service.ListCategories())
}

// --- File Handlers ---

// ValidateFile handles POST /api/files/validate
func (h *APIHandler) ValidateFile(c *gin.Context) {
	var req ValidateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	info, err := h.Service.ValidateFile(req.Path)
	if err != nil {
		respondError[*models.FileInfo](c, nil, err)
		return
	}
	respondOK(c, info)
}

// --- Matching Handlers ---

// FindMatches handles POST /api/matches. Identity numbers are returned
// unmasked so the list can be exported; display masking is up to the caller.
func (h *APIHandler) FindMatches(c *gin.Context) {
	var req service.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	matches, err := h.Service.FindMatches(req)
	if err != nil {
		h.log.Warn("Error in FindMatches handler", "error", err)
		respondError(c, []models.MatchResult{}, err)
		return
	}
	respondOK(c, matches)
}

// GetStatistics handles POST /api/statistics
func (h *APIHandler) GetStatistics(c *gin.Context) {
	var req service.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	stats, err := h.Service.GetStatistics(req)
	if err != nil {
		h.log.Warn("Error in GetStatistics handler", "error", err)
		respondError[*models.MatchStatistics](c, nil, err)
		return
	}
	respondOK(c, stats)
}

// Query handles POST /api/query: matches and statistics in one call. On
// failure the envelope still carries whichever part succeeded.
func (h *APIHandler) Query(c *gin.Context) {
	var req service.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Service.Query(c.Request.Context(), req)
	if out.Matches == nil {
		out.Matches = []models.MatchResult{}
	}
	if err != nil {
		respondError(c, out, err)
		return
	}
	respondOK(c, out)
}

// --- Session Handlers ---

// ListSessions handles GET /api/sessions
func (h *APIHandler) ListSessions(c *gin.Context) {
	list, err := h.Service.ListSessions(c.Request.Context())
	if err != nil {
		h.log.Error("Error in ListSessions handler", "error", err)
		respondError(c, []models.SessionSummary{}, err)
		return
	}
	respondOK(c, list)
}

// GetSessionMatches handles GET /api/sessions/:sessionId/matches?page=&pageSize=
// This is the result table view, so identity numbers are masked.
func (h *APIHandler) GetSessionMatches(c *gin.Context) {
	id := c.Param("sessionId")
	page, err := queryInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any](nil, err))
		return
	}
	pageSize, err := queryInt(c, "pageSize", h.Service.DefaultPageSize())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail[any](nil, err))
		return
	}

	p, err := h.Service.Page(c.Request.Context(), id, page, pageSize)
	if err != nil {
		respondError[*models.Page[models.MatchResult]](c, nil, err)
		return
	}
	p.Items = matcher.MaskMatches(p.Items)
	respondOK(c, p)
}

// DeleteSession handles DELETE /api/sessions/:sessionId
func (h *APIHandler) DeleteSession(c *gin.Context) {
	if err := h.Service.DeleteSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		respondError[any](c, nil, err)
		return
	}
	c.JSON(http.StatusOK, models.Result[any]{Success: true})
}

// --- Export Handler ---

// Export handles POST /api/export
func (h *APIHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		path string
		err  error
	)
	if req.SessionID != "" {
		path, err = h.Service.ExportSession(c.Request.Context(), req.SessionID, req.OutputPath)
	} else {
		path, err = h.Service.Export(req.Matches, req.OutputPath)
	}
	if err != nil {
		respondError[*ExportResponse](c, nil, err)
		return
	}
	respondOK(c, ExportResponse{Path: path})
}

// --- Ping Handler ---
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.OK("Pong!"))
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + name + ": " + raw)
	}
	return n, nil
}
