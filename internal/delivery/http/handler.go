package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kalyan4133/Sales-project/internal/domain"
)

// maxUploadBytes bounds sales note uploads. Notes are short text files; a
// larger body is almost certainly the wrong file.
const maxUploadBytes = 1 << 20

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis AnalysisService
}

// AnalysisService is the part of the usecase layer the handlers need.
type AnalysisService interface {
	AnalyzeText(ctx context.Context, text string, structured map[string]string) (*domain.AnalysisResult, error)
	AnalyzeFile(ctx context.Context, data []byte, filename string) (*domain.AnalysisResult, error)
	ViewProduct(name string) (*domain.ProductView, error)
	Stats() map[string]int
	Ready() bool
}

// NewHandler creates a new HTTP handler
func NewHandler(analysis AnalysisService) *Handler {
	return &Handler{analysis: analysis}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if h.analysis == nil || !h.analysis.Ready() {
		status = "initializing"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "salesiq-backend",
		"version": "1.0.0",
	})
}

// AnalyzeText handles requirement extraction requests for raw note text
func (h *Handler) AnalyzeText(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis service not configured"})
		return
	}

	var req domain.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.analysis.AnalyzeText(c.Request.Context(), req.Text, req.Structured)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AnalyzeFile handles requirement extraction for an uploaded note file
func (h *Handler) AnalyzeFile(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis service not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'file' form field"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file"})
		return
	}

	result, err := h.analysis.AnalyzeFile(c.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ViewProduct returns the detail view for one catalog product by name
func (h *Handler) ViewProduct(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis service not configured"})
		return
	}

	name := c.Param("name")
	view, err := h.analysis.ViewProduct(name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// StoreStats reports catalog and history sizes
func (h *Handler) StoreStats(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis service not configured"})
		return
	}
	c.JSON(http.StatusOK, h.analysis.Stats())
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotInitialized):
		c.Header("Retry-After", "5")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service is still loading its data stores"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrExtractionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Extraction backend temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
