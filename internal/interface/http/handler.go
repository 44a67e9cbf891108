package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/popslsls21/CServices/internal/domain/analysis"
	"github.com/popslsls21/CServices/internal/domain/diagnosis"
	apperrors "github.com/popslsls21/CServices/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	diagnosisSvc diagnosis.Service
	analysisSvc  analysis.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(diagnosisSvc diagnosis.Service, analysisSvc analysis.Service, logger *slog.Logger) *Handler {
	return &Handler{
		diagnosisSvc: diagnosisSvc,
		analysisSvc:  analysisSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// Search runs a diagnostic search for a described vehicle problem.
func (h *Handler) Search(c *gin.Context) {
	var req diagnosis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	report, err := h.diagnosisSvc.Diagnose(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "diagnosis_failed"
		if apperrors.IsCode(err, apperrors.CodeInvalidInput) {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, report)
}

// AnalyzeVehicle runs the full telemetry analysis for one vehicle.
func (h *Handler) AnalyzeVehicle(c *gin.Context) {
	req := analysis.Request{
		VehicleID: c.Param("id"),
		Brand:     c.Query("brand"),
		Model:     c.Query("model"),
		Condition: c.Query("condition"),
	}
	if year := c.Query("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "year must be an integer", err))
			return
		}
		req.Year = parsed
	}

	result, err := h.analysisSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "analysis_failed", errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// Trending returns the most frequently diagnosed queries.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.diagnosisSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "diagnosis_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"trending": items})
}

// Health answers liveness probes.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
