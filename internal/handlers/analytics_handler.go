package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/clientpulse-api/internal/period"
	"github.com/sjperalta/clientpulse-api/internal/services"
)

// maxTrendDays bounds the trend window a client may request
const maxTrendDays = 366

type AnalyticsHandler struct {
	analyticsSvc *services.AnalyticsService
	exportSvc    *services.ExportService
	loc          *time.Location
}

func NewAnalyticsHandler(analyticsSvc *services.AnalyticsService, exportSvc *services.ExportService, loc *time.Location) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		exportSvc:    exportSvc,
		loc:          loc,
	}
}

// Weekly returns the current week's metrics, or those of ?start=&end= when given
func (h *AnalyticsHandler) Weekly(c *gin.Context) {
	window, err := parseWindow(c, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.analyticsSvc.Weekly(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Monthly returns the current month's metrics with the weekly breakdown
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	window, err := parseWindow(c, h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.analyticsSvc.Monthly(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *AnalyticsHandler) Retention(c *gin.Context) {
	r, err := h.analyticsSvc.Retention(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AnalyticsHandler) Streak(c *gin.Context) {
	s, err := h.analyticsSvc.Streak(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Trend returns ?days= daily entries ending today
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTrendDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("days must be between 1 and %d", maxTrendDays)})
			return
		}
		days = n
	}

	trend, err := h.analyticsSvc.Trend(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": len(trend), "data": trend})
}

// Summary returns the shareable text summary of ?period=week|month
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	kind := period.ParseKind(c.DefaultQuery("period", string(period.Week)))

	text, err := h.analyticsSvc.Summary(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": kind, "summary": text})
}

// Comparison returns current against previous ?period=week|month
func (h *AnalyticsHandler) Comparison(c *gin.Context) {
	kind := period.ParseKind(c.DefaultQuery("period", string(period.Week)))

	cmp, err := h.analyticsSvc.Comparison(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// Export downloads the analytics report as ?format=csv|xlsx|pdf
func (h *AnalyticsHandler) Export(c *gin.Context) {
	file, err := h.exportSvc.Export(c.Request.Context(), c.DefaultQuery("format", services.FormatCSV))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
