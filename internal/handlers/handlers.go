package handlers

import (
	"errors"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/sjperalta/clientpulse-api/internal/services"
	"github.com/sjperalta/clientpulse-api/pkg/logger"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Analytics *AnalyticsHandler
	Search    *SearchHandler
	Payment   *PaymentHandler
	Job       *JobHandler
}

// NewHandlers creates all handler instances. loc is used to read date-only query parameters.
func NewHandlers(svcs *services.Services, loc *time.Location) *Handlers {
	if loc == nil {
		loc = time.UTC
	}
	return &Handlers{
		Health:    NewHealthHandler(),
		Analytics: NewAnalyticsHandler(svcs.Analytics, svcs.Export, loc),
		Search:    NewSearchHandler(svcs.Search),
		Payment:   NewPaymentHandler(svcs.Payment),
		Job:       NewJobHandler(svcs.Job),
	}
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Index reports that the API is up
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "clientpulse-api",
		"version": "1.0.0",
	})
}

// respondError maps service errors to HTTP statuses. Unexpected errors are
// logged and reported to Sentry when the middleware is installed.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidWindow),
		errors.Is(err, services.ErrUnsupportedFormat),
		errors.Is(err, services.ErrUnknownEntity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
