package handlers

import (
	"errors"
	"net/http"

	"reefermon/internal/service"
	"reefermon/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// User-facing messages for upstream failures. Auth problems get an
// actionable instruction; network problems read as transient.
const (
	msgConfigureToken = "telemetry provider rejected the API token; set TELEMETRY_API_TOKEN and restart"
	msgProviderBusy   = "telemetry provider throttled the request; try again shortly"
	msgProviderDown   = "telemetry provider unreachable; try again shortly"
	msgProviderError  = "telemetry provider returned an unexpected response"
	msgNoData         = "no telemetry data found"
)

// logAndJSONError centralizes error logging and the JSON error response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString("requestId")}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps service and provider errors onto the HTTP surface.
func (h *Handler) respondServiceError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	var (
		rateErr   *telemetry.RateLimitError
		statusErr *telemetry.StatusError
	)
	switch {
	case errors.Is(err, service.ErrInvalidUnit) || errors.Is(err, service.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoTemperatureSensor):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrNoTemperatureSensor.Error()})
	case errors.Is(err, service.ErrUnknownAsset):
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrUnknownAsset.Error()})
	case errors.Is(err, telemetry.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoData})
	case telemetry.IsAuth(err):
		h.logAndJSONError(c, http.StatusBadGateway, msgConfigureToken, logKey, err, kv...)
	case errors.As(err, &rateErr):
		h.logAndJSONError(c, http.StatusServiceUnavailable, msgProviderBusy, logKey, err, kv...)
	case errors.As(err, &statusErr):
		h.logAndJSONError(c, http.StatusBadGateway, msgProviderError, logKey, err, kv...)
	default:
		// transport-level failure reaching the provider
		h.logAndJSONError(c, http.StatusServiceUnavailable, msgProviderDown, logKey, err, kv...)
	}
}
