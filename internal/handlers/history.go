package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reefermon/internal/models"
	"reefermon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errMinInvalid  = "invalid 'min' threshold; must be a number"
	errMaxInvalid  = "invalid 'max' threshold; must be a number"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Fallback acceptable band for a reefer, in Celsius, when neither the query
// nor the configuration provides thresholds.
const (
	defaultMinC = 1.0
	defaultMaxC = 6.0
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      Historical temperature series
// @Description  Chart-ready series with door-event overlay, humidity (when a humidity sensor exists), threshold flags, and statistics. Times accept RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'; a date-only 'to' is treated as end-of-day inclusive. Omitting the range means the last 24 hours.
// @Tags         history
// @Produce      json
// @Param        id    path   int     true   "Asset ID"
// @Param        from  query  string  false  "Start of range"  example(2026-08-01)
// @Param        to    query  string  false  "End of range"    example(2026-08-31)
// @Param        unit  query  string  false  "Temperature unit"  Enums(c,f)
// @Param        min   query  number  false  "Minimum acceptable temperature (requested unit)"
// @Param        max   query  number  false  "Maximum acceptable temperature (requested unit)"
// @Success      200  {object}  models.TemperatureSeries
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/assets/{id}/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	assetID, ok := h.parseAssetID(c)
	if !ok {
		return
	}

	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	// If only a date is provided for 'to', make it end-of-day inclusive.
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	unit, err := service.NormalizeUnit(c.Query("unit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	th := thresholdDefaults(unit)
	if qs := c.Query("min"); qs != "" {
		th.Min, err = strconv.ParseFloat(qs, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMinInvalid})
			return
		}
	}
	if qs := c.Query("max"); qs != "" {
		th.Max, err = strconv.ParseFloat(qs, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMaxInvalid})
			return
		}
	}

	series, err := h.services.History.Series(c.Request.Context(), service.HistoryQuery{
		AssetID:    assetID,
		From:       from,
		To:         to,
		Unit:       unit,
		Thresholds: th,
	})
	if err != nil {
		h.respondServiceError(c, err, "history_fetch_failed", "asset_id", assetID)
		return
	}
	c.JSON(http.StatusOK, series)
}

// thresholdDefaults resolves the configured acceptable band, converted to
// the requested unit.
func thresholdDefaults(unit string) models.Thresholds {
	minC, maxC := defaultMinC, defaultMaxC
	if viper.IsSet("defaults.min_c") {
		minC = viper.GetFloat64("defaults.min_c")
	}
	if viper.IsSet("defaults.max_c") {
		maxC = viper.GetFloat64("defaults.max_c")
	}
	if unit == models.UnitFahrenheit {
		return models.Thresholds{
			Min: service.CelsiusToFahrenheit(minC),
			Max: service.CelsiusToFahrenheit(maxC),
		}
	}
	return models.Thresholds{Min: minC, Max: maxC}
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
