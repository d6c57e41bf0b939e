package service

import (
	"fmt"
	"strings"

	"reefermon/internal/models"
)

// Transform functions are pure and deterministic: the same readings, door
// states and thresholds always produce the same series, so re-running a
// transform is safe and cheap.

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}

// NormalizeUnit maps user input ("C", "fahrenheit", "°F", ...) to the
// canonical unit constants. Empty input defaults to Celsius.
func NormalizeUnit(u string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(u), "°"))) {
	case "", "c", "celsius", "°c":
		return models.UnitCelsius, nil
	case "f", "fahrenheit", "°f":
		return models.UnitFahrenheit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, u)
	}
}

// ConvertReadings maps raw Celsius readings into chart samples in the
// requested unit. Violation flags are left unset; see FlagThresholds.
func ConvertReadings(readings []models.Reading, unit string) []models.Sample {
	samples := make([]models.Sample, 0, len(readings))
	for _, r := range readings {
		temp := r.Celsius
		if unit == models.UnitFahrenheit {
			temp = CelsiusToFahrenheit(r.Celsius)
		}
		samples = append(samples, models.Sample{Time: r.Time, Temperature: temp})
	}
	return samples
}

// FlagThresholds marks samples outside (min, max) as violations. The bounds
// themselves are acceptable: a sample exactly at a threshold is in range.
func FlagThresholds(samples []models.Sample, th models.Thresholds) []models.Sample {
	flagged := make([]models.Sample, len(samples))
	for i, s := range samples {
		s.Violation = s.Temperature < th.Min || s.Temperature > th.Max
		flagged[i] = s
	}
	return flagged
}

// DetectDoorEvents turns the sampled door-closed series into transition
// events. The leading sample only establishes state and emits nothing.
// Event IDs are derived from the transition so repeated transforms agree.
func DetectDoorEvents(states []models.DoorState) []models.DoorEvent {
	var events []models.DoorEvent
	for i := 1; i < len(states); i++ {
		prev, cur := states[i-1], states[i]
		if prev.Closed == cur.Closed {
			continue
		}
		opened := prev.Closed && !cur.Closed
		direction := "close"
		if opened {
			direction = "open"
		}
		events = append(events, models.DoorEvent{
			ID:     fmt.Sprintf("door-%s-%d", direction, cur.Time.UnixMilli()),
			Time:   cur.Time,
			Opened: opened,
		})
	}
	return events
}

// ComputeStats summarizes flagged samples and door events.
func ComputeStats(samples []models.Sample, events []models.DoorEvent) models.SeriesStats {
	stats := models.SeriesStats{}
	for _, e := range events {
		if e.Opened {
			stats.DoorOpenCount++
		}
	}
	if len(samples) == 0 {
		return stats
	}
	sum := 0.0
	stats.Min = samples[0].Temperature
	stats.Max = samples[0].Temperature
	for _, s := range samples {
		sum += s.Temperature
		if s.Temperature < stats.Min {
			stats.Min = s.Temperature
		}
		if s.Temperature > stats.Max {
			stats.Max = s.Temperature
		}
		if s.Violation {
			stats.ViolationCount++
		}
	}
	stats.Average = sum / float64(len(samples))
	return stats
}

// BuildSeries assembles the chart-ready series for one asset: convert to the
// requested unit, flag threshold violations, derive door events, and attach
// statistics. Input order is preserved (upstream guarantees non-decreasing
// timestamps within a fetched series).
func BuildSeries(assetID int64, unit string, readings []models.Reading, doors []models.DoorState, humidity []models.HumidityReading, th models.Thresholds) models.TemperatureSeries {
	samples := FlagThresholds(ConvertReadings(readings, unit), th)
	events := DetectDoorEvents(doors)
	return models.TemperatureSeries{
		AssetID:   assetID,
		Unit:      unit,
		Samples:   samples,
		Events:    events,
		Humidity:  humidity,
		Stats:     ComputeStats(samples, events),
		Empty:     len(samples) == 0,
		Threshold: th,
	}
}
