package models

import "time"

// Temperature units accepted on the API surface.
const (
	UnitCelsius    = "c"
	UnitFahrenheit = "f"
)

// Sample is one transformed chart point: timestamp, temperature in the
// requested unit, and whether it violates the configured thresholds.
type Sample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Violation   bool      `json:"violation"`
}

// SeriesStats summarizes a temperature series for the dashboard header.
type SeriesStats struct {
	Average        float64 `json:"average"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	ViolationCount int     `json:"violation_count"`
	DoorOpenCount  int     `json:"door_open_count"`
}

// TemperatureSeries is the transformed, chart-ready view of one asset over a
// time range: ordered samples, door transitions, optional humidity, and stats.
// Empty provider data yields an empty (but valid) series.
type TemperatureSeries struct {
	AssetID   int64             `json:"asset_id"`
	Unit      string            `json:"unit"` // c | f
	From      time.Time         `json:"from"`
	To        time.Time         `json:"to"`
	Samples   []Sample          `json:"samples"`
	Events    []DoorEvent       `json:"events,omitempty"`
	Humidity  []HumidityReading `json:"humidity,omitempty"`
	Stats     SeriesStats       `json:"stats"`
	Empty     bool              `json:"empty"`
	Threshold Thresholds        `json:"thresholds"`
}

// Thresholds is the acceptable temperature band, in the series unit.
// A sample exactly at a bound is within range; violations are strict.
type Thresholds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
