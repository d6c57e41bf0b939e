package models

import "time"

// Door states for StatusSnapshot. Unknown covers assets without a door
// sensor or a sensor that has not reported yet.
const (
	DoorClosed  = "closed"
	DoorOpen    = "open"
	DoorUnknown = "unknown"
)

// StatusSnapshot is the live view of one asset: latest temperature, latest
// door state, and humidity when the asset carries a humidity sensor.
type StatusSnapshot struct {
	AssetID     int64      `json:"asset_id"`
	AssetName   string     `json:"asset_name"`
	Temperature *float64   `json:"temperature,omitempty"` // nil when the sensor has not reported
	Unit        string     `json:"unit"`
	ObservedAt  *time.Time `json:"observed_at,omitempty"`
	Door        string     `json:"door"` // closed | open | unknown
	DoorAt      *time.Time `json:"door_at,omitempty"`
	Humidity    *float64   `json:"humidity,omitempty"`
}

// Org identifies the provider organization the token belongs to.
type Org struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
