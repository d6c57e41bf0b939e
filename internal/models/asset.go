package models

// Sensor kinds as reported by the telemetry provider.
const (
	SensorTemperature = "temperature"
	SensorHumidity    = "humidity"
	SensorDoor        = "door"
)

// Sensor is one gateway-attached sensor mounted on an asset.
type Sensor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	MAC      string `json:"mac,omitempty"`
	Type     string `json:"type"` // temperature | humidity | door
	Position string `json:"position,omitempty"`
}

// Asset is a monitored reefer (refrigerated vehicle or container).
// The roster comes from the fleet provider; this service never creates assets.
type Asset struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	LicensePlate string   `json:"license_plate,omitempty"`
	Make         string   `json:"make,omitempty"`
	Model        string   `json:"model,omitempty"`
	Serial       string   `json:"serial,omitempty"`
	VIN          string   `json:"vin,omitempty"`
	Year         int      `json:"year,omitempty"`
	Sensors      []Sensor `json:"sensors,omitempty"`
}

// SensorByType returns the first sensor of the given type, or false when absent.
func (a Asset) SensorByType(typ string) (Sensor, bool) {
	for _, s := range a.Sensors {
		if s.Type == typ {
			return s, true
		}
	}
	return Sensor{}, false
}
