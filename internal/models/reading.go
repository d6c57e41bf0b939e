package models

import "time"

// Reading is a single temperature sample as returned by the provider,
// normalized from millidegrees to degrees Celsius.
type Reading struct {
	Time    time.Time `json:"time"`
	Celsius float64   `json:"celsius"`
}

// DoorState is a sampled door-closed observation. The provider carries the
// last known state forward, so consecutive samples with the same value are
// expected and only transitions are meaningful.
type DoorState struct {
	Time   time.Time `json:"time"`
	Closed bool      `json:"closed"`
}

// HumidityReading is a sampled relative-humidity observation (percent).
type HumidityReading struct {
	Time    time.Time `json:"time"`
	Percent float64   `json:"percent"`
}

// DoorEvent is a recorded open/close transition derived from the sampled
// door series. Opened=true marks a closed-to-open transition.
type DoorEvent struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Opened bool      `json:"opened"`
}
