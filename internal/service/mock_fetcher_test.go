package service

import (
	"context"
	"time"

	"reefermon/internal/models"
	"reefermon/internal/telemetry"
)

// stubFetcher is a hand-rolled Fetcher with per-call counters so cache and
// wiring behavior can be asserted.
type stubFetcher struct {
	org    models.Org
	orgErr error

	vehicles    []models.Asset
	vehiclesErr error

	sensors    []models.Sensor
	sensorsErr error

	tempHistory    []models.Reading
	tempHistoryErr error

	doorHistory    []models.DoorState
	doorHistoryErr error

	humHistory    []models.HumidityReading
	humHistoryErr error

	tempStatus    telemetry.TemperatureStatus
	tempStatusErr error

	doorStatus    telemetry.DoorStatus
	doorStatusErr error

	orgCalls      int
	vehiclesCalls int
	sensorsCalls  int

	lastTempSensor int64
	lastDoorSensor int64
	lastHumSensor  int64
	lastFrom       time.Time
	lastTo         time.Time
	lastTempStep   time.Duration
	lastDoorStep   time.Duration
}

func (f *stubFetcher) Org(ctx context.Context) (models.Org, error) {
	f.orgCalls++
	return f.org, f.orgErr
}

func (f *stubFetcher) Vehicles(ctx context.Context) ([]models.Asset, error) {
	f.vehiclesCalls++
	return f.vehicles, f.vehiclesErr
}

func (f *stubFetcher) Sensors(ctx context.Context) ([]models.Sensor, error) {
	f.sensorsCalls++
	return f.sensors, f.sensorsErr
}

func (f *stubFetcher) TemperatureHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.Reading, error) {
	f.lastTempSensor = sensorID
	f.lastFrom, f.lastTo = from, to
	f.lastTempStep = step
	return f.tempHistory, f.tempHistoryErr
}

func (f *stubFetcher) DoorHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.DoorState, error) {
	f.lastDoorSensor = sensorID
	f.lastDoorStep = step
	return f.doorHistory, f.doorHistoryErr
}

func (f *stubFetcher) HumidityHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.HumidityReading, error) {
	f.lastHumSensor = sensorID
	return f.humHistory, f.humHistoryErr
}

func (f *stubFetcher) CurrentTemperature(ctx context.Context, sensorID int64) (telemetry.TemperatureStatus, error) {
	f.lastTempSensor = sensorID
	return f.tempStatus, f.tempStatusErr
}

func (f *stubFetcher) CurrentDoorStatus(ctx context.Context, sensorID int64) (telemetry.DoorStatus, error) {
	f.lastDoorSensor = sensorID
	return f.doorStatus, f.doorStatusErr
}

// reeferAsset builds a roster entry with the requested sensor mix.
func reeferAsset(id int64, withDoor, withHumidity bool) models.Asset {
	a := models.Asset{
		ID:   id,
		Name: "Reefer",
		Sensors: []models.Sensor{
			{ID: id*100 + 1, Type: models.SensorTemperature, Position: "cargo"},
		},
	}
	if withDoor {
		a.Sensors = append(a.Sensors, models.Sensor{ID: id*100 + 2, Type: models.SensorDoor, Position: "rear"})
	}
	if withHumidity {
		a.Sensors = append(a.Sensors, models.Sensor{ID: id*100 + 3, Type: models.SensorHumidity, Position: "cargo"})
	}
	return a
}
