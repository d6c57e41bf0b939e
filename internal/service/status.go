package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reefermon/internal/models"
	"reefermon/internal/telemetry"
)

// humidityLookback bounds the history probe used to approximate a "current"
// humidity value; the provider has no dedicated current-humidity endpoint.
const humidityLookback = 5 * time.Minute

// StatusService builds the live snapshot of one asset from its sensors.
type StatusService struct {
	fetch Fetcher
	fleet Fleet
	now   func() time.Time
}

func NewStatusService(fetch Fetcher, fleet Fleet) *StatusService {
	return &StatusService{fetch: fetch, fleet: fleet, now: time.Now}
}

// Current returns the latest temperature and door state for an asset.
// The temperature sensor is required; door and humidity sensors are
// optional and degrade to "unknown"/absent rather than failing.
func (s *StatusService) Current(ctx context.Context, assetID int64, unit string) (models.StatusSnapshot, error) {
	unit, err := NormalizeUnit(unit)
	if err != nil {
		return models.StatusSnapshot{}, err
	}

	asset, err := s.fleet.Asset(ctx, assetID)
	if err != nil {
		return models.StatusSnapshot{}, err
	}
	tempSensor, ok := asset.SensorByType(models.SensorTemperature)
	if !ok {
		return models.StatusSnapshot{}, fmt.Errorf("%w: asset %d", ErrNoTemperatureSensor, assetID)
	}

	snap := models.StatusSnapshot{
		AssetID:   asset.ID,
		AssetName: asset.Name,
		Unit:      unit,
		Door:      models.DoorUnknown,
	}

	tempStatus, err := s.fetch.CurrentTemperature(ctx, tempSensor.ID)
	switch {
	case errors.Is(err, telemetry.ErrNotFound):
		// sensor known but silent; snapshot stays N/A
	case err != nil:
		return models.StatusSnapshot{}, err
	default:
		if tempStatus.Celsius != nil {
			v := *tempStatus.Celsius
			if unit == models.UnitFahrenheit {
				v = CelsiusToFahrenheit(v)
			}
			snap.Temperature = &v
		}
		snap.ObservedAt = tempStatus.ObservedAt
	}

	if doorSensor, ok := asset.SensorByType(models.SensorDoor); ok {
		doorStatus, err := s.fetch.CurrentDoorStatus(ctx, doorSensor.ID)
		switch {
		case errors.Is(err, telemetry.ErrNotFound):
			// leave unknown
		case err != nil:
			return models.StatusSnapshot{}, err
		default:
			if doorStatus.Closed != nil {
				if *doorStatus.Closed {
					snap.Door = models.DoorClosed
				} else {
					snap.Door = models.DoorOpen
				}
				snap.DoorAt = doorStatus.ObservedAt
			}
		}
	}

	if humSensor, ok := asset.SensorByType(models.SensorHumidity); ok {
		now := s.now().UTC()
		readings, err := s.fetch.HumidityHistory(ctx, humSensor.ID, now.Add(-humidityLookback), now, time.Minute)
		if err == nil && len(readings) > 0 {
			pct := readings[len(readings)-1].Percent
			snap.Humidity = &pct
		}
	}

	return snap, nil
}
