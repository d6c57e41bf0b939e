package service

import (
	"context"
	"fmt"
	"time"

	"reefermon/internal/models"
	"reefermon/internal/telemetry"
)

// defaultLookback is the range used when the caller gives no bounds,
// matching the dashboard's "last 24 hours" preset.
const defaultLookback = 24 * time.Hour

// HistoryQuery describes one chart request. Thresholds are expressed in the
// requested unit. Zero steps fall back to the provider defaults.
type HistoryQuery struct {
	AssetID         int64
	From            time.Time
	To              time.Time
	Unit            string
	Thresholds      models.Thresholds
	TemperatureStep time.Duration
	DoorStep        time.Duration
}

// HistoryService fetches raw series from the provider and hands them to the
// transformer. It holds no state between requests.
type HistoryService struct {
	fetch Fetcher
	fleet Fleet
	now   func() time.Time
}

func NewHistoryService(fetch Fetcher, fleet Fleet) *HistoryService {
	return &HistoryService{fetch: fetch, fleet: fleet, now: time.Now}
}

// Series builds the chart-ready series for one asset and range. Door and
// humidity series are included only when the asset carries those sensors.
// An empty provider result is a valid empty series, not an error.
func (s *HistoryService) Series(ctx context.Context, q HistoryQuery) (models.TemperatureSeries, error) {
	unit, err := NormalizeUnit(q.Unit)
	if err != nil {
		return models.TemperatureSeries{}, err
	}
	from, to, err := s.resolveRange(q.From, q.To)
	if err != nil {
		return models.TemperatureSeries{}, err
	}
	tempStep := q.TemperatureStep
	if tempStep <= 0 {
		tempStep = telemetry.DefaultTemperatureStep
	}
	doorStep := q.DoorStep
	if doorStep <= 0 {
		doorStep = telemetry.DefaultDoorStep
	}

	asset, err := s.fleet.Asset(ctx, q.AssetID)
	if err != nil {
		return models.TemperatureSeries{}, err
	}
	tempSensor, ok := asset.SensorByType(models.SensorTemperature)
	if !ok {
		return models.TemperatureSeries{}, fmt.Errorf("%w: asset %d", ErrNoTemperatureSensor, q.AssetID)
	}

	readings, err := s.fetch.TemperatureHistory(ctx, tempSensor.ID, from, to, tempStep)
	if err != nil {
		return models.TemperatureSeries{}, err
	}

	var doors []models.DoorState
	if doorSensor, ok := asset.SensorByType(models.SensorDoor); ok {
		doors, err = s.fetch.DoorHistory(ctx, doorSensor.ID, from, to, doorStep)
		if err != nil {
			return models.TemperatureSeries{}, err
		}
	}

	var humidity []models.HumidityReading
	if humSensor, ok := asset.SensorByType(models.SensorHumidity); ok {
		humidity, err = s.fetch.HumidityHistory(ctx, humSensor.ID, from, to, telemetry.DefaultHumidityStep)
		if err != nil {
			return models.TemperatureSeries{}, err
		}
	}

	series := BuildSeries(asset.ID, unit, readings, doors, humidity, q.Thresholds)
	series.From = from
	series.To = to
	return series, nil
}

// resolveRange normalizes bounds to UTC, defaulting to the last 24 hours.
// A zero "to" means "now"; a zero "from" means one lookback before "to".
func (s *HistoryService) resolveRange(from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.Add(-defaultLookback)
	}
	from, to = from.UTC(), to.UTC()
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, to, nil
}
