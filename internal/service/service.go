package service

import (
	"context"
	"errors"
	"time"

	"reefermon/internal/cache"
	"reefermon/internal/models"
	"reefermon/internal/telemetry"
)

// Fetcher is the provider surface the services consume. Implemented by
// *telemetry.Client; stubbed in tests.
type Fetcher interface {
	Org(ctx context.Context) (models.Org, error)
	Vehicles(ctx context.Context) ([]models.Asset, error)
	Sensors(ctx context.Context) ([]models.Sensor, error)
	TemperatureHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.Reading, error)
	DoorHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.DoorState, error)
	HumidityHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.HumidityReading, error)
	CurrentTemperature(ctx context.Context, sensorID int64) (telemetry.TemperatureStatus, error)
	CurrentDoorStatus(ctx context.Context, sensorID int64) (telemetry.DoorStatus, error)
}

var (
	ErrUnknownAsset        = errors.New("unknown asset")
	ErrNoTemperatureSensor = errors.New("asset has no temperature sensor")
	ErrInvalidRange        = errors.New("invalid time range: from must be <= to")
	ErrInvalidUnit         = errors.New("invalid temperature unit")
)

// Fleet exposes roster lookups: organization, assets, and sensor inventory.
type Fleet interface {
	Org(ctx context.Context) (models.Org, error)
	Assets(ctx context.Context) ([]models.Asset, error)
	Asset(ctx context.Context, id int64) (models.Asset, error)
	Sensors(ctx context.Context) ([]models.Sensor, error)
}

// Status exposes the live view of a single asset.
type Status interface {
	Current(ctx context.Context, assetID int64, unit string) (models.StatusSnapshot, error)
}

// History exposes transformed, chart-ready historical series.
type History interface {
	Series(ctx context.Context, q HistoryQuery) (models.TemperatureSeries, error)
}

// Service aggregates all sub-services.
type Service struct {
	Fleet
	Status
	History
}

// Deps carries everything NewService needs to wire the sub-services.
type Deps struct {
	Fetcher   Fetcher
	Cache     *cache.TTLCache
	OrgTTL    time.Duration
	RosterTTL time.Duration
}

// NewService wires the telemetry fetcher into concrete services.
func NewService(d Deps) *Service {
	fleet := NewFleetService(d.Fetcher, d.Cache, d.OrgTTL, d.RosterTTL)
	return &Service{
		Fleet:   fleet,
		Status:  NewStatusService(d.Fetcher, fleet),
		History: NewHistoryService(d.Fetcher, fleet),
	}
}
