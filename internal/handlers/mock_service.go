package handlers

import (
	"context"

	"reefermon/internal/models"
	"reefermon/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockFleet struct {
	org        models.Org
	orgErr     error
	assets     []models.Asset
	assetsErr  error
	sensors    []models.Sensor
	sensorsErr error

	assetErr    error
	lastAssetID int64
}

func (m *mockFleet) Org(ctx context.Context) (models.Org, error) {
	return m.org, m.orgErr
}
func (m *mockFleet) Assets(ctx context.Context) ([]models.Asset, error) {
	return m.assets, m.assetsErr
}
func (m *mockFleet) Asset(ctx context.Context, id int64) (models.Asset, error) {
	m.lastAssetID = id
	if m.assetErr != nil {
		return models.Asset{}, m.assetErr
	}
	for _, a := range m.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Asset{}, service.ErrUnknownAsset
}
func (m *mockFleet) Sensors(ctx context.Context) ([]models.Sensor, error) {
	return m.sensors, m.sensorsErr
}

type mockStatus struct {
	snap models.StatusSnapshot
	err  error

	calls       int
	lastAssetID int64
	lastUnit    string
}

func (m *mockStatus) Current(ctx context.Context, assetID int64, unit string) (models.StatusSnapshot, error) {
	m.calls++
	m.lastAssetID = assetID
	m.lastUnit = unit
	if m.err != nil {
		return models.StatusSnapshot{}, m.err
	}
	return m.snap, nil
}

type mockHistory struct {
	series models.TemperatureSeries
	err    error

	calls     int
	lastQuery service.HistoryQuery
}

func (m *mockHistory) Series(ctx context.Context, q service.HistoryQuery) (models.TemperatureSeries, error) {
	m.calls++
	m.lastQuery = q
	return m.series, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
