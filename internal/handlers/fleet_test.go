package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reefermon/internal/models"
	"reefermon/internal/service"
	"reefermon/internal/telemetry"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != statusOK {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestGetOrg(t *testing.T) {
	fl := &mockFleet{org: models.Org{ID: "42", Name: "Polar Logistics"}}
	r := newTestRouter(&service.Service{Fleet: fl})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/org", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("org status=%d, body=%s", w.Code, w.Body.String())
	}
	var org models.Org
	if err := json.Unmarshal(w.Body.Bytes(), &org); err != nil {
		t.Fatalf("unmarshal org: %v", err)
	}
	if org.ID != "42" || org.Name != "Polar Logistics" {
		t.Fatalf("unexpected org: %+v", org)
	}
}

func TestGetOrg_AuthErrorMapsToBadGateway(t *testing.T) {
	fl := &mockFleet{orgErr: &telemetry.AuthError{Status: http.StatusUnauthorized}}
	r := newTestRouter(&service.Service{Fleet: fl})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/org", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on auth failure, got %d", w.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != msgConfigureToken {
		t.Fatalf("expected token guidance, got %q", body["error"])
	}
}

func TestListAssets(t *testing.T) {
	fl := &mockFleet{assets: []models.Asset{
		{ID: 1, Name: "Reefer 1", Sensors: []models.Sensor{{ID: 10, Type: models.SensorTemperature}}},
		{ID: 2, Name: "Reefer 2"},
	}}
	r := newTestRouter(&service.Service{Fleet: fl})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("assets status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count  int            `json:"count"`
		Assets []models.Asset `json:"assets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal assets: %v", err)
	}
	if resp.Count != 2 || len(resp.Assets) != 2 {
		t.Fatalf("unexpected roster: %+v", resp)
	}
	if resp.Assets[0].Sensors[0].ID != 10 {
		t.Fatalf("sensor config not carried through: %+v", resp.Assets[0])
	}
}

func TestListAssets_ProviderDown(t *testing.T) {
	fl := &mockFleet{assetsErr: errors.New("dial tcp: connection refused")}
	r := newTestRouter(&service.Service{Fleet: fl})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on transport failure, got %d", w.Code)
	}
}

func TestListSensors(t *testing.T) {
	fl := &mockFleet{sensors: []models.Sensor{
		{ID: 10, Type: models.SensorTemperature},
		{ID: 11, Type: models.SensorDoor},
		{ID: 12, Type: models.SensorHumidity},
	}}
	r := newTestRouter(&service.Service{Fleet: fl})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sensors", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("sensors status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count   int             `json:"count"`
		Sensors []models.Sensor `json:"sensors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal sensors: %v", err)
	}
	if resp.Count != 3 {
		t.Fatalf("unexpected sensor count: %d", resp.Count)
	}
}

func TestAssetSensors(t *testing.T) {
	fl := &mockFleet{assets: []models.Asset{
		{ID: 5, Name: "Reefer 5", Sensors: []models.Sensor{
			{ID: 50, Type: models.SensorTemperature},
			{ID: 51, Type: models.SensorDoor},
		}},
	}}
	r := newTestRouter(&service.Service{Fleet: fl})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/5/sensors", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("asset sensors status=%d, body=%s", w.Code, w.Body.String())
	}
	if fl.lastAssetID != 5 {
		t.Fatalf("asset id not forwarded: %d", fl.lastAssetID)
	}
	var resp struct {
		AssetID int64           `json:"asset_id"`
		Sensors []models.Sensor `json:"sensors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AssetID != 5 || len(resp.Sensors) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAssetSensors_UnknownAsset(t *testing.T) {
	fl := &mockFleet{assets: []models.Asset{{ID: 5}}}
	r := newTestRouter(&service.Service{Fleet: fl})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/99/sensors", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown asset, got %d", w.Code)
	}
}

func TestAssetSensors_BadID(t *testing.T) {
	r := newTestRouter(&service.Service{Fleet: &mockFleet{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/truck-one/sensors", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}
