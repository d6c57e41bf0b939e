// Package telemetry implements the fleet-telemetry provider client: roster,
// current sensor values, and sampled history for temperature, humidity and
// door sensors. The client is a thin fetch layer; it does not retry, cache,
// or reshape beyond unit normalization.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"reefermon/internal/models"
)

// Sampling steps matching the provider's recommended granularity: coarse for
// temperature charts, fine for door transitions.
const (
	DefaultTemperatureStep = 60 * time.Second
	DefaultDoorStep        = 5 * time.Second
	DefaultHumidityStep    = 5 * time.Minute

	defaultTimeout = 15 * time.Second
)

// History series fields and fill policies understood by the provider.
const (
	fieldAmbientTemperature = "ambientTemperature"
	fieldDoorClosed         = "doorClosed"
	fieldHumidity           = "humidity"

	fillWithNull     = "withNull"
	fillWithPrevious = "withPrevious"
)

// Config carries the provider endpoint and the static bearer token.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client talks to the telemetry provider's REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New builds a Client. Timeout falls back to a conservative default.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// TemperatureStatus is the latest temperature observation for one sensor.
type TemperatureStatus struct {
	SensorID   int64
	SensorName string
	Celsius    *float64
	ObservedAt *time.Time
	VehicleID  int64
}

// DoorStatus is the latest door observation for one sensor.
type DoorStatus struct {
	SensorID   int64
	SensorName string
	Closed     *bool
	ObservedAt *time.Time
	VehicleID  int64
}

// ---- wire types ----

type orgEnvelope struct {
	Data struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

type sensorJSON struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	MAC  string `json:"mac"`
}

type areaJSON struct {
	Position           string       `json:"position"`
	TemperatureSensors []sensorJSON `json:"temperatureSensors"`
	HumiditySensors    []sensorJSON `json:"humiditySensors"`
}

type doorJSON struct {
	Position string     `json:"position"`
	Sensor   sensorJSON `json:"sensor"`
}

type sensorConfigJSON struct {
	Areas []areaJSON `json:"areas"`
	Doors []doorJSON `json:"doors"`
}

type vehicleJSON struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	LicensePlate        string            `json:"licensePlate"`
	Make                string            `json:"make"`
	Model               string            `json:"model"`
	Serial              string            `json:"serial"`
	VIN                 string            `json:"vin"`
	Year                int               `json:"year"`
	SensorConfiguration *sensorConfigJSON `json:"sensorConfiguration"`
}

type vehiclesPage struct {
	Data       []vehicleJSON `json:"data"`
	Pagination struct {
		EndCursor   string `json:"endCursor"`
		HasNextPage bool   `json:"hasNextPage"`
	} `json:"pagination"`
}

type historySeriesReq struct {
	Field    string `json:"field"`
	WidgetID int64  `json:"widgetId"`
}

type historyRequest struct {
	StartMs     int64              `json:"startMs"`
	EndMs       int64              `json:"endMs"`
	StepMs      int64              `json:"stepMs"`
	FillMissing string             `json:"fillMissing"`
	Series      []historySeriesReq `json:"series"`
}

type historyPoint struct {
	TimeMs int64             `json:"timeMs"`
	Series []json.RawMessage `json:"series"`
}

type historyResponse struct {
	Results []historyPoint `json:"results"`
}

type sensorsRequest struct {
	Sensors []int64 `json:"sensors"`
}

type currentTemperatureResponse struct {
	Sensors []struct {
		ID                     int64  `json:"id"`
		Name                   string `json:"name"`
		AmbientTemperature     *int64 `json:"ambientTemperature"`
		AmbientTemperatureTime string `json:"ambientTemperatureTime"`
		VehicleID              int64  `json:"vehicleId"`
	} `json:"sensors"`
}

type currentDoorResponse struct {
	Sensors []struct {
		ID             int64  `json:"id"`
		Name           string `json:"name"`
		DoorClosed     *bool  `json:"doorClosed"`
		DoorStatusTime string `json:"doorStatusTime"`
		VehicleID      int64  `json:"vehicleId"`
	} `json:"sensors"`
}

type sensorListResponse struct {
	Sensors []struct {
		ID         int64  `json:"id"`
		Name       string `json:"name"`
		MacAddress string `json:"macAddress"`
		VehicleID  int64  `json:"vehicleId"`
	} `json:"sensors"`
}

// ---- operations ----

// Org fetches the organization the configured token belongs to.
func (c *Client) Org(ctx context.Context) (models.Org, error) {
	var env orgEnvelope
	if err := c.get(ctx, "/me", nil, &env); err != nil {
		return models.Org{}, err
	}
	return models.Org{ID: env.Data.ID, Name: env.Data.Name}, nil
}

// Vehicles fetches the full fleet roster, following cursor pagination, and
// flattens each vehicle's sensor configuration into the asset's sensor list.
// Vehicles without sensors still appear, with an empty list.
func (c *Client) Vehicles(ctx context.Context) ([]models.Asset, error) {
	var (
		assets []models.Asset
		cursor string
	)
	for {
		query := url.Values{}
		if cursor != "" {
			query.Set("after", cursor)
		}
		var page vehiclesPage
		if err := c.get(ctx, "/fleet/vehicles", query, &page); err != nil {
			return nil, err
		}
		for _, v := range page.Data {
			assets = append(assets, flattenVehicle(v))
		}
		if !page.Pagination.HasNextPage {
			break
		}
		cursor = page.Pagination.EndCursor
	}
	return assets, nil
}

// TemperatureHistory fetches sampled ambient temperature for one sensor.
// Missing samples are requested as nulls and dropped, so gaps stay gaps on
// the chart. Values arrive in millidegrees and are normalized to Celsius.
func (c *Client) TemperatureHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.Reading, error) {
	points, err := c.history(ctx, fieldAmbientTemperature, fillWithNull, sensorID, from, to, step)
	if err != nil {
		return nil, err
	}
	readings := make([]models.Reading, 0, len(points))
	for _, p := range points {
		milli, ok := rawFloat(p.Series)
		if !ok {
			continue
		}
		readings = append(readings, models.Reading{
			Time:    time.UnixMilli(p.TimeMs).UTC(),
			Celsius: milli / 1000.0,
		})
	}
	return readings, nil
}

// DoorHistory fetches sampled door-closed states. The provider carries the
// last known state forward so transitions can be detected downstream.
func (c *Client) DoorHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.DoorState, error) {
	points, err := c.history(ctx, fieldDoorClosed, fillWithPrevious, sensorID, from, to, step)
	if err != nil {
		return nil, err
	}
	states := make([]models.DoorState, 0, len(points))
	for _, p := range points {
		closed, ok := rawBool(p.Series)
		if !ok {
			continue
		}
		states = append(states, models.DoorState{
			Time:   time.UnixMilli(p.TimeMs).UTC(),
			Closed: closed,
		})
	}
	return states, nil
}

// HumidityHistory fetches sampled relative humidity (percent).
func (c *Client) HumidityHistory(ctx context.Context, sensorID int64, from, to time.Time, step time.Duration) ([]models.HumidityReading, error) {
	points, err := c.history(ctx, fieldHumidity, fillWithPrevious, sensorID, from, to, step)
	if err != nil {
		return nil, err
	}
	readings := make([]models.HumidityReading, 0, len(points))
	for _, p := range points {
		pct, ok := rawFloat(p.Series)
		if !ok {
			continue
		}
		readings = append(readings, models.HumidityReading{
			Time:    time.UnixMilli(p.TimeMs).UTC(),
			Percent: pct,
		})
	}
	return readings, nil
}

// CurrentTemperature fetches the latest temperature observation for a sensor.
// Returns ErrNotFound when the provider knows nothing about the sensor.
func (c *Client) CurrentTemperature(ctx context.Context, sensorID int64) (TemperatureStatus, error) {
	var resp currentTemperatureResponse
	if err := c.post(ctx, "/v1/sensors/temperature", sensorsRequest{Sensors: []int64{sensorID}}, &resp); err != nil {
		return TemperatureStatus{}, err
	}
	if len(resp.Sensors) == 0 {
		return TemperatureStatus{}, fmt.Errorf("temperature sensor %d: %w", sensorID, ErrNotFound)
	}
	s := resp.Sensors[0]
	st := TemperatureStatus{
		SensorID:   s.ID,
		SensorName: s.Name,
		ObservedAt: parseProviderTime(s.AmbientTemperatureTime),
		VehicleID:  s.VehicleID,
	}
	if s.AmbientTemperature != nil {
		celsius := float64(*s.AmbientTemperature) / 1000.0
		st.Celsius = &celsius
	}
	return st, nil
}

// CurrentDoorStatus fetches the latest door observation for a sensor.
func (c *Client) CurrentDoorStatus(ctx context.Context, sensorID int64) (DoorStatus, error) {
	var resp currentDoorResponse
	if err := c.post(ctx, "/v1/sensors/door", sensorsRequest{Sensors: []int64{sensorID}}, &resp); err != nil {
		return DoorStatus{}, err
	}
	if len(resp.Sensors) == 0 {
		return DoorStatus{}, fmt.Errorf("door sensor %d: %w", sensorID, ErrNotFound)
	}
	s := resp.Sensors[0]
	return DoorStatus{
		SensorID:   s.ID,
		SensorName: s.Name,
		Closed:     s.DoorClosed,
		ObservedAt: parseProviderTime(s.DoorStatusTime),
		VehicleID:  s.VehicleID,
	}, nil
}

// Sensors fetches the flat organization-wide sensor inventory, including
// sensors not currently assigned to any vehicle.
func (c *Client) Sensors(ctx context.Context) ([]models.Sensor, error) {
	var resp sensorListResponse
	if err := c.post(ctx, "/v1/sensors/list", struct{}{}, &resp); err != nil {
		return nil, err
	}
	sensors := make([]models.Sensor, 0, len(resp.Sensors))
	for _, s := range resp.Sensors {
		sensors = append(sensors, models.Sensor{
			ID:   s.ID,
			Name: s.Name,
			MAC:  s.MacAddress,
		})
	}
	return sensors, nil
}

// ---- internals ----

func (c *Client) history(ctx context.Context, field, fill string, sensorID int64, from, to time.Time, step time.Duration) ([]historyPoint, error) {
	req := historyRequest{
		StartMs:     from.UnixMilli(),
		EndMs:       to.UnixMilli(),
		StepMs:      step.Milliseconds(),
		FillMissing: fill,
		Series:      []historySeriesReq{{Field: field, WidgetID: sensorID}},
	}
	var resp historyResponse
	if err := c.post(ctx, "/v1/sensors/history", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func flattenVehicle(v vehicleJSON) models.Asset {
	asset := models.Asset{
		ID:           v.ID,
		Name:         v.Name,
		LicensePlate: v.LicensePlate,
		Make:         v.Make,
		Model:        v.Model,
		Serial:       v.Serial,
		VIN:          v.VIN,
		Year:         v.Year,
	}
	if v.SensorConfiguration == nil {
		return asset
	}
	for _, area := range v.SensorConfiguration.Areas {
		for _, s := range area.TemperatureSensors {
			asset.Sensors = append(asset.Sensors, models.Sensor{
				ID: s.ID, Name: s.Name, MAC: s.MAC,
				Type: models.SensorTemperature, Position: area.Position,
			})
		}
		for _, s := range area.HumiditySensors {
			asset.Sensors = append(asset.Sensors, models.Sensor{
				ID: s.ID, Name: s.Name, MAC: s.MAC,
				Type: models.SensorHumidity, Position: area.Position,
			})
		}
	}
	for _, door := range v.SensorConfiguration.Doors {
		asset.Sensors = append(asset.Sensors, models.Sensor{
			ID: door.Sensor.ID, Name: door.Sensor.Name, MAC: door.Sensor.MAC,
			Type: models.SensorDoor, Position: door.Position,
		})
	}
	return asset
}

// rawFloat extracts the first series value as a number, rejecting nulls.
func rawFloat(series []json.RawMessage) (float64, bool) {
	raw, ok := firstRaw(series)
	if !ok {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

// rawBool extracts the first series value as a bool, rejecting nulls.
func rawBool(series []json.RawMessage) (bool, bool) {
	raw, ok := firstRaw(series)
	if !ok {
		return false, false
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false
	}
	return v, true
}

func firstRaw(series []json.RawMessage) (json.RawMessage, bool) {
	if len(series) == 0 {
		return nil, false
	}
	raw := series[0]
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// parseProviderTime parses the provider's RFC3339 timestamps, returning nil
// for absent or malformed values rather than failing the whole response.
func parseProviderTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("telemetry: build request %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("telemetry: encode request %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telemetry: build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telemetry: request %s: %w", req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", req.URL.Path, ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("telemetry: decode response %s: %w", req.URL.Path, err)
	}
	return nil
}
