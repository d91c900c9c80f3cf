package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/airport-weather/internal/store"
	"github.com/i474232898/airport-weather/internal/telemetry"
	"github.com/i474232898/airport-weather/internal/weather"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	registry := store.NewAirportRegistry()
	err := registry.Replace([]weather.Airport{
		{IATA: "ORD", Lat: 41.978, Lon: -87.904},
		{IATA: "JFK", Lat: 40.639, Lon: -73.778},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	readings := store.NewMemoryStore(registry)
	tracker := telemetry.NewFrequencyTracker(registry)

	app := fiber.New()
	RegisterRoutes(app,
		weather.NewService(registry, readings, tracker, nil),
		weather.NewHealth(registry, readings, tracker, false),
	)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func TestQueryWeatherStatusCodes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		target string
		want   int
	}{
		{"/query/weather/ORD/0", http.StatusOK},
		{"/query/weather/ORD", http.StatusOK},
		{"/query/weather/XXX/0", http.StatusNotFound},
		{"/query/weather/XXX/100", http.StatusNotFound},
		{"/query/weather/ORD/-5", http.StatusBadRequest},
		{"/query/weather/ORD/far", http.StatusBadRequest},
	}

	for _, tt := range tests {
		resp, _ := do(t, app, http.MethodGet, tt.target, "")
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s: expected status %d, got %d", tt.target, tt.want, resp.StatusCode)
		}
	}
}

func TestCollectThenQuery(t *testing.T) {
	app := newTestApp(t)

	resp, _ := do(t, app, http.MethodPost, "/collect/weather/jfk", `{"temperature":15}`)
	expectStatus(t, resp, http.StatusOK)

	resp, body := do(t, app, http.MethodGet, "/query/weather/ORD/1200", "")
	expectStatus(t, resp, http.StatusOK)

	var readings []weather.Reading
	if err := json.Unmarshal(body, &readings); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if len(readings) != 1 || readings[0].Temperature == nil || *readings[0].Temperature != 15 {
		t.Fatalf("readings = %s, want JFK reading only", body)
	}

	resp, body = do(t, app, http.MethodGet, "/query/weather/ORD/100", "")
	expectStatus(t, resp, http.StatusOK)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestCollectWeatherRejectsBadInput(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		target, body string
		want         int
	}{
		{"/collect/weather/XXX", `{"temperature":1}`, http.StatusNotFound},
		{"/collect/weather/ORD", `{}`, http.StatusBadRequest},
		{"/collect/weather/ORD", `{"humidity":120}`, http.StatusBadRequest},
		{"/collect/weather/ORD", `{"temperature":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		resp, _ := do(t, app, http.MethodPost, tt.target, tt.body)
		if resp.StatusCode != tt.want {
			t.Errorf("POST %s %s: expected status %d, got %d", tt.target, tt.body, tt.want, resp.StatusCode)
		}
	}
}

func TestPing(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodGet, "/collect/ping", "")
	expectStatus(t, resp, http.StatusOK)
	if string(body) != "ready" {
		t.Errorf("collect ping body = %q", body)
	}

	do(t, app, http.MethodGet, "/query/weather/ORD/0", "")

	resp, body = do(t, app, http.MethodGet, "/query/ping", "")
	expectStatus(t, resp, http.StatusOK)

	var report weather.HealthReport
	if err := json.Unmarshal(body, &report); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if report.IATAFreq["ORD"] != 1 {
		t.Errorf("iata_freq = %v, want ORD=1", report.IATAFreq)
	}
	if len(report.RadiusFreq) != 10 || report.RadiusFreq[0] != 1 {
		t.Errorf("radius_freq = %v", report.RadiusFreq)
	}
}

func TestAirportAdmin(t *testing.T) {
	app := newTestApp(t)

	resp, _ := do(t, app, http.MethodPost, "/collect/airport/BOS/42.36/-71.0", "")
	expectStatus(t, resp, http.StatusCreated)

	resp, _ = do(t, app, http.MethodPost, "/collect/airport/BOS/42.36/-71.0", "")
	expectStatus(t, resp, http.StatusConflict)

	resp, _ = do(t, app, http.MethodPost, "/collect/airport/LGA/north/-73.8", "")
	expectStatus(t, resp, http.StatusBadRequest)

	resp, body := do(t, app, http.MethodGet, "/collect/airports", "")
	expectStatus(t, resp, http.StatusOK)
	var codes []string
	if err := json.Unmarshal(body, &codes); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	if strings.Join(codes, ",") != "ORD,JFK,BOS" {
		t.Errorf("airports = %v, want [ORD JFK BOS]", codes)
	}

	resp, _ = do(t, app, http.MethodGet, "/collect/airport/bos", "")
	expectStatus(t, resp, http.StatusOK)

	resp, _ = do(t, app, http.MethodDelete, "/collect/airport/BOS", "")
	expectStatus(t, resp, http.StatusNoContent)

	resp, _ = do(t, app, http.MethodGet, "/collect/airport/BOS", "")
	expectStatus(t, resp, http.StatusNotFound)
}

func TestReplaceAirports(t *testing.T) {
	app := newTestApp(t)

	dup := `[{"iata":"BOS","latitude":42.36,"longitude":-71.0},{"iata":"BOS","latitude":42.36,"longitude":-71.0}]`
	resp, _ := do(t, app, http.MethodPut, "/collect/airports", dup)
	expectStatus(t, resp, http.StatusConflict)

	resp, _ = do(t, app, http.MethodGet, "/collect/airport/ORD", "")
	expectStatus(t, resp, http.StatusOK)

	ok := `[{"iata":"BOS","latitude":42.36,"longitude":-71.0}]`
	resp, _ = do(t, app, http.MethodPut, "/collect/airports", ok)
	expectStatus(t, resp, http.StatusOK)

	resp, _ = do(t, app, http.MethodGet, "/query/weather/ORD/0", "")
	expectStatus(t, resp, http.StatusNotFound)
}
