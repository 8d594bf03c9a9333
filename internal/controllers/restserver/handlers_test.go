package restserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/controllers"
	"github.com/chrissnell/suncalc/internal/storage"
	"github.com/chrissnell/suncalc/pkg/suncalc"
	"github.com/vmihailenco/msgpack/v5"
)

// 2013-03-05T00:00:00Z
const refTime = "1362441600000"

const refMs = 1362441600000

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := almanac.NewService(64, 2)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	kyivTZ := time.FixedZone("EET", 2*3600)
	health := storage.NewHealthManager()
	health.UpdateHealth("sqlite", storage.CreateHealthData(storage.StatusHealthy, "ok", nil))

	sky := controllers.NewSky([]almanac.Observer{
		{Name: "kyiv", Latitude: 50.5, Longitude: 30.5, Location: kyivTZ},
		{Name: "alert", Latitude: 82.5, Longitude: -62.3},
	}, svc, nil, health)
	return NewRouter(sky, true)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestSunPosition(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/sun/position?lat=50.5&lon=30.5&time="+refTime)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request ID header")
	}

	var got PositionResponse
	decode(t, rec, &got)
	want := suncalc.GetPosition(refMs, 50.5, 30.5)
	if got.AzimuthRad != want.Azimuth || got.AltitudeRad != want.Altitude {
		t.Errorf("position = %+v", got)
	}
	if got.Time != "2013-03-05T00:00:00.000Z" {
		t.Errorf("time = %q", got.Time)
	}
	if got.DistanceKm != nil {
		t.Error("sun position should not carry a distance")
	}
}

func TestMoonPosition(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/moon/position?lat=50.5&lon=30.5&time=2013-03-05T00:00:00Z")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var got PositionResponse
	decode(t, rec, &got)
	want := suncalc.GetMoonPosition(refMs, 50.5, 30.5)
	if got.AzimuthRad != want.Azimuth || got.AltitudeRad != want.Altitude {
		t.Errorf("position = %+v", got)
	}
	if got.DistanceKm == nil || *got.DistanceKm != want.Distance {
		t.Errorf("distance = %v", got.DistanceKm)
	}
	if got.ParallacticAngleRad == nil || *got.ParallacticAngleRad != want.ParallacticAngle {
		t.Errorf("parallactic angle = %v", got.ParallacticAngleRad)
	}
}

func TestSunTimes(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/api/v1/sun/times?lat=50.5&lon=30.5&time="+refTime)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got SunTimesResponse
	decode(t, rec, &got)
	if got.Sunrise == nil || !strings.HasPrefix(*got.Sunrise, "2013-03-05T04:34:56") {
		t.Errorf("sunrise = %v", got.Sunrise)
	}
	if got.SolarNoon == nil || !strings.HasPrefix(*got.SolarNoon, "2013-03-05T10:10:57") {
		t.Errorf("solarNoon = %v", got.SolarNoon)
	}
	if got.DayLengthMinutes == nil || *got.DayLengthMinutes < 671 || *got.DayLengthMinutes > 673 {
		t.Errorf("day length = %v", got.DayLengthMinutes)
	}

	// polar day: events that do not happen are null
	rec = get(t, h, "/api/v1/sun/times?lat=82.5&lon=-62.3&time=2024-06-21T12:00:00Z")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var raw map[string]any
	decode(t, rec, &raw)
	if v, ok := raw["sunrise"]; !ok || v != nil {
		t.Errorf("sunrise = %v, want null", v)
	}
	if raw["solarNoon"] == nil {
		t.Error("solarNoon should always be present")
	}
}

func TestMoonIlluminationMsgPack(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/moon/illumination?format=msgpack&time="+refTime)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got IlluminationResponse
	dec := msgpack.NewDecoder(rec.Body)
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := suncalc.GetMoonIllumination(refMs); got.Fraction != want.Fraction || got.Phase != want.Phase || got.AngleRad != want.Angle {
		t.Errorf("illumination = %+v", got)
	}
	if got.IsWaxing {
		t.Error("moon should be waning")
	}
}

func TestMoonTimes(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/moon/times?lat=50.5&lon=30.5&time=2013-03-04T12:00:00Z")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got MoonTimesResponse
	decode(t, rec, &got)
	if got.Rise == nil || !strings.HasPrefix(*got.Rise, "2013-03-04T23:54:29") {
		t.Errorf("rise = %v", got.Rise)
	}
	if got.Set == nil || !strings.HasPrefix(*got.Set, "2013-03-04T07:47:58") {
		t.Errorf("set = %v", got.Set)
	}
}

func TestBadRequests(t *testing.T) {
	h := newTestRouter(t)
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"missing lat", "/api/v1/sun/position?lon=30.5", http.StatusBadRequest},
		{"bad lon", "/api/v1/sun/position?lat=1&lon=east", http.StatusBadRequest},
		{"bad time", "/api/v1/moon/illumination?time=tomorrow", http.StatusBadRequest},
		{"bad tz", "/api/v1/moon/times?lat=1&lon=1&tz=Mars/Base", http.StatusBadRequest},
		{"unknown observer", "/api/v1/observers/atlantis/sky", http.StatusNotFound},
		{"reversed range", "/api/v1/observers/kyiv/almanac?from=2024-01-10&to=2024-01-01", http.StatusBadRequest},
		{"unknown route", "/api/v2/sun", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			if tt.path == "/api/v2/sun" {
				return
			}
			var body map[string]string
			decode(t, rec, &body)
			if body["error"] == "" {
				t.Errorf("missing error message in %s", rec.Body)
			}
		})
	}
}

func TestOutOfRangeCoordinatesAreAccepted(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/sun/position?lat=123&lon=-400&time="+refTime)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestObservers(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/observers")
	var got []ObserverResponse
	decode(t, rec, &got)
	if len(got) != 2 || got[0].Name != "alert" || got[1].Timezone != "EET" {
		t.Errorf("observers = %+v", got)
	}
}

func TestObserverSky(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/v1/observers/kyiv/sky?time="+refTime)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got SkyResponse
	decode(t, rec, &got)
	if want := suncalc.GetPosition(refMs, 50.5, 30.5); got.Sun.AzimuthRad != want.Azimuth {
		t.Errorf("sun azimuth = %v", got.Sun.AzimuthRad)
	}
	if got.SunAboveHorizon {
		t.Error("sun should be below the horizon at 02:00 local time")
	}
	// times are reported in the observer's zone
	if got.Time != "2013-03-05T02:00:00.000+02:00" {
		t.Errorf("time = %q", got.Time)
	}
	if got.SunTimes.Sunrise == nil || !strings.HasPrefix(*got.SunTimes.Sunrise, "2013-03-05T06:34:56") {
		t.Errorf("sunrise = %v", got.SunTimes.Sunrise)
	}
}

func TestObserverAlmanac(t *testing.T) {
	h := newTestRouter(t)

	rec := get(t, h, "/api/v1/observers/kyiv/almanac?from=2013-03-05&to=2013-03-07")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var got AlmanacResponse
	decode(t, rec, &got)
	if len(got.Days) != 3 || got.From != "2013-03-05" || got.To != "2013-03-07" {
		t.Fatalf("almanac = %+v", got)
	}
	for _, d := range got.Days {
		if d.SunTimes.Sunrise == nil || d.PhaseName == "" {
			t.Errorf("day %s incomplete: %+v", d.Date, d)
		}
	}

	rec = get(t, h, "/api/v1/observers/alert/almanac/stats?from=2024-06-01&to=2024-06-30")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var stats StatsResponse
	decode(t, rec, &stats)
	if stats.Days != 30 || stats.PolarDays != 30 || stats.MeanDayLength != nil {
		t.Errorf("stats = %+v", stats)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(t), "/healthz")
	var got HealthResponse
	decode(t, rec, &got)
	if got.Status != "ok" || got.Observers != 2 || got.Storage["sqlite"].Status != storage.StatusHealthy {
		t.Errorf("health = %+v", got)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q", got)
	}
}
