package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrinexus/farm-twin/internal/platform/logger"
)

func TestLookupParsesNominatimReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("Expected /reverse path, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("format") != "jsonv2" {
			t.Errorf("Expected jsonv2 format, got %s", r.URL.Query().Get("format"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address":{"town":"Sirsi","state":"Karnataka","country":"India"}}`))
	}))
	defer srv.Close()

	s := NewService(srv.URL, logger.NewLogger())
	result := s.Lookup(context.Background(), 14.6, 74.8)

	if result.City != "Sirsi" {
		t.Errorf("Expected town to fill city, got %q", result.City)
	}
	if result.State != "Karnataka" || result.Country != "India" {
		t.Errorf("Unexpected state/country: %s/%s", result.State, result.Country)
	}
	if result.TerrainType == "Unknown" {
		t.Error("Expected a terrain estimate when geocoding succeeds")
	}
}

func TestLookupDegradesOnGeocoderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewService(srv.URL, logger.NewLogger())
	result := s.Lookup(context.Background(), 14.6, 74.8)

	if result.TerrainType != "Unknown" {
		t.Errorf("Expected Unknown terrain on failure, got %s", result.TerrainType)
	}
	if result.City != "" || result.State != "" {
		t.Error("Expected no address fields on failure")
	}
	if result.ElevationMeters == 0 {
		t.Error("Expected the offline elevation estimate to survive a geocoder failure")
	}
}

func TestEstimateElevationUsesRegionBoxes(t *testing.T) {
	// Kerala coast box: base 30m plus positional variation of ±25.
	coast := EstimateElevation(10.0, 76.0)
	if coast < 5 || coast > 55 {
		t.Errorf("Expected Kerala coast elevation near 30m, got %.1f", coast)
	}

	// Outside every box: flat default.
	if got := EstimateElevation(0, 0); got != 300.0 {
		t.Errorf("Expected default elevation 300, got %.1f", got)
	}
}

func TestClassifyTerrainBands(t *testing.T) {
	cases := []struct {
		elevation float64
		want      string
	}{
		{20, "Coastal Plain"},
		{120, "Low-lying Plain"},
		{450, "Plateau"},
		{700, "Hilly Terrain"},
		{1200, "Mountain Foothills"},
		{2000, "High Altitude"},
	}
	for _, c := range cases {
		if got := ClassifyTerrain(c.elevation); got != c.want {
			t.Errorf("ClassifyTerrain(%.0f) = %s, want %s", c.elevation, got, c.want)
		}
	}
}

func TestEstimateSlope(t *testing.T) {
	slope, rec := EstimateSlope(450)
	if slope != 12.0 {
		t.Errorf("Expected 12%% slope at 450m, got %.1f", slope)
	}
	if rec != "Moderate slope - contour farming recommended" {
		t.Errorf("Unexpected recommendation: %q", rec)
	}
}

func TestCheckFrostRisk(t *testing.T) {
	if prone, _ := CheckFrostRisk(12, 100); prone {
		t.Error("Low latitude and elevation must not be frost-prone")
	}
	prone, msg := CheckFrostRisk(12, 1600)
	if !prone || msg != "High elevation - severe frost risk in winter" {
		t.Errorf("Expected severe frost risk at 1600m, got %v %q", prone, msg)
	}
	prone, msg = CheckFrostRisk(33, 200)
	if !prone || msg != "Northern latitude - moderate frost risk" {
		t.Errorf("Expected northern latitude risk, got %v %q", prone, msg)
	}
}
