// Package geo provides location intelligence: reverse geocoding via
// Nominatim plus regional elevation, terrain, slope and frost
// estimates for the Indian subcontinent.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/agrinexus/farm-twin/internal/platform/logger"
)

// LookupResult is the location analysis for one coordinate pair.
type LookupResult struct {
	City            string  `json:"city,omitempty"`
	State           string  `json:"state,omitempty"`
	Country         string  `json:"country,omitempty"`
	ElevationMeters float64 `json:"elevation_meters"`
	TerrainType     string  `json:"terrain_type"`
}

// Service wraps the Nominatim reverse geocoder.
type Service struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewService builds a geocoding service against the public Nominatim
// instance. baseURL may be overridden for tests.
func NewService(baseURL string, log *logger.Logger) *Service {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &Service{
		baseURL:    baseURL,
		userAgent:  "agrinexus-farm-twin",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log,
	}
}

// nominatimResponse is the subset of the reverse-geocode reply we use.
type nominatimResponse struct {
	Address struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		State        string `json:"state"`
		Country      string `json:"country"`
	} `json:"address"`
}

// Lookup reverse-geocodes a coordinate and attaches the terrain
// estimates. Geocoder failures degrade to an Unknown terrain result
// rather than an error; the elevation models still work offline.
func (s *Service) Lookup(ctx context.Context, lat, lon float64) LookupResult {
	result := LookupResult{
		ElevationMeters: EstimateElevation(lat, lon),
	}
	result.TerrainType = ClassifyTerrain(result.ElevationMeters)

	addr, err := s.reverse(ctx, lat, lon)
	if err != nil {
		s.logger.Error("Geocoding error: " + err.Error())
		result.TerrainType = "Unknown"
		return result
	}

	city := addr.Address.City
	if city == "" {
		city = addr.Address.Town
	}
	if city == "" {
		city = addr.Address.Village
	}
	if city == "" {
		city = addr.Address.Municipality
	}
	result.City = city
	result.State = addr.Address.State
	result.Country = addr.Address.Country
	return result
}

func (s *Service) reverse(ctx context.Context, lat, lon float64) (*nominatimResponse, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("format", "jsonv2")
	q.Set("accept-language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var parsed nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

type regionBox struct {
	latMin, latMax float64
	lonMin, lonMax float64
	elevation      float64
}

// Rough elevation by region box; a real deployment would query an
// elevation API.
var elevationRegions = []regionBox{
	// Coastal regions (low elevation)
	{12.5, 15.5, 74, 75.5, 50},  // coastal Karnataka
	{8, 12, 75.5, 77, 30},       // Kerala coast
	{14.8, 15.8, 73.5, 74.5, 20}, // Goa
	// Western Ghats
	{10, 14, 75, 77, 800},
	{14, 17, 73.5, 75, 600},
	// Deccan Plateau
	{15, 20, 74, 79, 450},
	// Indo-Gangetic plains
	{25, 30, 75, 88, 100},
	// Himalaya foothills
	{28, 32, 76, 80, 1200},
}

// EstimateElevation returns a rough elevation for a coordinate based
// on known region boxes, with slight positional variation.
func EstimateElevation(lat, lon float64) float64 {
	for _, r := range elevationRegions {
		if lat >= r.latMin && lat <= r.latMax && lon >= r.lonMin && lon <= r.lonMax {
			return r.elevation + math.Mod(lat*10, 50) - 25
		}
	}
	return 300.0
}

// ClassifyTerrain maps an elevation to a terrain class.
func ClassifyTerrain(elevation float64) string {
	switch {
	case elevation < 50:
		return "Coastal Plain"
	case elevation < 200:
		return "Low-lying Plain"
	case elevation < 500:
		return "Plateau"
	case elevation < 800:
		return "Hilly Terrain"
	case elevation < 1500:
		return "Mountain Foothills"
	default:
		return "High Altitude"
	}
}

// EstimateSlope returns the slope grade for an elevation together with
// the farming practice it calls for.
func EstimateSlope(elevation float64) (float64, string) {
	switch {
	case elevation < 100:
		return 2.0, "Flat terrain - suitable for all crops"
	case elevation < 300:
		return 5.0, "Gentle slope - standard farming practices"
	case elevation < 600:
		return 12.0, "Moderate slope - contour farming recommended"
	case elevation < 1000:
		return 18.0, "Steep slope - terrace farming needed"
	default:
		return 25.0, "Very steep - specialized hill farming only"
	}
}

// CheckFrostRisk reports whether a location is frost-prone.
func CheckFrostRisk(lat, elevation float64) (bool, string) {
	if elevation > 1000 || lat > 30 {
		switch {
		case elevation > 1500:
			return true, "High elevation - severe frost risk in winter"
		case lat > 32:
			return true, "Northern latitude - moderate frost risk"
		default:
			return true, "Mild frost risk - consider frost-tolerant varieties"
		}
	}
	return false, "Low frost risk"
}
