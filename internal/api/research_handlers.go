package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agrinexus/farm-twin/internal/domain/crop"
	"github.com/agrinexus/farm-twin/internal/services/geo"
	"github.com/agrinexus/farm-twin/internal/services/research"
)

// handleFullScan runs the complete location analysis pipeline:
// geocoding, soil estimation, crop recommendations and economics.
func (s *Server) handleFullScan(w http.ResponseWriter, r *http.Request) {
	var req research.FullScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		s.writeError(w, http.StatusBadRequest, "invalid_coordinates", "Latitude must be in [-90, 90] and longitude in [-180, 180]")
		return
	}

	resp, err := s.research.FullScan(r.Context(), req)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "scan_failed", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleCropList scores the whole crop database against conditions
// supplied as query parameters.
func (s *Server) handleCropList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cond := crop.Conditions{
		AvgTemp:        queryFloat(q.Get("temp"), 28),
		AvgHumidity:    queryFloat(q.Get("humidity"), 65),
		AnnualRainfall: queryFloat(q.Get("rainfall"), 1200),
		SoilType:       q.Get("soil_type"),
	}
	if cond.SoilType == "" {
		cond.SoilType = "Loamy"
	}
	limit := int(queryFloat(q.Get("limit"), 10))

	recs := crop.NewEngine().Recommend(cond, limit)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"conditions":      cond,
		"recommendations": recs,
		"total":           len(recs),
	})
}

// handleGeoLookup reverse-geocodes a coordinate pair and adds the
// derived terrain analysis.
func (s *Server) handleGeoLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_coordinates", "Query parameters lat and lon are required")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		s.writeError(w, http.StatusBadRequest, "invalid_coordinates", "Latitude must be in [-90, 90] and longitude in [-180, 180]")
		return
	}

	loc := s.geo.Lookup(r.Context(), lat, lon)
	slopeDeg, slopeRec := geo.EstimateSlope(loc.ElevationMeters)
	frost, frostDetail := geo.CheckFrostRisk(lat, loc.ElevationMeters)

	s.writeJSON(w, http.StatusOK, map[string]any{
		"location": loc,
		"slope": map[string]any{
			"estimated_degrees": slopeDeg,
			"recommendation":    slopeRec,
		},
		"frost_risk": map[string]any{
			"at_risk": frost,
			"detail":  frostDetail,
		},
	})
}

type roiRequest struct {
	Crop   string  `json:"crop"`
	Acres  float64 `json:"acres"`
	Budget float64 `json:"budget"`
}

// handleROI projects investment returns for a single crop.
func (s *Server) handleROI(w http.ResponseWriter, r *http.Request) {
	var req roiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Crop == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Field 'crop' is required")
		return
	}
	if req.Acres <= 0 {
		req.Acres = 1
	}

	analysis, ok := research.CalculateROI(req.Crop, req.Acres, req.Budget)
	if !ok {
		s.writeError(w, http.StatusNotFound, "crop_not_found",
			fmt.Sprintf("Crop '%s' not found in database", req.Crop))
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

// queryFloat parses an optional numeric query parameter.
func queryFloat(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
