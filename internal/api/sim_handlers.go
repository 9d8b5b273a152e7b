package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agrinexus/farm-twin/internal/engine"
)

// controlRequest is the body for rain and time-jump overrides. Zero
// values fall back to the documented defaults.
type controlRequest struct {
	Intensity *float64 `json:"intensity,omitempty"`
	Duration  *int     `json:"duration,omitempty"`
	Hours     *int     `json:"hours,omitempty"`
}

func (s *Server) farmEngine(w http.ResponseWriter, r *http.Request) (*engine.Engine, string, bool) {
	farmID := mux.Vars(r)["farm_id"]
	eng, err := s.registry.Get(farmID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "simulation_error",
			"failed to obtain simulation: "+err.Error())
		return nil, farmID, false
	}
	return eng, farmID, true
}

func (s *Server) handleTriggerRain(w http.ResponseWriter, r *http.Request) {
	eng, farmID, ok := s.farmEngine(w, r)
	if !ok {
		return
	}

	intensity := 0.8
	duration := 30
	var req controlRequest
	if r.Body != nil {
		// An empty body keeps the defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Intensity != nil {
		intensity = *req.Intensity
	}
	if req.Duration != nil {
		duration = *req.Duration
	}

	if err := eng.ForceRain(intensity, duration); err != nil {
		if errors.Is(err, engine.ErrInvalidOverride) {
			s.writeError(w, http.StatusBadRequest, "invalid_override", err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, "simulation_error", err.Error())
		return
	}

	s.logger.Event("RAIN_TRIGGERED", farmID,
		fmt.Sprintf("intensity=%.2f duration=%d", intensity, duration))

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Rain event triggered",
		"details": map[string]any{
			"intensity":      intensity,
			"duration_ticks": duration,
			"current_state":  eng.Summary(),
		},
	})
}

func (s *Server) handleTriggerDrought(w http.ResponseWriter, r *http.Request) {
	eng, farmID, ok := s.farmEngine(w, r)
	if !ok {
		return
	}

	eng.ForceDrought()
	s.logger.Event("DROUGHT_TRIGGERED", farmID, "soil moisture forced to critical")

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Drought conditions activated",
		"details": eng.Summary(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	eng, farmID, ok := s.farmEngine(w, r)
	if !ok {
		return
	}

	eng.Reset()
	s.logger.Event("SIM_RESET", farmID, "simulation reset to defaults")

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Simulation reset to default state",
		"details": eng.Summary(),
	})
}

func (s *Server) handleTimeJump(w http.ResponseWriter, r *http.Request) {
	eng, farmID, ok := s.farmEngine(w, r)
	if !ok {
		return
	}

	hours := 6
	var req controlRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Hours != nil {
		hours = *req.Hours
	}

	reading, alerts, err := eng.TimeJump(hours)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidOverride) {
			s.writeError(w, http.StatusBadRequest, "invalid_override",
				"Hours must be between 1 and 24")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "simulation_error", err.Error())
		return
	}

	s.logger.Event("TIME_JUMP", farmID, fmt.Sprintf("jumped %d hours", hours))

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       fmt.Sprintf("Jumped forward %d hours", hours),
		"new_time":      eng.Summary().VirtualTime,
		"reading":       reading,
		"alerts":        alerts,
		"current_state": eng.Summary(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	eng, farmID, ok := s.farmEngine(w, r)
	if !ok {
		return
	}

	state := eng.Snapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"farm_id":      farmID,
		"tick_count":   state.TickCount,
		"virtual_hour": state.VirtualHour,
		"virtual_time": engine.FormatVirtualTime(state.VirtualHour),
		"environment": map[string]any{
			"temperature":   state.Temperature,
			"humidity":      state.Humidity,
			"pressure":      state.Pressure,
			"soil_moisture": state.SoilMoisture,
			"rainfall":      state.Rainfall,
		},
		"weather": map[string]any{
			"is_raining":           state.Rain.Raining,
			"rain_intensity":       state.Rain.Intensity,
			"rain_ticks_remaining": state.Rain.TicksLeft,
			"wind_speed":           state.WindSpeed,
		},
		"alerts": eng.Alerts(),
	})
}
