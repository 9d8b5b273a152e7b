package engine

import (
	"fmt"
	"math"
	"time"
)

// RainState is the explicit rain phase of a farm. The zero value means
// dry; a raining state always carries a positive countdown.
type RainState struct {
	Raining   bool    `json:"raining"`
	Intensity float64 `json:"intensity"`
	TicksLeft int     `json:"ticks_left"`
}

// NewRaining builds an active rain phase.
func NewRaining(intensity float64, ticksLeft int) RainState {
	return RainState{Raining: true, Intensity: intensity, TicksLeft: ticksLeft}
}

// State is the complete environmental condition of one farm at one
// tick. Temperature, humidity, pressure and soil moisture are stored
// already rounded to two decimals.
type State struct {
	Temperature   float64   `json:"temperature"`
	Humidity      float64   `json:"humidity"`
	Pressure      float64   `json:"pressure"`
	SoilMoisture  float64   `json:"soil_moisture"`
	Rainfall      float64   `json:"rainfall"`
	WindSpeed     float64   `json:"wind_speed"`
	WindDirection float64   `json:"wind_direction"`
	Rain          RainState `json:"rain"`
	VirtualHour   float64   `json:"virtual_hour"`
	TickCount     int64     `json:"tick_count"`
}

func defaultState() State {
	return State{
		Temperature:   28.0,
		Humidity:      65.0,
		Pressure:      1013.25,
		SoilMoisture:  50.0,
		WindSpeed:     5.0,
		WindDirection: 180.0,
		VirtualHour:   6.0,
	}
}

// Reading is the sensor view of a state, as streamed to clients and
// written to storage.
type Reading struct {
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
	Pressure     float64   `json:"pressure"`
	SoilMoisture float64   `json:"soil_moisture"`
	Rainfall     float64   `json:"rainfall"`
	WindSpeed    float64   `json:"wind_speed"`
	IsRaining    bool      `json:"is_raining"`
	Tick         int64     `json:"simulation_tick"`
	Timestamp    time.Time `json:"timestamp"`
}

// Summary is the human-readable projection served by the status
// endpoint: formatted values plus the virtual clock.
type Summary struct {
	Tick          int64   `json:"tick"`
	VirtualTime   string  `json:"virtual_time"`
	Temperature   string  `json:"temperature"`
	Humidity      string  `json:"humidity"`
	Pressure      string  `json:"pressure"`
	SoilMoisture  string  `json:"soil_moisture"`
	IsRaining     bool    `json:"is_raining"`
	RainIntensity float64 `json:"rain_intensity"`
	ActiveAlerts  int     `json:"active_alerts"`
}

// FormatVirtualTime renders a fractional hour as "HH:MM".
func FormatVirtualTime(hour float64) string {
	h := int(hour)
	m := int((hour - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
