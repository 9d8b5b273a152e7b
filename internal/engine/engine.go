// Package engine implements the farm weather digital twin: a ticking
// simulation of temperature, humidity, pressure, soil moisture, wind
// and rainfall, with threshold alerts derived from each new state.
//
// One Engine owns exactly one State. Ticks and manual overrides are
// serialized behind a single mutex; a tick is a short, CPU-only
// computation that never blocks on I/O.
package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/agrinexus/farm-twin/internal/domain/alert"
)

// ErrInvalidOverride marks a rejected manual override argument. The
// state is left untouched when it is returned.
var ErrInvalidOverride = errors.New("invalid override argument")

// Engine advances the environmental state of a single farm.
type Engine struct {
	mu     sync.Mutex
	cfg    Config
	state  State
	alerts []alert.Alert

	// Hidden pressure-walk trend, clamped to [-1,1].
	pressureTrend float64

	rng *rand.Rand
}

// New builds an engine from the given constants. A nil rng selects a
// time-seeded source; tests inject a fixed seed for determinism.
func New(cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		cfg:   cfg,
		state: defaultState(),
		rng:   rng,
	}, nil
}

// NewDefault builds an engine with the documented default constants.
func NewDefault() *Engine {
	e, err := New(DefaultConfig(), nil)
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return e
}

// Tick runs one simulation step and returns the new reading together
// with the alerts active in the freshly computed state.
func (e *Engine) Tick() (Reading, []alert.Alert) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickLocked()
}

// tickLocked is the tick body; callers hold e.mu.
func (e *Engine) tickLocked() (Reading, []alert.Alert) {
	// Rain first: the new rain state feeds every other model.
	e.state.Rain = e.nextRain()
	if e.state.Rain.Raining {
		e.state.Rainfall = e.state.Rain.Intensity * 2.5 // mm per tick
	} else {
		e.state.Rainfall = 0
	}

	e.state.Temperature = e.diurnalTemperature()
	e.state.Humidity = e.diurnalHumidity()
	e.state.Pressure = e.nextPressure()
	e.state.SoilMoisture = e.nextSoilMoisture()
	e.state.WindSpeed = clamp(e.state.WindSpeed+e.rng.NormFloat64(), 0, 50)

	e.alerts = evaluateAlerts(e.state)

	e.advanceTime()

	return e.reading(), e.alerts
}

// advanceTime moves the virtual clock one tick forward and burns down
// an active rain countdown.
func (e *Engine) advanceTime() {
	e.state.TickCount++
	e.state.VirtualHour += 1.0 / float64(e.cfg.TicksPerVirtualHour)
	if e.state.VirtualHour >= 24 {
		e.state.VirtualHour = 0
	}
	if e.state.Rain.TicksLeft > 0 {
		e.state.Rain.TicksLeft--
	}
}

// reading snapshots the post-tick state; callers hold e.mu.
func (e *Engine) reading() Reading {
	return Reading{
		Temperature:  e.state.Temperature,
		Humidity:     e.state.Humidity,
		Pressure:     e.state.Pressure,
		SoilMoisture: e.state.SoilMoisture,
		Rainfall:     round2(e.state.Rainfall),
		WindSpeed:    round2(e.state.WindSpeed),
		IsRaining:    e.state.Rain.Raining,
		Tick:         e.state.TickCount,
		Timestamp:    time.Now(),
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Alerts returns the most recently computed alert set.
func (e *Engine) Alerts() []alert.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]alert.Alert, len(e.alerts))
	copy(out, e.alerts)
	return out
}

// Summary renders the human-readable projection of the current state.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Summary{
		Tick:          e.state.TickCount,
		VirtualTime:   FormatVirtualTime(e.state.VirtualHour),
		Temperature:   fmt.Sprintf("%.2f°C", e.state.Temperature),
		Humidity:      fmt.Sprintf("%.2f%%", e.state.Humidity),
		Pressure:      fmt.Sprintf("%.2f hPa", e.state.Pressure),
		SoilMoisture:  fmt.Sprintf("%.2f%%", e.state.SoilMoisture),
		IsRaining:     e.state.Rain.Raining,
		RainIntensity: e.state.Rain.Intensity,
		ActiveAlerts:  len(e.alerts),
	}
}

// ForceRain starts a rain event immediately: humidity jumps by 20
// (capped at 98), temperature drops 3°C, and the rain state machine is
// put into the raining phase with the clamped intensity. Intensity must
// lie in [0,1] and duration must be positive.
func (e *Engine) ForceRain(intensity float64, duration int) error {
	if intensity < 0 || intensity > 1 {
		return fmt.Errorf("%w: intensity %.2f outside [0,1]", ErrInvalidOverride, intensity)
	}
	if duration < 1 {
		return fmt.Errorf("%w: duration %d must be at least 1 tick", ErrInvalidOverride, duration)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Rain = NewRaining(clamp(intensity, 0.1, 1.0), duration)
	e.state.Humidity = clamp(e.state.Humidity+20, 0, 98)
	e.state.Temperature -= 3
	return nil
}

// ForceDrought drops the farm into critical dryness: soil moisture 10%,
// humidity 30%, rain stopped.
func (e *Engine) ForceDrought() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SoilMoisture = 10.0
	e.state.Humidity = 30.0
	e.state.Rain = RainState{}
}

// Reset restores the construction-time defaults, including the hidden
// pressure trend and the alert set.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = defaultState()
	e.alerts = nil
	e.pressureTrend = 0
}

// TimeJump advances the virtual clock by the given number of hours
// (wrapping at 24) and runs one ordinary tick so dependent readings
// match the new time of day. Hours must lie in [1,24].
func (e *Engine) TimeJump(hours int) (Reading, []alert.Alert, error) {
	if hours < 1 || hours > 24 {
		return Reading{}, nil, fmt.Errorf("%w: hours %d outside [1,24]", ErrInvalidOverride, hours)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.VirtualHour = e.state.VirtualHour + float64(hours)
	for e.state.VirtualHour >= 24 {
		e.state.VirtualHour -= 24
	}
	r, a := e.tickLocked()
	return r, a, nil
}
