package engine

import "math"

// nextRain applies one transition of the rain state machine:
//
//	Dry      -> Raining   probabilistic onset from humidity/pressure
//	Raining  -> Raining   while ticks remain, intensity wanders
//	Raining  -> Dry       once the countdown has run out
//
// The countdown itself is decremented in advanceTime, so a rain event
// started with duration N survives N ticks before stopping.
func (e *Engine) nextRain() RainState {
	cur := e.state.Rain

	if cur.Raining {
		if cur.TicksLeft > 0 {
			// Gradually vary intensity around its current value.
			next := cur.Intensity + e.rng.NormFloat64()*0.1
			return NewRaining(clamp(next, 0.1, 1.0), cur.TicksLeft)
		}
		return RainState{}
	}

	humidityFactor := math.Max(0, (e.state.Humidity-e.cfg.RainHumidityThreshold)/15)
	pressureFactor := math.Max(0, (e.cfg.RainPressureThreshold-e.state.Pressure)/20)
	probability := e.cfg.RainBaseProbability + 0.1*humidityFactor + 0.1*pressureFactor

	if e.rng.Float64() < probability {
		duration := e.cfg.RainDurationMin
		if span := e.cfg.RainDurationMax - e.cfg.RainDurationMin; span > 0 {
			duration += e.rng.Intn(span + 1)
		}
		intensity := 0.3 + e.rng.Float64()*0.7
		return NewRaining(intensity, duration)
	}

	return RainState{}
}
