package engine

import "math"

// The diurnal models share one phase construction: shifting the hour by
// (peak - 6) aligns the sine maximum with the configured peak hour and
// the minimum twelve hours earlier, without a separate cosine constant.
func diurnalPhase(hour, peakHour float64) float64 {
	return (hour - peakHour + 6) * (2 * math.Pi / 24)
}

// diurnalTemperature computes the sine-wave daily temperature with
// Gaussian noise, cooled by active rain (up to 5°C at full intensity).
func (e *Engine) diurnalTemperature() float64 {
	base := e.cfg.BaseTemp + e.cfg.TempAmplitude*math.Sin(diurnalPhase(e.state.VirtualHour, e.cfg.PeakHour))

	if e.state.Rain.Raining {
		base -= e.state.Rain.Intensity * 5.0
	}

	noise := e.rng.NormFloat64() * e.cfg.TempNoise
	return round2(base + noise)
}

// diurnalHumidity is the inverse of the temperature cycle: highest in
// the early morning, lowest mid-afternoon, spiking while it rains.
func (e *Engine) diurnalHumidity() float64 {
	base := e.cfg.BaseHumidity - e.cfg.HumidityAmplitude*math.Sin(diurnalPhase(e.state.VirtualHour, e.cfg.HumidityPeakHour))

	if e.state.Rain.Raining {
		base = math.Min(98, base+e.state.Rain.Intensity*20.0)
	}

	noise := e.rng.NormFloat64() * 2.0
	return round2(clamp(base+noise, 20, 100))
}

// nextPressure advances the bounded random walk: the hidden trend is
// nudged and clamped to [-1,1], pressure follows at a tenth of that,
// gets pulled slightly back toward baseline, and stays within the
// configured drift range.
func (e *Engine) nextPressure() float64 {
	e.pressureTrend = clamp(e.pressureTrend+e.rng.NormFloat64()*0.5, -1, 1)

	p := e.state.Pressure + e.pressureTrend*0.1

	if p < e.cfg.BasePressure {
		p += 0.05
	} else if p > e.cfg.BasePressure {
		p -= 0.05
	}

	lo := e.cfg.BasePressure - e.cfg.PressureDriftRange
	hi := e.cfg.BasePressure + e.cfg.PressureDriftRange
	return round2(clamp(p, lo, hi))
}

// nextSoilMoisture recharges from rain (capped at the post-rain
// ceiling) or dries out by exponential decay, with extra evaporation
// above 30°C.
func (e *Engine) nextSoilMoisture() float64 {
	m := e.state.SoilMoisture

	if e.state.Rain.Raining {
		m = math.Min(e.cfg.RainMoistureSpike, m+e.state.Rain.Intensity*5.0)
	} else {
		m *= e.cfg.DecayRate
		if e.state.Temperature > 30 {
			m -= (e.state.Temperature - 30) * e.cfg.EvaporationFactor
		}
	}

	return round2(clamp(m, 0, 100))
}
