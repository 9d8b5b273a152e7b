package engine

import (
	"math/rand"
	"testing"
)

func TestRainNeverStartsAtZeroProbability(t *testing.T) {
	e := seededEngine(t, 20)
	e.cfg.RainBaseProbability = 0
	e.state.Humidity = 40
	e.state.Pressure = 1013.25

	for i := 0; i < 500; i++ {
		r, _ := e.Tick()
		if r.IsRaining {
			t.Fatalf("Rain started at tick %d despite zero onset probability", r.Tick)
		}
		e.state.Humidity = 40
		e.state.Pressure = 1013.25
	}
}

func TestHighHumidityLowPressureRaisesOnsetOdds(t *testing.T) {
	started := func(humidity, pressure float64) int {
		count := 0
		for seed := int64(0); seed < 200; seed++ {
			e, err := New(DefaultConfig(), rand.New(rand.NewSource(seed)))
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			e.state.Humidity = humidity
			e.state.Pressure = pressure
			if e.nextRain().Raining {
				count++
			}
		}
		return count
	}

	calm := started(60, 1013)
	stormy := started(98, 988)
	if stormy <= calm {
		t.Errorf("Expected more onsets under storm conditions: calm=%d stormy=%d", calm, stormy)
	}
}

func TestSpontaneousRainDurationAndIntensityRanges(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 500; seed++ {
		e, err := New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		// Saturated conditions make onset very likely.
		e.state.Humidity = 100
		e.state.Pressure = 990

		rs := e.nextRain()
		if !rs.Raining {
			continue
		}
		if rs.TicksLeft < cfg.RainDurationMin || rs.TicksLeft > cfg.RainDurationMax {
			t.Fatalf("Duration %d out of [%d,%d]", rs.TicksLeft, cfg.RainDurationMin, cfg.RainDurationMax)
		}
		if rs.Intensity < 0.3 || rs.Intensity > 1.0 {
			t.Fatalf("Onset intensity %.3f out of [0.3,1.0]", rs.Intensity)
		}
	}
}

func TestContinuingRainIntensityStaysBounded(t *testing.T) {
	e := seededEngine(t, 21)
	e.state.Rain = NewRaining(0.5, 1000)

	for i := 0; i < 1000; i++ {
		rs := e.nextRain()
		if !rs.Raining {
			t.Fatalf("Rain stopped with %d ticks left", e.state.Rain.TicksLeft)
		}
		if rs.Intensity < 0.1 || rs.Intensity > 1.0 {
			t.Fatalf("Continuing intensity %.3f out of [0.1,1.0]", rs.Intensity)
		}
		e.state.Rain = rs
	}
}

func TestRainCoolsAndHumidifies(t *testing.T) {
	dry := seededEngine(t, 22)
	wet := seededEngine(t, 22)
	wet.state.Rain = NewRaining(1.0, 100)

	// Same seed, same noise draws; the only difference is rain.
	dryTemp := dry.diurnalTemperature()
	wetTemp := wet.diurnalTemperature()
	if wetTemp >= dryTemp {
		t.Errorf("Expected rain to cool: dry=%.2f wet=%.2f", dryTemp, wetTemp)
	}

	dryHum := dry.diurnalHumidity()
	wetHum := wet.diurnalHumidity()
	if wetHum <= dryHum {
		t.Errorf("Expected rain to humidify: dry=%.2f wet=%.2f", dryHum, wetHum)
	}
}

func TestRainRechargesSoil(t *testing.T) {
	e := seededEngine(t, 23)
	e.state.SoilMoisture = 40.0
	e.state.Rain = NewRaining(0.8, 10)

	next := e.nextSoilMoisture()
	if next != 44.0 {
		t.Errorf("Expected soil moisture 44.0 after recharge, got %.2f", next)
	}

	// Recharge caps at the post-rain ceiling.
	e.state.SoilMoisture = 94.0
	e.state.Rain = NewRaining(1.0, 10)
	if got := e.nextSoilMoisture(); got != 95.0 {
		t.Errorf("Expected recharge cap at 95.0, got %.2f", got)
	}
}

func TestDrySoilDecaysWithHeatEvaporation(t *testing.T) {
	e := seededEngine(t, 24)
	e.state.SoilMoisture = 50.0
	e.state.Temperature = 26.0

	mild := e.nextSoilMoisture()
	if mild != round2(50.0*0.995) {
		t.Errorf("Expected plain decay %.2f, got %.2f", round2(50.0*0.995), mild)
	}

	e.state.SoilMoisture = 50.0
	e.state.Temperature = 40.0
	hot := e.nextSoilMoisture()
	want := round2(50.0*0.995 - (40.0-30.0)*0.02)
	if hot != want {
		t.Errorf("Expected heat-accelerated decay %.2f, got %.2f", want, hot)
	}
}
