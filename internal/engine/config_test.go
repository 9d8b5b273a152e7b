package engine

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig must validate, got %v", err)
	}
}

func TestConfigValidationRejectsBadConstants(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative amplitude", func(c *Config) { c.TempAmplitude = -1 }, "temp_amplitude"},
		{"peak hour out of range", func(c *Config) { c.PeakHour = 24 }, "peak_hour"},
		{"decay rate zero", func(c *Config) { c.DecayRate = 0 }, "decay_rate"},
		{"decay rate one", func(c *Config) { c.DecayRate = 1 }, "decay_rate"},
		{"probability above one", func(c *Config) { c.RainBaseProbability = 1.5 }, "rain_base_probability"},
		{"duration min zero", func(c *Config) { c.RainDurationMin = 0 }, "rain_duration_min"},
		{"duration max below min", func(c *Config) { c.RainDurationMax = 5 }, "rain_duration_max"},
		{"zero ticks per hour", func(c *Config) { c.TicksPerVirtualHour = 0 }, "ticks_per_virtual_hour"},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)

		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("%s: expected *ConfigError, got %T", tc.name, err)
			continue
		}
		if ce.Field != tc.field {
			t.Errorf("%s: expected field %s, got %s", tc.name, tc.field, ce.Field)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TicksPerVirtualHour = 0

	if _, err := New(cfg, nil); err == nil {
		t.Error("Expected New to reject invalid config")
	}
}
