package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("Expected default addr :8000, got %s", cfg.Server.Addr)
	}
	if cfg.Simulation.BaseTemp != 28.0 {
		t.Errorf("Expected default base temp 28.0, got %.1f", cfg.Simulation.BaseTemp)
	}
	if cfg.TickInterval.Std() != 2*time.Second {
		t.Errorf("Expected default 2s tick interval, got %s", cfg.TickInterval.Std())
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
storage:
  db_path: /tmp/test.db
  persist_every_ticks: 1
simulation:
  base_temp: 22.5
  temp_amplitude: 8.0
  peak_hour: 14.0
  temp_noise: 0.3
  base_humidity: 65.0
  humidity_amplitude: 15.0
  humidity_peak_hour: 5.0
  base_pressure: 1013.25
  pressure_drift_range: 20.0
  decay_rate: 0.995
  rain_moisture_spike: 95.0
  evaporation_factor: 0.02
  rain_humidity_threshold: 85.0
  rain_pressure_threshold: 1005.0
  rain_base_probability: 0.01
  rain_duration_min: 10
  rain_duration_max: 50
  ticks_per_virtual_hour: 30
tick_interval: 500ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected overridden addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Simulation.BaseTemp != 22.5 {
		t.Errorf("Expected base temp 22.5, got %.1f", cfg.Simulation.BaseTemp)
	}
	if cfg.TickInterval.Std() != 500*time.Millisecond {
		t.Errorf("Expected 500ms tick interval, got %s", cfg.TickInterval.Std())
	}
	// Untouched sections keep their defaults.
	if cfg.AI.MonthlyBudgetUSD != 20.0 {
		t.Errorf("Expected default monthly budget, got %.1f", cfg.AI.MonthlyBudgetUSD)
	}
}

func TestInvalidSimulationConstantsRejected(t *testing.T) {
	path := writeConfig(t, `
simulation:
  base_temp: 28.0
  temp_amplitude: 8.0
  peak_hour: 14.0
  base_humidity: 65.0
  humidity_amplitude: 15.0
  humidity_peak_hour: 5.0
  base_pressure: 1013.25
  pressure_drift_range: 20.0
  decay_rate: 1.5
  rain_moisture_spike: 95.0
  rain_humidity_threshold: 85.0
  rain_pressure_threshold: 1005.0
  rain_base_probability: 0.01
  rain_duration_min: 10
  rain_duration_max: 50
  ticks_per_virtual_hour: 30
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected decay_rate 1.5 to be rejected")
	}
}

func TestMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
