package engine

import "fmt"

// Config holds the simulation constants for one farm. The zero value
// is not usable; start from DefaultConfig and override as needed.
type Config struct {
	// Temperature model.
	BaseTemp      float64 `yaml:"base_temp"`
	TempAmplitude float64 `yaml:"temp_amplitude"`
	PeakHour      float64 `yaml:"peak_hour"`
	TempNoise     float64 `yaml:"temp_noise"`

	// Humidity model.
	BaseHumidity      float64 `yaml:"base_humidity"`
	HumidityAmplitude float64 `yaml:"humidity_amplitude"`
	HumidityPeakHour  float64 `yaml:"humidity_peak_hour"`

	// Pressure random walk.
	BasePressure       float64 `yaml:"base_pressure"`
	PressureDriftRange float64 `yaml:"pressure_drift_range"`

	// Soil moisture dynamics.
	DecayRate         float64 `yaml:"decay_rate"`
	RainMoistureSpike float64 `yaml:"rain_moisture_spike"`
	EvaporationFactor float64 `yaml:"evaporation_factor"`

	// Rain onset and duration.
	RainHumidityThreshold float64 `yaml:"rain_humidity_threshold"`
	RainPressureThreshold float64 `yaml:"rain_pressure_threshold"`
	RainBaseProbability   float64 `yaml:"rain_base_probability"`
	RainDurationMin       int     `yaml:"rain_duration_min"`
	RainDurationMax       int     `yaml:"rain_duration_max"`

	// Virtual clock resolution.
	TicksPerVirtualHour int `yaml:"ticks_per_virtual_hour"`
}

// DefaultConfig returns the constants a farm starts with when nothing
// is configured.
func DefaultConfig() Config {
	return Config{
		BaseTemp:      28.0,
		TempAmplitude: 8.0,
		PeakHour:      14.0,
		TempNoise:     0.3,

		BaseHumidity:      65.0,
		HumidityAmplitude: 15.0,
		HumidityPeakHour:  5.0,

		BasePressure:       1013.25,
		PressureDriftRange: 20.0,

		DecayRate:         0.995,
		RainMoistureSpike: 95.0,
		EvaporationFactor: 0.02,

		RainHumidityThreshold: 85.0,
		RainPressureThreshold: 1005.0,
		RainBaseProbability:   0.01,
		RainDurationMin:       10,
		RainDurationMax:       50,

		TicksPerVirtualHour: 30,
	}
}

// ConfigError reports an invalid simulation constant. It is only ever
// returned at construction time; a running engine never sees one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %s: %s", e.Field, e.Reason)
}

// Validate checks the constants for internal consistency.
func (c Config) Validate() error {
	if c.TempAmplitude < 0 {
		return &ConfigError{Field: "temp_amplitude", Reason: "must not be negative"}
	}
	if c.TempNoise < 0 {
		return &ConfigError{Field: "temp_noise", Reason: "must not be negative"}
	}
	if c.PeakHour < 0 || c.PeakHour >= 24 {
		return &ConfigError{Field: "peak_hour", Reason: "must lie in [0,24)"}
	}
	if c.HumidityPeakHour < 0 || c.HumidityPeakHour >= 24 {
		return &ConfigError{Field: "humidity_peak_hour", Reason: "must lie in [0,24)"}
	}
	if c.HumidityAmplitude < 0 {
		return &ConfigError{Field: "humidity_amplitude", Reason: "must not be negative"}
	}
	if c.PressureDriftRange <= 0 {
		return &ConfigError{Field: "pressure_drift_range", Reason: "must be positive"}
	}
	if c.DecayRate <= 0 || c.DecayRate >= 1 {
		return &ConfigError{Field: "decay_rate", Reason: "must lie in (0,1)"}
	}
	if c.RainMoistureSpike < 0 || c.RainMoistureSpike > 100 {
		return &ConfigError{Field: "rain_moisture_spike", Reason: "must lie in [0,100]"}
	}
	if c.EvaporationFactor < 0 {
		return &ConfigError{Field: "evaporation_factor", Reason: "must not be negative"}
	}
	if c.RainBaseProbability < 0 || c.RainBaseProbability > 1 {
		return &ConfigError{Field: "rain_base_probability", Reason: "must lie in [0,1]"}
	}
	if c.RainDurationMin < 1 {
		return &ConfigError{Field: "rain_duration_min", Reason: "must be at least 1"}
	}
	if c.RainDurationMax < c.RainDurationMin {
		return &ConfigError{Field: "rain_duration_max", Reason: "must not be below rain_duration_min"}
	}
	if c.TicksPerVirtualHour < 1 {
		return &ConfigError{Field: "ticks_per_virtual_hour", Reason: "must be at least 1"}
	}
	return nil
}
