package engine

import (
	"testing"

	"github.com/agrinexus/farm-twin/internal/domain/alert"
)

func calmState() State {
	return State{
		Temperature:  25.0,
		Humidity:     60.0,
		Pressure:     1013.0,
		SoilMoisture: 55.0,
	}
}

func TestNoAlertsInCalmConditions(t *testing.T) {
	if got := evaluateAlerts(calmState()); len(got) != 0 {
		t.Errorf("Expected no alerts in calm conditions, got %d", len(got))
	}
}

func TestCriticalDrySeverityEscalation(t *testing.T) {
	s := calmState()

	s.SoilMoisture = 30.0
	if got := evaluateAlerts(s); len(got) != 0 {
		t.Errorf("Soil moisture exactly 30 must not alert, got %d alerts", len(got))
	}

	s.SoilMoisture = 29.99
	alerts := evaluateAlerts(s)
	if len(alerts) != 1 || alerts[0].Kind != alert.KindCriticalDry {
		t.Fatalf("Expected one CRITICAL_DRY alert, got %v", alerts)
	}
	if alerts[0].Severity != alert.SeverityMedium {
		t.Errorf("Expected medium severity at 29.99%%, got %s", alerts[0].Severity)
	}

	s.SoilMoisture = 19.99
	alerts = evaluateAlerts(s)
	if alerts[0].Severity != alert.SeverityHigh {
		t.Errorf("Expected high severity below 20%%, got %s", alerts[0].Severity)
	}
}

func TestStormWarning(t *testing.T) {
	s := calmState()

	s.Pressure = 990.0
	if got := evaluateAlerts(s); len(got) != 0 {
		t.Errorf("Pressure exactly 990 must not alert, got %d alerts", len(got))
	}

	s.Pressure = 989.5
	alerts := evaluateAlerts(s)
	if len(alerts) != 1 || alerts[0].Kind != alert.KindStormWarning {
		t.Fatalf("Expected one STORM_WARNING alert, got %v", alerts)
	}
	if alerts[0].Severity != alert.SeverityHigh {
		t.Errorf("Expected high severity, got %s", alerts[0].Severity)
	}
	if alerts[0].Threshold != 990.0 || alerts[0].Actual != 989.5 {
		t.Errorf("Expected threshold 990 and actual 989.5, got %.2f and %.2f",
			alerts[0].Threshold, alerts[0].Actual)
	}
}

func TestHeatWarning(t *testing.T) {
	s := calmState()

	s.Temperature = 38.0
	if got := evaluateAlerts(s); len(got) != 0 {
		t.Errorf("Temperature exactly 38 must not alert, got %d alerts", len(got))
	}

	s.Temperature = 38.01
	alerts := evaluateAlerts(s)
	if len(alerts) != 1 || alerts[0].Kind != alert.KindHeatWarning {
		t.Fatalf("Expected one HEAT_WARNING alert, got %v", alerts)
	}
	if alerts[0].Severity != alert.SeverityMedium {
		t.Errorf("Expected medium severity, got %s", alerts[0].Severity)
	}
}

func TestFrostWarning(t *testing.T) {
	s := calmState()

	s.Temperature = 2.0
	if got := evaluateAlerts(s); len(got) != 0 {
		t.Errorf("Temperature exactly 2 must not alert, got %d alerts", len(got))
	}

	s.Temperature = 1.5
	alerts := evaluateAlerts(s)
	if len(alerts) != 1 || alerts[0].Kind != alert.KindFrostWarning {
		t.Fatalf("Expected one FROST_WARNING alert, got %v", alerts)
	}
	if alerts[0].Severity != alert.SeverityCritical {
		t.Errorf("Expected critical severity, got %s", alerts[0].Severity)
	}
}

func TestMultipleSimultaneousAlerts(t *testing.T) {
	s := State{
		Temperature:  39.0,
		Humidity:     25.0,
		Pressure:     985.0,
		SoilMoisture: 12.0,
	}

	alerts := evaluateAlerts(s)
	if len(alerts) != 3 {
		t.Fatalf("Expected 3 simultaneous alerts, got %d", len(alerts))
	}

	kinds := map[alert.Kind]bool{}
	for _, a := range alerts {
		kinds[a.Kind] = true
	}
	for _, want := range []alert.Kind{alert.KindCriticalDry, alert.KindStormWarning, alert.KindHeatWarning} {
		if !kinds[want] {
			t.Errorf("Expected %s among active alerts", want)
		}
	}
}

// Alerts are a pure projection: identical states must always produce
// identical alert sets, with nothing carried over between calls.
func TestAlertsDoNotAccumulate(t *testing.T) {
	dry := calmState()
	dry.SoilMoisture = 15.0

	first := evaluateAlerts(dry)
	second := evaluateAlerts(dry)
	if len(first) != len(second) {
		t.Errorf("Expected identical alert counts, got %d and %d", len(first), len(second))
	}

	recovered := calmState()
	if got := evaluateAlerts(recovered); len(got) != 0 {
		t.Errorf("Expected no alerts once conditions recover, got %d", len(got))
	}
}
