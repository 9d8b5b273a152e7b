package engine

import (
	"fmt"

	"github.com/agrinexus/farm-twin/internal/domain/alert"
)

// Fixed alert thresholds. These mirror typical agronomic guidance and
// are deliberately not part of Config: overrides and demos rely on the
// same breach points everywhere.
const (
	criticalDryThreshold  = 30.0 // % soil moisture
	severeDryThreshold    = 20.0 // % soil moisture, escalates severity
	stormPressureLimit    = 990.0 // hPa
	heatWarningThreshold  = 38.0 // °C
	frostWarningThreshold = 2.0  // °C
)

// evaluateAlerts is a pure projection of the state onto the set of
// currently breached thresholds. It is recomputed in full every tick;
// nothing accumulates.
func evaluateAlerts(s State) []alert.Alert {
	var alerts []alert.Alert

	if s.SoilMoisture < criticalDryThreshold {
		severity := alert.SeverityMedium
		if s.SoilMoisture < severeDryThreshold {
			severity = alert.SeverityHigh
		}
		alerts = append(alerts, alert.Alert{
			Kind:     alert.KindCriticalDry,
			Severity: severity,
			Title:    "Critical Soil Moisture Alert",
			Message: fmt.Sprintf("Soil moisture has dropped to %.2f%%. Irrigation recommended immediately.",
				s.SoilMoisture),
			Threshold: criticalDryThreshold,
			Actual:    s.SoilMoisture,
		})
	}

	if s.Pressure < stormPressureLimit {
		alerts = append(alerts, alert.Alert{
			Kind:     alert.KindStormWarning,
			Severity: alert.SeverityHigh,
			Title:    "Storm Warning",
			Message: fmt.Sprintf("Atmospheric pressure at %.2f hPa indicates potential severe weather. Secure equipment and crops.",
				s.Pressure),
			Threshold: stormPressureLimit,
			Actual:    s.Pressure,
		})
	}

	if s.Temperature > heatWarningThreshold {
		alerts = append(alerts, alert.Alert{
			Kind:     alert.KindHeatWarning,
			Severity: alert.SeverityMedium,
			Title:    "Heat Wave Alert",
			Message: fmt.Sprintf("Temperature has reached %.2f°C. Consider shade netting and increased irrigation.",
				s.Temperature),
			Threshold: heatWarningThreshold,
			Actual:    s.Temperature,
		})
	}

	if s.Temperature < frostWarningThreshold {
		alerts = append(alerts, alert.Alert{
			Kind:     alert.KindFrostWarning,
			Severity: alert.SeverityCritical,
			Title:    "Frost Warning",
			Message: fmt.Sprintf("Temperature has dropped to %.2f°C. Frost damage risk is high. Activate frost protection.",
				s.Temperature),
			Threshold: frostWarningThreshold,
			Actual:    s.Temperature,
		})
	}

	return alerts
}
