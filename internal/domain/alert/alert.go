// Package alert defines the threshold-breach signals emitted by the
// weather simulation. Alerts are value objects: they carry no identity
// and no history, only the breach observed in the current tick.
package alert

// Kind identifies which environmental threshold was crossed.
type Kind string

const (
	KindCriticalDry  Kind = "CRITICAL_DRY"
	KindStormWarning Kind = "STORM_WARNING"
	KindHeatWarning  Kind = "HEAT_WARNING"
	KindFrostWarning Kind = "FROST_WARNING"
)

// Severity grades how urgent an alert is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is a single active threshold breach.
type Alert struct {
	Kind      Kind     `json:"type"`
	Severity  Severity `json:"severity"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Threshold float64  `json:"threshold_value"`
	Actual    float64  `json:"actual_value"`
}
