package ai

import (
	"strings"
	"testing"

	"github.com/agrinexus/farm-twin/internal/domain/alert"
	"github.com/agrinexus/farm-twin/internal/engine"
)

func sampleSummary() engine.Summary {
	return engine.Summary{
		Tick:         120,
		VirtualTime:  "10:00",
		Temperature:  "33.50°C",
		Humidity:     "48.00%",
		Pressure:     "1008.20 hPa",
		SoilMoisture: "27.80%",
	}
}

func TestSensorContextCarriesReadings(t *testing.T) {
	ctx := BuildSensorContext("farm-alpha", sampleSummary(), nil)

	for _, want := range []string{"farm-alpha", "10:00", "33.50°C", "1008.20 hPa", "27.80%"} {
		if !strings.Contains(ctx, want) {
			t.Errorf("Expected sensor context to contain %q", want)
		}
	}
	if !strings.Contains(ctx, "No active alerts") {
		t.Error("Expected context to state that no alerts are active")
	}
}

func TestSensorContextListsAlerts(t *testing.T) {
	alerts := []alert.Alert{{
		Kind:     alert.KindCriticalDry,
		Severity: alert.SeverityMedium,
		Title:    "Critical Soil Moisture Alert",
		Message:  "Soil moisture has dropped to 27.80%. Irrigation recommended immediately.",
	}}

	ctx := BuildSensorContext("farm-alpha", sampleSummary(), alerts)

	if !strings.Contains(ctx, "ACTIVE ALERTS") {
		t.Error("Expected an alert section")
	}
	if !strings.Contains(ctx, "CRITICAL_DRY") {
		t.Error("Expected the alert kind in the context")
	}
}

func TestChatMessagesTrimHistory(t *testing.T) {
	var history []Message
	for i := 0; i < 10; i++ {
		history = append(history, Message{Role: "user", Content: "old question"})
	}
	history[9].Content = "newest question"

	messages := BuildChatMessages("farm-alpha", sampleSummary(), nil, history, "How much should I irrigate?")

	// system + 6 history + 1 new user turn
	if len(messages) != 8 {
		t.Fatalf("Expected 8 messages, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("Expected system message first, got %s", messages[0].Role)
	}
	if messages[6].Content != "newest question" {
		t.Error("Expected the trimmed history to keep the newest turns")
	}

	last := messages[len(messages)-1]
	if last.Role != "user" || !strings.Contains(last.Content, "How much should I irrigate?") {
		t.Error("Expected the final message to carry the new question")
	}
	if !strings.Contains(last.Content, "CURRENT SENSOR READINGS") {
		t.Error("Expected the final message to carry the sensor context")
	}
}

func TestBudgetGateBlocksOverspend(t *testing.T) {
	gate := NewBudgetGate(1.0, 10.0)

	if !gate.CanSpend(0.5) {
		t.Error("Expected spend within limits to be allowed")
	}
	gate.RecordSpend(0.8)
	if gate.CanSpend(0.5) {
		t.Error("Expected spend past the daily limit to be blocked")
	}
	if gate.Remaining() != 9.2 {
		t.Errorf("Expected 9.2 monthly budget remaining, got %.2f", gate.Remaining())
	}
}
