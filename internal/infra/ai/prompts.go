// Package ai - prompts.go
// Prompt assembly for the farm assistant: a fixed agronomy persona
// plus the live sensor readings of the farm being asked about.
package ai

import (
	"fmt"
	"strings"

	"github.com/agrinexus/farm-twin/internal/domain/alert"
	"github.com/agrinexus/farm-twin/internal/engine"
)

// historyWindow caps how many prior messages are replayed to the
// model. Older turns add cost without improving answers about the
// current conditions.
const historyWindow = 6

// AssistantSystemPrompt is the persona for the farm chat assistant.
const AssistantSystemPrompt = `You are AgriNexus Assistant, an expert agronomist helping farmers interpret their farm's live sensor data.

Your guidelines:
- Answer practical farming questions: irrigation, crop selection, pest pressure, weather response.
- Ground every answer in the CURRENT SENSOR READINGS provided with each question. Quote the actual values when relevant.
- If an alert is active, address it first. Alerts describe conditions that need action now.
- Be concise: farmers read you on a phone in the field. Three short paragraphs at most.
- Use metric units (°C, mm, hPa, %).
- If a question is outside farming and the farm's conditions, say so briefly and steer back.
- Never invent sensor values that are not in the context.`

// FallbackResponse is returned when no LLM provider is configured.
const FallbackResponse = "The AI assistant is not configured on this server. " +
	"Live sensor data and alerts are still available on the dashboard; " +
	"for crop guidance, check the research tab's feasibility report."

// BuildSensorContext renders the live readings and alerts as the
// context block attached to every user question.
func BuildSensorContext(farmID string, summary engine.Summary, alerts []alert.Alert) string {
	var sb strings.Builder

	sb.WriteString("## CURRENT SENSOR READINGS\n\n")
	sb.WriteString(fmt.Sprintf("Farm: %s\n", farmID))
	sb.WriteString(fmt.Sprintf("Virtual time: %s (tick %d)\n", summary.VirtualTime, summary.Tick))
	sb.WriteString(fmt.Sprintf("Temperature: %s\n", summary.Temperature))
	sb.WriteString(fmt.Sprintf("Humidity: %s\n", summary.Humidity))
	sb.WriteString(fmt.Sprintf("Pressure: %s\n", summary.Pressure))
	sb.WriteString(fmt.Sprintf("Soil moisture: %s\n", summary.SoilMoisture))
	if summary.IsRaining {
		sb.WriteString(fmt.Sprintf("Rain: active, intensity %.2f\n", summary.RainIntensity))
	} else {
		sb.WriteString("Rain: none\n")
	}

	if len(alerts) > 0 {
		sb.WriteString("\n## ACTIVE ALERTS\n\n")
		for _, a := range alerts {
			sb.WriteString(fmt.Sprintf("- [%s/%s] %s: %s\n", a.Kind, a.Severity, a.Title, a.Message))
		}
	} else {
		sb.WriteString("\nNo active alerts.\n")
	}

	return sb.String()
}

// BuildChatMessages assembles the full message list for one assistant
// turn: persona, trimmed history, then the sensor context and the new
// question.
func BuildChatMessages(farmID string, summary engine.Summary, alerts []alert.Alert, history []Message, question string) []Message {
	messages := []Message{{Role: "system", Content: AssistantSystemPrompt}}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	messages = append(messages, history...)

	content := BuildSensorContext(farmID, summary, alerts) + "\n## QUESTION\n\n" + question
	messages = append(messages, Message{Role: "user", Content: content})

	return messages
}
