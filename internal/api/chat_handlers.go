package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agrinexus/farm-twin/internal/infra/ai"
)

type chatRequest struct {
	FarmID  string       `json:"farm_id"`
	Message string       `json:"message"`
	History []ai.Message `json:"history,omitempty"`
}

type chatResponse struct {
	Response      string `json:"response"`
	SensorContext string `json:"sensor_context"`
}

// handleChat answers a question about the farm, grounding the model
// on the live sensor readings. Without a configured provider it
// degrades to a canned reply instead of failing.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_request", "Field 'message' is required")
		return
	}
	if req.FarmID == "" {
		req.FarmID = "default"
	}

	eng, err := s.registry.Get(req.FarmID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "farm_unavailable", err.Error())
		return
	}
	summary := eng.Summary()
	alerts := eng.Alerts()
	sensorCtx := ai.BuildSensorContext(req.FarmID, summary, alerts)

	if s.llm == nil || !s.llm.IsAvailable() {
		s.writeJSON(w, http.StatusOK, chatResponse{
			Response:      ai.FallbackResponse,
			SensorContext: sensorCtx,
		})
		return
	}

	messages := ai.BuildChatMessages(req.FarmID, summary, alerts, req.History, req.Message)
	completion, err := s.llm.Complete(r.Context(), ai.CompletionRequest{
		Messages:    messages,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		s.logger.Error("Chat completion failed: " + err.Error())
		s.writeJSON(w, http.StatusOK, chatResponse{
			Response:      ai.FallbackResponse,
			SensorContext: sensorCtx,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		Response:      completion.Content,
		SensorContext: sensorCtx,
	})
}

// handleChatHealth reports assistant availability and spend.
func (s *Server) handleChatHealth(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"provider":  "none",
			"available": false,
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"provider":  s.llm.Name(),
		"available": s.llm.IsAvailable(),
		"usage":     s.llm.GetUsageStats(),
	})
}
