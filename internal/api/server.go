// Package api exposes the HTTP surface: simulation control, sensor
// history, research endpoints, the assistant chat and the live
// WebSocket stream.
package api

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/agrinexus/farm-twin/internal/config"
	"github.com/agrinexus/farm-twin/internal/engine"
	"github.com/agrinexus/farm-twin/internal/infra/ai"
	"github.com/agrinexus/farm-twin/internal/infra/storage"
	"github.com/agrinexus/farm-twin/internal/network"
	"github.com/agrinexus/farm-twin/internal/platform/logger"
	"github.com/agrinexus/farm-twin/internal/platform/metrics"
	"github.com/agrinexus/farm-twin/internal/services/geo"
	"github.com/agrinexus/farm-twin/internal/services/research"
)

// Server holds the handler dependencies.
type Server struct {
	cfg      config.Config
	registry *engine.Registry
	hub      *network.Hub
	sensors  *storage.SQLiteSensorRepository
	alerts   *storage.SQLiteAlertRepository
	geo      *geo.Service
	research *research.Service
	llm      ai.LLMProvider
	logger   *logger.Logger
}

// NewServer wires the HTTP handlers.
func NewServer(cfg config.Config, registry *engine.Registry, hub *network.Hub,
	sensors *storage.SQLiteSensorRepository, alerts *storage.SQLiteAlertRepository,
	geoSvc *geo.Service, researchSvc *research.Service, llm ai.LLMProvider, log *logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry,
		hub:      hub,
		sensors:  sensors,
		alerts:   alerts,
		geo:      geoSvc,
		research: researchSvc,
		llm:      llm,
		logger:   log,
	}
}

// Router builds the full route table with CORS and request logging.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	// Live stream
	r.HandleFunc("/ws/sensors/{farm_id}", s.handleSensorStream)

	api := r.PathPrefix("/api").Subrouter()

	// Simulation control
	api.HandleFunc("/sim/{farm_id}/rain", s.handleTriggerRain).Methods(http.MethodPost)
	api.HandleFunc("/sim/{farm_id}/drought", s.handleTriggerDrought).Methods(http.MethodPost)
	api.HandleFunc("/sim/{farm_id}/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/sim/{farm_id}/time-jump", s.handleTimeJump).Methods(http.MethodPost)
	api.HandleFunc("/sim/{farm_id}/state", s.handleState).Methods(http.MethodGet)

	// Sensors
	api.HandleFunc("/sensors/status", s.handleSensorStatus).Methods(http.MethodGet)
	api.HandleFunc("/sensors/{farm_id}/history", s.handleSensorHistory).Methods(http.MethodGet)
	api.HandleFunc("/alerts/{farm_id}/history", s.handleAlertHistory).Methods(http.MethodGet)

	// Research
	api.HandleFunc("/research/full-scan", s.handleFullScan).Methods(http.MethodPost)
	api.HandleFunc("/research/crops", s.handleCropList).Methods(http.MethodGet)
	api.HandleFunc("/geo/lookup", s.handleGeoLookup).Methods(http.MethodGet)
	api.HandleFunc("/analysis/roi", s.handleROI).Methods(http.MethodPost)

	// Assistant
	api.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	api.HandleFunc("/chat/health", s.handleChatHealth).Methods(http.MethodGet)

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/metrics", metrics.Get().Handler()).Methods(http.MethodGet)
	r.HandleFunc("/metrics/prometheus", metrics.Get().PrometheusHandler()).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.cfg.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.LoggingHandler(os.Stdout, cors(r))
}

// writeJSON sends a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response: " + err.Error())
	}
}

// errorEnvelope is the uniform error body.
type errorEnvelope struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
}

// writeError sends the uniform error envelope.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string) {
	s.writeJSON(w, status, errorEnvelope{
		Error:      true,
		StatusCode: status,
		Message:    message,
		Type:       errType,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"service":      "farm-twin",
		"active_farms": s.registry.FarmIDs(),
	})
}
