package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/agrinexus/farm-twin/internal/network"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is enforced by the CORS layer for REST; the demo
	// stream accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleSensorStream upgrades to a WebSocket and subscribes the client
// to one farm's tick stream.
func (s *Server) handleSensorStream(w http.ResponseWriter, r *http.Request) {
	farmID := mux.Vars(r)["farm_id"]

	// Ensure the farm simulation exists before subscribing.
	if _, err := s.registry.Get(farmID); err != nil {
		s.writeError(w, http.StatusInternalServerError, "simulation_error", err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed: " + err.Error())
		return
	}

	// Banner goes out before the pumps start so it precedes any tick.
	_ = conn.WriteJSON(map[string]any{
		"type":    "connected",
		"farm_id": farmID,
		"message": "Subscribed to live sensor stream",
	})

	client := network.NewClient(s.hub, farmID, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) handleSensorStatus(w http.ResponseWriter, r *http.Request) {
	farms := s.registry.FarmIDs()

	summaries := make(map[string]any, len(farms))
	connections := 0
	for _, id := range farms {
		if eng, ok := s.registry.Lookup(id); ok {
			summaries[id] = eng.Summary()
		}
		connections += s.hub.ClientCount(id)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"simulation": summaries,
		"connections": map[string]any{
			"total":        connections,
			"active_farms": farms,
		},
	})
}

func (s *Server) handleSensorHistory(w http.ResponseWriter, r *http.Request) {
	farmID := mux.Vars(r)["farm_id"]

	// ?since= switches to the chronological trend query; ?limit= only
	// applies to the recent-first default.
	if raw := r.URL.Query().Get("since"); raw != "" {
		after, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid_request",
				"since must be an RFC 3339 timestamp")
			return
		}
		logs, err := s.sensors.Since(r.Context(), farmID, after)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]any{
			"farm_id": farmID,
			"count":   len(logs),
			"logs":    logs,
		})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := s.sensors.Recent(r.Context(), farmID, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"farm_id": farmID,
		"count":   len(logs),
		"logs":    logs,
	})
}

func (s *Server) handleAlertHistory(w http.ResponseWriter, r *http.Request) {
	farmID := mux.Vars(r)["farm_id"]
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := s.alerts.Recent(r.Context(), farmID, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"farm_id": farmID,
		"count":   len(logs),
		"alerts":  logs,
	})
}
