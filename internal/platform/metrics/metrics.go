// Package metrics collects runtime counters for the farm server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector aggregates counters across the server. All methods are
// safe for concurrent use.
type Collector struct {
	startTime time.Time

	ticksTotal     atomic.Int64
	tickDurationNs atomic.Int64

	wsConnections atomic.Int64
	wsMessages    atomic.Int64
	wsDropped     atomic.Int64

	dbWrites atomic.Int64
	dbErrors atomic.Int64

	llmRequests    atomic.Int64
	llmTokensIn    atomic.Int64
	llmTokensOut   atomic.Int64
	llmCostMicroUSD atomic.Int64

	alertsRaised atomic.Int64
}

var (
	global *Collector
	once   sync.Once
)

// Get returns the process-wide collector.
func Get() *Collector {
	once.Do(func() {
		global = &Collector{startTime: time.Now()}
	})
	return global
}

// RecordTick registers one completed simulation tick and its duration.
func (c *Collector) RecordTick(d time.Duration) {
	c.ticksTotal.Add(1)
	c.tickDurationNs.Add(d.Nanoseconds())
}

// RecordAlerts registers alerts active after a tick.
func (c *Collector) RecordAlerts(n int) {
	c.alertsRaised.Add(int64(n))
}

// WSConnect registers a new websocket client.
func (c *Collector) WSConnect() { c.wsConnections.Add(1) }

// WSDisconnect registers a websocket client leaving.
func (c *Collector) WSDisconnect() { c.wsConnections.Add(-1) }

// WSMessage registers one message delivered to a client.
func (c *Collector) WSMessage() { c.wsMessages.Add(1) }

// WSDropped registers a client disconnected for falling behind.
func (c *Collector) WSDropped() { c.wsDropped.Add(1) }

// RecordDBWrite registers a persisted row.
func (c *Collector) RecordDBWrite() { c.dbWrites.Add(1) }

// RecordDBError registers a failed persistence attempt.
func (c *Collector) RecordDBError() { c.dbErrors.Add(1) }

// RecordLLMUsage registers one assistant completion.
func (c *Collector) RecordLLMUsage(tokensIn, tokensOut int, costUSD float64) {
	c.llmRequests.Add(1)
	c.llmTokensIn.Add(int64(tokensIn))
	c.llmTokensOut.Add(int64(tokensOut))
	c.llmCostMicroUSD.Add(int64(costUSD * 1e6))
}

// Snapshot is the JSON form served at /metrics.
type Snapshot struct {
	UptimeSeconds   float64 `json:"uptime_seconds"`
	TicksTotal      int64   `json:"ticks_total"`
	AvgTickMicros   float64 `json:"avg_tick_micros"`
	WSConnections   int64   `json:"ws_connections"`
	WSMessages      int64   `json:"ws_messages"`
	WSDropped       int64   `json:"ws_dropped_clients"`
	DBWrites        int64   `json:"db_writes"`
	DBErrors        int64   `json:"db_errors"`
	LLMRequests     int64   `json:"llm_requests"`
	LLMTokensIn     int64   `json:"llm_tokens_in"`
	LLMTokensOut    int64   `json:"llm_tokens_out"`
	LLMCostUSD      float64 `json:"llm_cost_usd"`
	AlertsRaised    int64   `json:"alerts_raised"`
}

func (c *Collector) snapshot() Snapshot {
	ticks := c.ticksTotal.Load()
	var avg float64
	if ticks > 0 {
		avg = float64(c.tickDurationNs.Load()) / float64(ticks) / 1e3
	}
	return Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		TicksTotal:    ticks,
		AvgTickMicros: avg,
		WSConnections: c.wsConnections.Load(),
		WSMessages:    c.wsMessages.Load(),
		WSDropped:     c.wsDropped.Load(),
		DBWrites:      c.dbWrites.Load(),
		DBErrors:      c.dbErrors.Load(),
		LLMRequests:   c.llmRequests.Load(),
		LLMTokensIn:   c.llmTokensIn.Load(),
		LLMTokensOut:  c.llmTokensOut.Load(),
		LLMCostUSD:    float64(c.llmCostMicroUSD.Load()) / 1e6,
		AlertsRaised:  c.alertsRaised.Load(),
	}
}

// Handler serves the metrics snapshot as JSON.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(c.snapshot())
	}
}

// PrometheusHandler serves the snapshot in Prometheus text format.
func (c *Collector) PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := c.snapshot()
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprintf(w, "# HELP farm_ticks_total Total simulation ticks executed.\n")
		fmt.Fprintf(w, "# TYPE farm_ticks_total counter\n")
		fmt.Fprintf(w, "farm_ticks_total %d\n", s.TicksTotal)
		fmt.Fprintf(w, "# HELP farm_ws_connections Currently connected websocket clients.\n")
		fmt.Fprintf(w, "# TYPE farm_ws_connections gauge\n")
		fmt.Fprintf(w, "farm_ws_connections %d\n", s.WSConnections)
		fmt.Fprintf(w, "# HELP farm_ws_messages_total Messages delivered to websocket clients.\n")
		fmt.Fprintf(w, "# TYPE farm_ws_messages_total counter\n")
		fmt.Fprintf(w, "farm_ws_messages_total %d\n", s.WSMessages)
		fmt.Fprintf(w, "# HELP farm_ws_dropped_clients_total Clients disconnected for slow reads.\n")
		fmt.Fprintf(w, "# TYPE farm_ws_dropped_clients_total counter\n")
		fmt.Fprintf(w, "farm_ws_dropped_clients_total %d\n", s.WSDropped)
		fmt.Fprintf(w, "# HELP farm_db_writes_total Rows persisted to storage.\n")
		fmt.Fprintf(w, "# TYPE farm_db_writes_total counter\n")
		fmt.Fprintf(w, "farm_db_writes_total %d\n", s.DBWrites)
		fmt.Fprintf(w, "# HELP farm_db_errors_total Failed storage writes.\n")
		fmt.Fprintf(w, "# TYPE farm_db_errors_total counter\n")
		fmt.Fprintf(w, "farm_db_errors_total %d\n", s.DBErrors)
		fmt.Fprintf(w, "# HELP farm_llm_requests_total Assistant completions served.\n")
		fmt.Fprintf(w, "# TYPE farm_llm_requests_total counter\n")
		fmt.Fprintf(w, "farm_llm_requests_total %d\n", s.LLMRequests)
		fmt.Fprintf(w, "# HELP farm_llm_cost_usd Accumulated assistant spend in USD.\n")
		fmt.Fprintf(w, "# TYPE farm_llm_cost_usd counter\n")
		fmt.Fprintf(w, "farm_llm_cost_usd %f\n", s.LLMCostUSD)
		fmt.Fprintf(w, "# HELP farm_alerts_raised_total Alerts active across all ticks.\n")
		fmt.Fprintf(w, "# TYPE farm_alerts_raised_total counter\n")
		fmt.Fprintf(w, "farm_alerts_raised_total %d\n", s.AlertsRaised)
	}
}
