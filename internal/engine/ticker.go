package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agrinexus/farm-twin/internal/domain/alert"
	"github.com/agrinexus/farm-twin/internal/platform/logger"
	"github.com/agrinexus/farm-twin/internal/platform/metrics"
)

// DefaultTickInterval is how often the simulation advances in real
// time when no interval is configured.
const DefaultTickInterval = 2 * time.Second

// TickPayload is the per-tick message handed to the broadcaster and
// the persister. It is the wire format streamed over the websocket.
type TickPayload struct {
	FarmID           string        `json:"farm_id"`
	Sensors          Reading       `json:"sensors"`
	Alerts           []alert.Alert `json:"alerts"`
	SimulationStatus Summary       `json:"simulation_status"`
	Timestamp        time.Time     `json:"timestamp"`
}

// Broadcaster fans a tick payload out to connected clients.
// Implementations must not block the tick loop.
type Broadcaster interface {
	BroadcastTick(payload TickPayload)
}

// Persister records a tick payload. Implementations must not block the
// tick loop; queue and write asynchronously.
type Persister interface {
	PersistTick(payload TickPayload)
}

// Ticker drives one farm's engine from a real-time clock. It owns no
// simulation state itself; it only calls Tick and hands the result on.
type Ticker struct {
	farmID      string
	engine      *Engine
	interval    time.Duration
	broadcaster Broadcaster
	persister   Persister
	logger      *logger.Logger
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// NewTicker wires a ticker to an engine. Broadcaster and persister may
// be nil; a nil collaborator is simply skipped each tick.
func NewTicker(farmID string, e *Engine, interval time.Duration, b Broadcaster, p Persister, log *logger.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{
		farmID:      farmID,
		engine:      e,
		interval:    interval,
		broadcaster: b,
		persister:   p,
		logger:      log,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the tick loop. Call in a goroutine; it returns when the
// context is cancelled or Stop is called.
func (t *Ticker) Start(ctx context.Context) {
	t.logger.Info("Simulation ticker started for farm " + t.farmID)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Simulation ticker stopped by context for farm " + t.farmID)
			return
		case <-t.stopChan:
			t.logger.Info("Simulation ticker stopped manually for farm " + t.farmID)
			return
		case <-ticker.C:
			t.tick()
		}
	}
}

// Stop gracefully stops the ticker. Safe to call more than once.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stopChan) })
}

// tick advances the engine once and hands the payload on.
func (t *Ticker) tick() {
	start := time.Now()
	reading, alerts := t.engine.Tick()
	metrics.Get().RecordTick(time.Since(start))
	metrics.Get().RecordAlerts(len(alerts))

	payload := TickPayload{
		FarmID:           t.farmID,
		Sensors:          reading,
		Alerts:           alerts,
		SimulationStatus: t.engine.Summary(),
		Timestamp:        reading.Timestamp,
	}

	if t.broadcaster != nil {
		t.broadcaster.BroadcastTick(payload)
	}
	if t.persister != nil {
		t.persister.PersistTick(payload)
	}

	if len(alerts) > 0 {
		t.logger.Event("ALERTS", t.farmID, fmt.Sprintf("%d active after tick %d", len(alerts), reading.Tick))
	}
}
