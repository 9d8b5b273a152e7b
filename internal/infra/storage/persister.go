package storage

import (
	"context"

	"github.com/agrinexus/farm-twin/internal/engine"
	"github.com/agrinexus/farm-twin/internal/platform/logger"
	"github.com/agrinexus/farm-twin/internal/platform/metrics"
)

// TickPersister writes tick payloads to the repositories from a
// background worker so the simulation loop never waits on disk.
type TickPersister struct {
	sensors *SQLiteSensorRepository
	alerts  *SQLiteAlertRepository
	queue   chan engine.TickPayload
	logger  *logger.Logger
	// Persist every Nth tick; 1 persists all of them.
	sampleEvery int64
}

// NewTickPersister builds the persister. sampleEvery thins the sensor
// history: only ticks whose counter is a multiple of it are written
// (alerts are always written).
func NewTickPersister(sensors *SQLiteSensorRepository, alerts *SQLiteAlertRepository, sampleEvery int64, log *logger.Logger) *TickPersister {
	if sampleEvery < 1 {
		sampleEvery = 1
	}
	return &TickPersister{
		sensors:     sensors,
		alerts:      alerts,
		queue:       make(chan engine.TickPayload, 256),
		logger:      log,
		sampleEvery: sampleEvery,
	}
}

// PersistTick queues a payload for writing. It never blocks: when the
// queue is full the tick is dropped and counted as a write error.
func (p *TickPersister) PersistTick(payload engine.TickPayload) {
	select {
	case p.queue <- payload:
	default:
		metrics.Get().RecordDBError()
		p.logger.Warn("Persistence queue full, dropping tick for farm " + payload.FarmID)
	}
}

// Run drains the queue until the context is cancelled. Call in a
// goroutine.
func (p *TickPersister) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Tick persister shutting down.")
			return
		case payload := <-p.queue:
			p.write(ctx, payload)
		}
	}
}

func (p *TickPersister) write(ctx context.Context, payload engine.TickPayload) {
	if payload.Sensors.Tick%p.sampleEvery == 0 {
		log := SensorLog{
			FarmID:         payload.FarmID,
			Temperature:    payload.Sensors.Temperature,
			Humidity:       payload.Sensors.Humidity,
			Pressure:       payload.Sensors.Pressure,
			SoilMoisture:   payload.Sensors.SoilMoisture,
			Rainfall:       payload.Sensors.Rainfall,
			WindSpeed:      payload.Sensors.WindSpeed,
			IsRaining:      payload.Sensors.IsRaining,
			SimulationTick: payload.Sensors.Tick,
			Timestamp:      payload.Timestamp,
		}
		if err := p.sensors.Append(ctx, log); err != nil {
			metrics.Get().RecordDBError()
			p.logger.Error("Failed to persist sensor log: " + err.Error())
		} else {
			metrics.Get().RecordDBWrite()
		}
	}

	for _, a := range payload.Alerts {
		log := AlertLog{
			FarmID:         payload.FarmID,
			AlertType:      string(a.Kind),
			Severity:       string(a.Severity),
			Title:          a.Title,
			Message:        a.Message,
			ThresholdValue: a.Threshold,
			ActualValue:    a.Actual,
			SimulationTick: payload.Sensors.Tick,
			Timestamp:      payload.Timestamp,
		}
		if err := p.alerts.Append(ctx, log); err != nil {
			metrics.Get().RecordDBError()
			p.logger.Error("Failed to persist alert log: " + err.Error())
		} else {
			metrics.Get().RecordDBWrite()
		}
	}
}
