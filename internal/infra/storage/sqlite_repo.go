package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SensorLog is one persisted sensor reading.
type SensorLog struct {
	ID             string    `json:"id"`
	FarmID         string    `json:"farm_id"`
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity"`
	Pressure       float64   `json:"pressure"`
	SoilMoisture   float64   `json:"soil_moisture"`
	Rainfall       float64   `json:"rainfall"`
	WindSpeed      float64   `json:"wind_speed"`
	IsRaining      bool      `json:"is_raining"`
	SimulationTick int64     `json:"simulation_tick"`
	Timestamp      time.Time `json:"timestamp"`
}

// AlertLog is one persisted alert occurrence.
type AlertLog struct {
	ID             string    `json:"id"`
	FarmID         string    `json:"farm_id"`
	AlertType      string    `json:"alert_type"`
	Severity       string    `json:"severity"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	ThresholdValue float64   `json:"threshold_value"`
	ActualValue    float64   `json:"actual_value"`
	SimulationTick int64     `json:"simulation_tick"`
	Timestamp      time.Time `json:"timestamp"`
}

// SQLiteSensorRepository persists and queries sensor readings.
type SQLiteSensorRepository struct {
	db *sql.DB
}

func NewSQLiteSensorRepository(db *sql.DB) *SQLiteSensorRepository {
	return &SQLiteSensorRepository{db: db}
}

func (r *SQLiteSensorRepository) Append(ctx context.Context, log SensorLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	query := `
		INSERT INTO sensor_logs (id, farm_id, temperature, humidity, pressure, soil_moisture, rainfall, wind_speed, is_raining, simulation_tick, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.FarmID, log.Temperature, log.Humidity, log.Pressure,
		log.SoilMoisture, log.Rainfall, log.WindSpeed, log.IsRaining,
		log.SimulationTick, log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append sensor log: %w", err)
	}
	return nil
}

// Recent returns the newest readings for a farm, newest first.
func (r *SQLiteSensorRepository) Recent(ctx context.Context, farmID string, limit int) ([]SensorLog, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT id, farm_id, temperature, humidity, pressure, soil_moisture, rainfall, wind_speed, is_raining, simulation_tick, timestamp
		FROM sensor_logs WHERE farm_id = ? ORDER BY timestamp DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, farmID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []SensorLog
	for rows.Next() {
		var l SensorLog
		if err := rows.Scan(&l.ID, &l.FarmID, &l.Temperature, &l.Humidity, &l.Pressure,
			&l.SoilMoisture, &l.Rainfall, &l.WindSpeed, &l.IsRaining,
			&l.SimulationTick, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Since returns all readings for a farm after the given time, oldest
// first, for trend charts.
func (r *SQLiteSensorRepository) Since(ctx context.Context, farmID string, after time.Time) ([]SensorLog, error) {
	query := `SELECT id, farm_id, temperature, humidity, pressure, soil_moisture, rainfall, wind_speed, is_raining, simulation_tick, timestamp
		FROM sensor_logs WHERE farm_id = ? AND timestamp > ? ORDER BY timestamp ASC`
	rows, err := r.db.QueryContext(ctx, query, farmID, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []SensorLog
	for rows.Next() {
		var l SensorLog
		if err := rows.Scan(&l.ID, &l.FarmID, &l.Temperature, &l.Humidity, &l.Pressure,
			&l.SoilMoisture, &l.Rainfall, &l.WindSpeed, &l.IsRaining,
			&l.SimulationTick, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// SQLiteAlertRepository persists and queries alert occurrences.
type SQLiteAlertRepository struct {
	db *sql.DB
}

func NewSQLiteAlertRepository(db *sql.DB) *SQLiteAlertRepository {
	return &SQLiteAlertRepository{db: db}
}

func (r *SQLiteAlertRepository) Append(ctx context.Context, log AlertLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	query := `
		INSERT INTO alert_log (id, farm_id, alert_type, severity, title, message, threshold_value, actual_value, simulation_tick, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.FarmID, log.AlertType, log.Severity, log.Title, log.Message,
		log.ThresholdValue, log.ActualValue, log.SimulationTick, log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append alert log: %w", err)
	}
	return nil
}

// Recent returns the newest alerts for a farm, newest first.
func (r *SQLiteAlertRepository) Recent(ctx context.Context, farmID string, limit int) ([]AlertLog, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, farm_id, alert_type, severity, title, message, threshold_value, actual_value, simulation_tick, timestamp
		FROM alert_log WHERE farm_id = ? ORDER BY timestamp DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, farmID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []AlertLog
	for rows.Next() {
		var l AlertLog
		if err := rows.Scan(&l.ID, &l.FarmID, &l.AlertType, &l.Severity, &l.Title, &l.Message,
			&l.ThresholdValue, &l.ActualValue, &l.SimulationTick, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
