package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) (*SQLiteSensorRepository, *SQLiteAlertRepository) {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "farm.db"))
	if err != nil {
		t.Fatalf("InitSQLite returned error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteSensorRepository(db), NewSQLiteAlertRepository(db)
}

func TestSensorLogRoundTrip(t *testing.T) {
	sensors, _ := testDB(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		log := SensorLog{
			FarmID:         "farm-alpha",
			Temperature:    28.5 + float64(i),
			Humidity:       62.0,
			Pressure:       1012.75,
			SoilMoisture:   48.2,
			Rainfall:       0,
			WindSpeed:      4.8,
			SimulationTick: int64(i + 1),
			Timestamp:      base.Add(time.Duration(i) * time.Second),
		}
		if err := sensors.Append(ctx, log); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	recent, err := sensors.Recent(ctx, "farm-alpha", 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 recent logs, got %d", len(recent))
	}
	if recent[0].SimulationTick != 3 {
		t.Errorf("Expected newest log first (tick 3), got tick %d", recent[0].SimulationTick)
	}
	if recent[0].Temperature != 30.5 {
		t.Errorf("Expected temperature 30.5, got %.2f", recent[0].Temperature)
	}
	if recent[0].ID == "" {
		t.Error("Expected a generated row ID")
	}

	since, err := sensors.Since(ctx, "farm-alpha", base)
	if err != nil {
		t.Fatalf("Since returned error: %v", err)
	}
	if len(since) != 2 {
		t.Errorf("Expected 2 logs after base time, got %d", len(since))
	}
	if len(since) == 2 && since[0].SimulationTick > since[1].SimulationTick {
		t.Error("Expected Since to return oldest first")
	}
}

func TestSensorLogsAreScopedByFarm(t *testing.T) {
	sensors, _ := testDB(t)
	ctx := context.Background()

	for _, farm := range []string{"farm-alpha", "farm-beta"} {
		err := sensors.Append(ctx, SensorLog{FarmID: farm, SimulationTick: 1, Timestamp: time.Now()})
		if err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	logs, err := sensors.Recent(ctx, "farm-alpha", 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log for farm-alpha, got %d", len(logs))
	}
	if logs[0].FarmID != "farm-alpha" {
		t.Errorf("Expected farm-alpha log, got %s", logs[0].FarmID)
	}
}

func TestAlertLogRoundTrip(t *testing.T) {
	_, alerts := testDB(t)
	ctx := context.Background()

	log := AlertLog{
		FarmID:         "farm-alpha",
		AlertType:      "CRITICAL_DRY",
		Severity:       "high",
		Title:          "Critical Soil Moisture Alert",
		Message:        "Soil moisture has dropped to 18.50%. Irrigation recommended immediately.",
		ThresholdValue: 30.0,
		ActualValue:    18.5,
		SimulationTick: 42,
		Timestamp:      time.Now().UTC(),
	}
	if err := alerts.Append(ctx, log); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	recent, err := alerts.Recent(ctx, "farm-alpha", 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 alert log, got %d", len(recent))
	}
	got := recent[0]
	if got.AlertType != "CRITICAL_DRY" || got.Severity != "high" {
		t.Errorf("Expected CRITICAL_DRY/high, got %s/%s", got.AlertType, got.Severity)
	}
	if got.ThresholdValue != 30.0 || got.ActualValue != 18.5 {
		t.Errorf("Expected threshold 30.0 and actual 18.5, got %.2f and %.2f",
			got.ThresholdValue, got.ActualValue)
	}
}
