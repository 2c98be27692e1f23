package services

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Elthiero/greenhouse-monitoring/config"
	"github.com/Elthiero/greenhouse-monitoring/models"
	"github.com/Elthiero/greenhouse-monitoring/notify"
	"github.com/Elthiero/greenhouse-monitoring/utils"
)

var alertDispatcher notify.Dispatcher

// SetDispatcher installs the alert event sink. Pass nil to disable
// dispatching (readings are still persisted with their alert flags).
func SetDispatcher(d notify.Dispatcher) {
	alertDispatcher = d
}

// IngestOne validates and persists a single reading, computing its alert
// flag against the zone's current thresholds.
func IngestOne(db *gorm.DB, zoneID uint, input models.ReadingInput) (*models.SensorReading, error) {
	if missing := input.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Items: map[int][]string{0: missing}}
	}
	readings, err := ingest(db, zoneID, []models.ReadingInput{input})
	if err != nil {
		return nil, err
	}
	return &readings[0], nil
}

// IngestBatch validates and persists an ordered list of readings
// all-or-nothing: if any item is invalid the whole call fails with a
// ValidationError carrying per-index errors and no rows are written.
func IngestBatch(db *gorm.DB, zoneID uint, inputs []models.ReadingInput) ([]models.SensorReading, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Message: "empty batch"}
	}
	items := make(map[int][]string)
	for i, input := range inputs {
		if missing := input.MissingFields(); len(missing) > 0 {
			items[i] = missing
		}
	}
	if len(items) > 0 {
		return nil, &ValidationError{Items: items}
	}
	return ingest(db, zoneID, inputs)
}

// ingest runs the pipeline stages for already-validated inputs:
// evaluate against thresholds, persist in one transaction, then emit
// alert events for the committed rows.
func ingest(db *gorm.DB, zoneID uint, inputs []models.ReadingInput) ([]models.SensorReading, error) {
	var zone models.Zone
	if err := db.First(&zone, zoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// A missing profile must never block the write: the reading goes in
	// with IsAlert=false and we log the broken invariant.
	var threshold *models.ZoneThreshold
	var t models.ZoneThreshold
	switch err := db.Where("zone_id = ?", zone.ID).First(&t).Error; {
	case err == nil:
		threshold = &t
	case errors.Is(err, gorm.ErrRecordNotFound):
		config.Logger.Warn("zone has no threshold profile", zap.Uint("zone_id", zone.ID))
	default:
		return nil, err
	}

	now := time.Now()
	readings := make([]models.SensorReading, len(inputs))
	for i, input := range inputs {
		r := models.SensorReading{
			ZoneID:       zone.ID,
			Temperature:  *input.Temperature,
			Humidity:     *input.Humidity,
			SoilMoisture: *input.SoilMoisture,
			Timestamp:    now,
		}
		if threshold != nil {
			r.IsAlert = utils.Evaluate(r, *threshold)
		}
		readings[i] = r
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&readings).Error
	}); err != nil {
		return nil, err
	}

	// Events go out only for committed rows; a delivery failure is logged
	// and swallowed, never rolled back into the write.
	if threshold != nil {
		for _, r := range readings {
			if r.IsAlert {
				emitAlert(zone.Name, r, *threshold)
			}
		}
	}
	return readings, nil
}

func emitAlert(zoneName string, r models.SensorReading, t models.ZoneThreshold) {
	if alertDispatcher == nil {
		return
	}
	event := notify.AlertEvent{
		ZoneName:  zoneName,
		Metrics:   utils.Violations(r, t),
		Timestamp: r.Timestamp,
	}
	if err := alertDispatcher.Dispatch(event); err != nil {
		config.Logger.Error("alert dispatch failed",
			zap.String("zone", zoneName), zap.Error(err))
	}
}
