package models

import "time"

// SensorReading is one measurement for a zone. Readings are append-only:
// the timestamp is assigned by the server and IsAlert is derived from the
// zone's thresholds at ingest time, never set by clients.
type SensorReading struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ZoneID       uint      `json:"zone_id" gorm:"not null;index:idx_readings_zone_time,priority:1"`
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
	SoilMoisture float64   `json:"soil_moisture"`
	Timestamp    time.Time `json:"timestamp" gorm:"index:idx_readings_zone_time,priority:2,sort:desc"`
	IsAlert      bool      `json:"is_alert"`
}

// ReadingInput is one client-supplied measurement. Pointer fields let
// validation tell a missing key apart from a zero value.
type ReadingInput struct {
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	SoilMoisture *float64 `json:"soil_moisture"`
}

// MissingFields lists the required fields absent from the input.
func (in ReadingInput) MissingFields() []string {
	var missing []string
	if in.Temperature == nil {
		missing = append(missing, "temperature")
	}
	if in.Humidity == nil {
		missing = append(missing, "humidity")
	}
	if in.SoilMoisture == nil {
		missing = append(missing, "soil_moisture")
	}
	return missing
}
