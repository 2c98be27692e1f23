package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Elthiero/greenhouse-monitoring/models"
)

// newTestDB opens an in-memory database named after the test so parallel
// tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Zone{}, &models.ZoneThreshold{}, &models.SensorReading{}))
	return db
}

func createTestZone(t *testing.T, db *gorm.DB, name string) *models.Zone {
	t.Helper()
	zone, err := CreateZone(db, name, "block A", "")
	require.NoError(t, err)
	return zone
}

// seedReading bypasses the ingestion pipeline so tests can control
// timestamps and alert flags.
func seedReading(t *testing.T, db *gorm.DB, zoneID uint, temp, humidity, moisture float64, ts time.Time, alert bool) models.SensorReading {
	t.Helper()
	r := models.SensorReading{
		ZoneID:       zoneID,
		Temperature:  temp,
		Humidity:     humidity,
		SoilMoisture: moisture,
		Timestamp:    ts,
		IsAlert:      alert,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func ptr(v float64) *float64 {
	return &v
}

func testInput(temp, humidity, moisture float64) models.ReadingInput {
	return models.ReadingInput{
		Temperature:  ptr(temp),
		Humidity:     ptr(humidity),
		SoilMoisture: ptr(moisture),
	}
}
