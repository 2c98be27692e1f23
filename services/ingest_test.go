package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elthiero/greenhouse-monitoring/models"
	"github.com/Elthiero/greenhouse-monitoring/notify"
)

type captureDispatcher struct {
	events []notify.AlertEvent
	err    error
}

func (d *captureDispatcher) Dispatch(event notify.AlertEvent) error {
	d.events = append(d.events, event)
	return d.err
}

func installDispatcher(t *testing.T, d notify.Dispatcher) {
	t.Helper()
	SetDispatcher(d)
	t.Cleanup(func() { SetDispatcher(nil) })
}

func TestIngestOne_InRangeReading(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")

	reading, err := IngestOne(db, zone.ID, testInput(25, 50, 60))
	require.NoError(t, err)
	assert.False(t, reading.IsAlert)
	assert.NotZero(t, reading.ID)
	assert.False(t, reading.Timestamp.IsZero())
}

func TestIngestOne_OutOfRangeSetsAlert(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")

	reading, err := IngestOne(db, zone.ID, testInput(35, 50, 60))
	require.NoError(t, err)
	assert.True(t, reading.IsAlert)

	var stored models.SensorReading
	require.NoError(t, db.First(&stored, reading.ID).Error)
	assert.True(t, stored.IsAlert)
}

func TestIngestOne_UnknownZone(t *testing.T) {
	db := newTestDB(t)
	_, err := IngestOne(db, 42, testInput(25, 50, 60))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIngestOne_MissingField(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")

	_, err := IngestOne(db, zone.ID, models.ReadingInput{Temperature: ptr(25)})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.ElementsMatch(t, []string{"humidity", "soil_moisture"}, validationErr.Items[0])

	var count int64
	require.NoError(t, db.Model(&models.SensorReading{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIngestBatch_PersistsInOrder(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")

	readings, err := IngestBatch(db, zone.ID, []models.ReadingInput{
		testInput(21, 50, 60),
		testInput(22, 50, 60),
		testInput(23, 50, 60),
	})
	require.NoError(t, err)
	require.Len(t, readings, 3)
	assert.Equal(t, 21.0, readings[0].Temperature)
	assert.Equal(t, 22.0, readings[1].Temperature)
	assert.Equal(t, 23.0, readings[2].Temperature)
}

func TestIngestBatch_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")

	_, err := IngestBatch(db, zone.ID, []models.ReadingInput{
		testInput(21, 50, 60),
		testInput(22, 50, 60),
		testInput(23, 50, 60),
	})
	require.NoError(t, err)

	// One invalid item fails the whole call with the error at its index.
	_, err = IngestBatch(db, zone.ID, []models.ReadingInput{
		testInput(24, 50, 60),
		{Temperature: ptr(25), SoilMoisture: ptr(60)},
	})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Contains(t, validationErr.Items, 1)
	assert.Equal(t, []string{"humidity"}, validationErr.Items[1])
	assert.NotContains(t, validationErr.Items, 0)

	var count int64
	require.NoError(t, db.Model(&models.SensorReading{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestIngestBatch_EmptyBatch(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")

	_, err := IngestBatch(db, zone.ID, nil)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
}

func TestIngest_MissingProfileDefaultsToNoAlert(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")
	require.NoError(t, db.Where("zone_id = ?", zone.ID).Delete(&models.ZoneThreshold{}).Error)

	// Way out of the default bounds, but with no profile the write still
	// goes through without an alert.
	reading, err := IngestOne(db, zone.ID, testInput(90, 5, 5))
	require.NoError(t, err)
	assert.False(t, reading.IsAlert)
}

func TestIngest_DispatchesAlertEvent(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")
	dispatcher := &captureDispatcher{}
	installDispatcher(t, dispatcher)

	reading, err := IngestOne(db, zone.ID, testInput(35, 50, 20))
	require.NoError(t, err)
	require.Len(t, dispatcher.events, 1)

	event := dispatcher.events[0]
	assert.Equal(t, "Zone A", event.ZoneName)
	assert.Equal(t, reading.Timestamp, event.Timestamp)
	require.Len(t, event.Metrics, 2)
	assert.Equal(t, "temperature", event.Metrics[0].Metric)
	assert.Equal(t, 35.0, event.Metrics[0].Value)
	assert.Equal(t, 30.0, event.Metrics[0].Bound)
	assert.Equal(t, "above", event.Metrics[0].Direction)
	assert.Equal(t, "soil_moisture", event.Metrics[1].Metric)
	assert.Equal(t, "below", event.Metrics[1].Direction)
	assert.Equal(t, 40.0, event.Metrics[1].Bound)
}

func TestIngest_NoEventForNormalReading(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")
	dispatcher := &captureDispatcher{}
	installDispatcher(t, dispatcher)

	_, err := IngestOne(db, zone.ID, testInput(25, 50, 60))
	require.NoError(t, err)
	assert.Empty(t, dispatcher.events)
}

func TestIngest_DispatchFailureDoesNotFailWrite(t *testing.T) {
	db := newTestDB(t)
	zone := createTestZone(t, db, "Zone A")
	installDispatcher(t, &captureDispatcher{err: errors.New("smtp down")})

	reading, err := IngestOne(db, zone.ID, testInput(35, 50, 60))
	require.NoError(t, err)
	assert.True(t, reading.IsAlert)

	var count int64
	require.NoError(t, db.Model(&models.SensorReading{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
