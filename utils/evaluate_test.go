package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elthiero/greenhouse-monitoring/models"
)

func defaultBounds() models.ZoneThreshold {
	return models.DefaultThreshold(1)
}

func reading(temp, humidity, moisture float64) models.SensorReading {
	return models.SensorReading{Temperature: temp, Humidity: humidity, SoilMoisture: moisture}
}

func TestEvaluate(t *testing.T) {
	bounds := defaultBounds()

	cases := []struct {
		name    string
		reading models.SensorReading
		alert   bool
	}{
		{"all in range", reading(25, 50, 60), false},
		{"on lower bounds", reading(20, 40, 40), false},
		{"on upper bounds", reading(30, 70, 80), false},
		{"temperature high", reading(35, 50, 60), true},
		{"temperature low", reading(19.9, 50, 60), true},
		{"humidity high", reading(25, 71, 60), true},
		{"humidity low", reading(25, 39, 60), true},
		{"moisture high", reading(25, 50, 81), true},
		{"moisture low", reading(25, 50, 39.5), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.alert, Evaluate(tc.reading, bounds))
		})
	}
}

func TestViolations_AllMetrics(t *testing.T) {
	bounds := defaultBounds()

	violations := Violations(reading(35, 30, 90), bounds)
	require.Len(t, violations, 3)

	assert.Equal(t, Violation{"temperature", 35, 30, "above"}, violations[0])
	assert.Equal(t, Violation{"humidity", 30, 40, "below"}, violations[1])
	assert.Equal(t, Violation{"soil_moisture", 90, 80, "above"}, violations[2])
}

func TestViolations_NoneInRange(t *testing.T) {
	assert.Empty(t, Violations(reading(25, 50, 60), defaultBounds()))
}
