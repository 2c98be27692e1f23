package utils

import "github.com/Elthiero/greenhouse-monitoring/models"

// Violation describes one metric outside its configured bounds.
type Violation struct {
	Metric    string  `json:"name"`
	Value     float64 `json:"value"`
	Bound     float64 `json:"bound"`
	Direction string  `json:"direction"` // "above" or "below"
}

// Evaluate determines whether the reading breaks any bound of t.
// Values exactly on a bound are in range.
func Evaluate(r models.SensorReading, t models.ZoneThreshold) bool {
	return r.Temperature < t.TempMin || r.Temperature > t.TempMax ||
		r.Humidity < t.HumidityMin || r.Humidity > t.HumidityMax ||
		r.SoilMoisture < t.MoistureMin || r.SoilMoisture > t.MoistureMax
}

// Violations lists every out-of-bound metric of the reading together with
// the bound it crossed.
func Violations(r models.SensorReading, t models.ZoneThreshold) []Violation {
	var out []Violation
	if r.Temperature > t.TempMax {
		out = append(out, Violation{"temperature", r.Temperature, t.TempMax, "above"})
	} else if r.Temperature < t.TempMin {
		out = append(out, Violation{"temperature", r.Temperature, t.TempMin, "below"})
	}
	if r.Humidity > t.HumidityMax {
		out = append(out, Violation{"humidity", r.Humidity, t.HumidityMax, "above"})
	} else if r.Humidity < t.HumidityMin {
		out = append(out, Violation{"humidity", r.Humidity, t.HumidityMin, "below"})
	}
	if r.SoilMoisture > t.MoistureMax {
		out = append(out, Violation{"soil_moisture", r.SoilMoisture, t.MoistureMax, "above"})
	} else if r.SoilMoisture < t.MoistureMin {
		out = append(out, Violation{"soil_moisture", r.SoilMoisture, t.MoistureMin, "below"})
	}
	return out
}
