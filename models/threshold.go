package models

// ZoneThreshold holds the six bounds a reading is evaluated against.
// It is created atomically with its zone and never exists on its own.
type ZoneThreshold struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	ZoneID uint `json:"zone_id" gorm:"uniqueIndex;not null"`

	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	HumidityMin float64 `json:"humidity_min"`
	HumidityMax float64 `json:"humidity_max"`
	MoistureMin float64 `json:"moisture_min"`
	MoistureMax float64 `json:"moisture_max"`
}

// DefaultThreshold returns the bounds a new zone starts with. This is the
// only place default bounds are defined; every path that needs defaults
// must go through it.
func DefaultThreshold(zoneID uint) ZoneThreshold {
	return ZoneThreshold{
		ZoneID:      zoneID,
		TempMin:     20,
		TempMax:     30,
		HumidityMin: 40,
		HumidityMax: 70,
		MoistureMin: 40,
		MoistureMax: 80,
	}
}

// ThresholdUpdate carries a partial bounds update; nil fields keep their
// current values.
type ThresholdUpdate struct {
	TempMin     *float64 `json:"temp_min"`
	TempMax     *float64 `json:"temp_max"`
	HumidityMin *float64 `json:"humidity_min"`
	HumidityMax *float64 `json:"humidity_max"`
	MoistureMin *float64 `json:"moisture_min"`
	MoistureMax *float64 `json:"moisture_max"`
}
