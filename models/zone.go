package models

import "time"

// Zone is a named greenhouse area. Every zone owns exactly one
// ZoneThreshold (created together with the zone) and all of its sensor
// readings; both are removed when the zone is deleted.
type Zone struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Location    string    `json:"location" gorm:"size:200"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Threshold *ZoneThreshold  `json:"threshold,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Readings  []SensorReading `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
