package controllers

import (
	"gorm.io/gorm"

	"github.com/Elthiero/greenhouse-monitoring/models"
)

// MigrateModels runs the database migrations
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(&models.Zone{}, &models.ZoneThreshold{}, &models.SensorReading{})
}
