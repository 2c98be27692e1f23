package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Elthiero/greenhouse-monitoring/models"
)

// CreateZone creates the zone and its default threshold profile in a
// single transaction: a zone is never observable without a profile. A
// name collision fails with ErrDuplicateName and persists nothing.
func CreateZone(db *gorm.DB, name, location, description string) (*models.Zone, error) {
	zone := models.Zone{Name: name, Location: location, Description: description}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&zone).Error; err != nil {
			return err
		}
		threshold := models.DefaultThreshold(zone.ID)
		if err := tx.Create(&threshold).Error; err != nil {
			return err
		}
		zone.Threshold = &threshold
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &zone, nil
}

// GetZone fetches a zone with its threshold profile.
func GetZone(db *gorm.DB, zoneID uint) (*models.Zone, error) {
	var zone models.Zone
	if err := db.Preload("Threshold").First(&zone, zoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// ListZones returns all zones with their thresholds, ordered by name.
func ListZones(db *gorm.DB) ([]models.Zone, error) {
	var zones []models.Zone
	if err := db.Preload("Threshold").Order("name").Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// UpdateZone replaces the zone's name, location and description.
func UpdateZone(db *gorm.DB, zoneID uint, name, location, description string) (*models.Zone, error) {
	zone, err := GetZone(db, zoneID)
	if err != nil {
		return nil, err
	}
	zone.Name = name
	zone.Location = location
	zone.Description = description
	if err := db.Omit(clause.Associations).Save(zone).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return zone, nil
}

// DeleteZone removes the zone, its threshold profile and all its readings.
func DeleteZone(db *gorm.DB, zoneID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var zone models.Zone
		if err := tx.First(&zone, zoneID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("zone_id = ?", zoneID).Delete(&models.SensorReading{}).Error; err != nil {
			return err
		}
		if err := tx.Where("zone_id = ?", zoneID).Delete(&models.ZoneThreshold{}).Error; err != nil {
			return err
		}
		return tx.Delete(&zone).Error
	})
}

// GetThreshold returns the zone's threshold profile. The profile always
// exists for a live zone, but callers still get ErrNotFound rather than a
// panic if it is somehow absent.
func GetThreshold(db *gorm.DB, zoneID uint) (*models.ZoneThreshold, error) {
	var threshold models.ZoneThreshold
	if err := db.Where("zone_id = ?", zoneID).First(&threshold).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &threshold, nil
}

// UpdateThreshold applies a partial bounds update. Existing readings keep
// the alert flags they were ingested with.
func UpdateThreshold(db *gorm.DB, zoneID uint, update models.ThresholdUpdate) (*models.ZoneThreshold, error) {
	threshold, err := GetThreshold(db, zoneID)
	if err != nil {
		return nil, err
	}
	if update.TempMin != nil {
		threshold.TempMin = *update.TempMin
	}
	if update.TempMax != nil {
		threshold.TempMax = *update.TempMax
	}
	if update.HumidityMin != nil {
		threshold.HumidityMin = *update.HumidityMin
	}
	if update.HumidityMax != nil {
		threshold.HumidityMax = *update.HumidityMax
	}
	if update.MoistureMin != nil {
		threshold.MoistureMin = *update.MoistureMin
	}
	if update.MoistureMax != nil {
		threshold.MoistureMax = *update.MoistureMax
	}
	if err := db.Save(threshold).Error; err != nil {
		return nil, err
	}
	return threshold, nil
}
