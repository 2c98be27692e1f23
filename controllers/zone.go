package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Elthiero/greenhouse-monitoring/config"
	"github.com/Elthiero/greenhouse-monitoring/models"
	"github.com/Elthiero/greenhouse-monitoring/services"
)

type zoneInput struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CreateZone registers a new greenhouse zone with default thresholds.
func CreateZone(c *gin.Context) {
	var input zoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: name is required"})
		return
	}
	zone, err := services.CreateZone(config.DB, input.Name, input.Location, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, zone)
}

// ListZones returns all zones with their threshold profiles.
func ListZones(c *gin.Context) {
	zones, err := services.ListZones(config.DB)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// GetZone returns one zone with its threshold profile.
func GetZone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	zone, err := services.GetZone(config.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// UpdateZone replaces a zone's name, location and description.
func UpdateZone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var input zoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: name is required"})
		return
	}
	zone, err := services.UpdateZone(config.DB, id, input.Name, input.Location, input.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, zone)
}

// DeleteZone removes a zone together with its thresholds and readings.
func DeleteZone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := services.DeleteZone(config.DB, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Zone deleted successfully"})
}

// GetThreshold returns the zone's threshold profile.
func GetThreshold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	threshold, err := services.GetThreshold(config.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, threshold)
}

// UpdateThreshold applies a partial update to the zone's bounds.
func UpdateThreshold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var update models.ThresholdUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	threshold, err := services.UpdateThreshold(config.DB, id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, threshold)
}
