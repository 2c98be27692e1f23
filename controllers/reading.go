package controllers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Elthiero/greenhouse-monitoring/config"
	"github.com/Elthiero/greenhouse-monitoring/models"
	"github.com/Elthiero/greenhouse-monitoring/services"
)

// IngestReadings processes incoming sensor data for a zone. The body may
// be a single reading object or a JSON array for bulk upload.
func IngestReadings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var inputs []models.ReadingInput
		if err := json.Unmarshal(body, &inputs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
			return
		}
		readings, err := services.IngestBatch(config.DB, id, inputs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, readings)
		return
	}

	var input models.ReadingInput
	if err := json.Unmarshal(body, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	reading, err := services.IngestOne(config.DB, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

// ListReadings returns the newest readings, optionally filtered by zone
// (?zone=ID), capped at the 100 most recent.
func ListReadings(c *gin.Context) {
	zoneID, limit, ok := readingFilters(c)
	if !ok {
		return
	}
	readings, err := services.ListReadings(config.DB, zoneID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// ExportCSV sends the readings log as a CSV file.
func ExportCSV(c *gin.Context) {
	zoneID, limit, ok := readingFilters(c)
	if !ok {
		return
	}
	readings, err := services.ListReadings(config.DB, zoneID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=sensor_readings.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"timestamp", "zone_id", "temperature", "humidity", "soil_moisture", "is_alert"})
	for _, r := range readings {
		writer.Write([]string{
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			strconv.FormatUint(uint64(r.ZoneID), 10),
			fmt.Sprintf("%.2f", r.Temperature),
			fmt.Sprintf("%.2f", r.Humidity),
			fmt.Sprintf("%.2f", r.SoilMoisture),
			strconv.FormatBool(r.IsAlert),
		})
	}
}

func readingFilters(c *gin.Context) (zoneID uint, limit int, ok bool) {
	if z := c.Query("zone"); z != "" {
		parsed, err := strconv.ParseUint(z, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid zone id"})
			return 0, 0, false
		}
		zoneID = uint(parsed)
	}
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return 0, 0, false
		}
		limit = parsed
	}
	return zoneID, limit, true
}
