package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Elthiero/greenhouse-monitoring/config"
	"github.com/Elthiero/greenhouse-monitoring/services"
)

// ZoneSeriesChart returns the zone's recent readings as chart series.
func ZoneSeriesChart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit := intQuery(c, "limit")
	data, err := services.ZoneSeries(config.DB, id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// TopMoistureChart ranks zones by their newest reading's soil moisture.
func TopMoistureChart(c *gin.Context) {
	k := intQuery(c, "k")
	data, err := services.TopMoisture(config.DB, k)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// DailyAlertsChart returns the 7-day alert histogram.
func DailyAlertsChart(c *gin.Context) {
	data, err := services.DailyAlertHistogram(config.DB, services.DefaultHistogramDays)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// intQuery parses an optional positive integer query parameter; the
// services fall back to their defaults on zero.
func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
