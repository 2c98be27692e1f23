package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Elthiero/greenhouse-monitoring/models"
)

const (
	// DefaultSeriesLimit is how many points the dashboard line chart shows.
	DefaultSeriesLimit = 24
	// DefaultTopK is how many zones the moisture ranking shows.
	DefaultTopK = 10
	// DefaultHistogramDays is the alert histogram window length.
	DefaultHistogramDays = 7
	// maxReadingLog caps the readings log listing.
	maxReadingLog = 100
)

// ZoneSeriesData feeds the per-zone line chart: parallel slices in
// chronological order, labeled with local wall-clock times.
type ZoneSeriesData struct {
	Labels       []string  `json:"labels"`
	Temperature  []float64 `json:"temperature"`
	Humidity     []float64 `json:"humidity"`
	SoilMoisture []float64 `json:"soil_moisture"`
}

// ChartData is a generic label/value pair set for bar charts.
type ChartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// AlertHistogram holds one alert count per day of the window.
type AlertHistogram struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// ZoneSeries returns the zone's most recent readings, oldest first, for
// chronological charting.
func ZoneSeries(db *gorm.DB, zoneID uint, limit int) (*ZoneSeriesData, error) {
	if limit <= 0 {
		limit = DefaultSeriesLimit
	}
	var zone models.Zone
	if err := db.First(&zone, zoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var readings []models.SensorReading
	if err := db.Where("zone_id = ?", zoneID).
		Order("timestamp desc, id desc").
		Limit(limit).
		Find(&readings).Error; err != nil {
		return nil, err
	}

	data := &ZoneSeriesData{
		Labels:       make([]string, 0, len(readings)),
		Temperature:  make([]float64, 0, len(readings)),
		Humidity:     make([]float64, 0, len(readings)),
		SoilMoisture: make([]float64, 0, len(readings)),
	}
	// The index hands back newest-first; reverse for the chart.
	for i := len(readings) - 1; i >= 0; i-- {
		r := readings[i]
		data.Labels = append(data.Labels, r.Timestamp.Local().Format("15:04"))
		data.Temperature = append(data.Temperature, r.Temperature)
		data.Humidity = append(data.Humidity, r.Humidity)
		data.SoilMoisture = append(data.SoilMoisture, r.SoilMoisture)
	}
	return data, nil
}

// TopMoisture ranks zones by the soil moisture of their single newest
// reading. Zones without readings are excluded.
func TopMoisture(db *gorm.DB, k int) (*ChartData, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	var rows []struct {
		Name         string
		SoilMoisture float64
	}
	err := db.Raw(`
		SELECT z.name, r.soil_moisture
		FROM zones z
		JOIN sensor_readings r ON r.id = (
			SELECT r2.id FROM sensor_readings r2
			WHERE r2.zone_id = z.id
			ORDER BY r2.timestamp DESC, r2.id DESC
			LIMIT 1
		)
		ORDER BY r.soil_moisture DESC
		LIMIT ?`, k).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	data := &ChartData{
		Labels: make([]string, 0, len(rows)),
		Data:   make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		data.Labels = append(data.Labels, row.Name)
		data.Data = append(data.Data, row.SoilMoisture)
	}
	return data, nil
}

// DailyAlertHistogram counts alert readings per calendar day over the
// window [today-(days-1), today] in server-local time. Every day appears
// in the output, zero-filled, labeled with its weekday abbreviation.
func DailyAlertHistogram(db *gorm.DB, days int) (*AlertHistogram, error) {
	if days <= 0 {
		days = DefaultHistogramDays
	}
	now := time.Now()
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	var readings []models.SensorReading
	if err := db.Select("timestamp").
		Where("is_alert = ? AND timestamp >= ?", true, start).
		Find(&readings).Error; err != nil {
		return nil, err
	}

	// Buckets are keyed by date, not weekday label: a window longer than
	// seven days would alias labels but never merge counts.
	counts := make(map[string]int64, days)
	for _, r := range readings {
		counts[r.Timestamp.Local().Format("2006-01-02")]++
	}

	histogram := &AlertHistogram{
		Labels: make([]string, 0, days),
		Data:   make([]int64, 0, days),
	}
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		histogram.Labels = append(histogram.Labels, d.Format("Mon"))
		histogram.Data = append(histogram.Data, counts[d.Format("2006-01-02")])
	}
	return histogram, nil
}

// ListReadings returns the newest readings, optionally filtered by zone,
// capped at 100 rows.
func ListReadings(db *gorm.DB, zoneID uint, limit int) ([]models.SensorReading, error) {
	if limit <= 0 || limit > maxReadingLog {
		limit = maxReadingLog
	}
	query := db.Order("timestamp desc, id desc").Limit(limit)
	if zoneID != 0 {
		query = query.Where("zone_id = ?", zoneID)
	}
	var readings []models.SensorReading
	if err := query.Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}
