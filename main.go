package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Elthiero/greenhouse-monitoring/config"
	"github.com/Elthiero/greenhouse-monitoring/controllers"
	"github.com/Elthiero/greenhouse-monitoring/middlewares"
	"github.com/Elthiero/greenhouse-monitoring/mqtt"
	"github.com/Elthiero/greenhouse-monitoring/notify"
	"github.com/Elthiero/greenhouse-monitoring/services"
)

func main() {
	// Load environment variables
	godotenv.Load()

	logger, err := config.InitLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// Connect to PostgreSQL database and migrate models
	db, err := config.ConnectDatabase(os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := controllers.MigrateModels(db); err != nil {
		logger.Fatal("Failed to migrate models", zap.Error(err))
	}

	// Alert events go to the webhook when configured, the log otherwise.
	if url := os.Getenv("ALERT_WEBHOOK_URL"); url != "" {
		services.SetDispatcher(notify.NewWebhookDispatcher(url))
	} else {
		services.SetDispatcher(notify.LogDispatcher{Logger: logger})
	}

	// Optional MQTT ingestion bridge
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		topic := os.Getenv("MQTT_TOPIC")
		if topic == "" {
			topic = "greenhouse/+/readings"
		}
		bridge := mqtt.NewSubscriber(broker, "greenhouse-monitoring", topic, db, logger)
		if err := bridge.Start(); err != nil {
			logger.Fatal("Failed to start MQTT bridge", zap.Error(err))
		}
		defer bridge.Stop()
	}

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", controllers.HealthCheck)

	api := r.Group("/api")
	api.POST("/zones", controllers.CreateZone)
	api.GET("/zones", controllers.ListZones)
	api.GET("/zones/:id", controllers.GetZone)
	api.PUT("/zones/:id", controllers.UpdateZone)
	api.DELETE("/zones/:id", controllers.DeleteZone)
	api.GET("/zones/:id/threshold", controllers.GetThreshold)
	api.PUT("/zones/:id/threshold", controllers.UpdateThreshold)
	api.POST("/zones/:id/readings", controllers.IngestReadings)
	api.GET("/readings", controllers.ListReadings)
	api.GET("/readings/export", controllers.ExportCSV)
	api.GET("/charts/zones/:id/series", controllers.ZoneSeriesChart)
	api.GET("/charts/top-moisture", controllers.TopMoistureChart)
	api.GET("/charts/daily-alerts", controllers.DailyAlertsChart)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
