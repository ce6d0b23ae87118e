package config

import (
	"log"
	"os"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	AdminKey     string
	ShippingRate string // flat delivery cost, decimal string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "sellnow.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./sellnow.log"
	}
	adminKey := os.Getenv("ADMIN_KEY")
	if adminKey == "" {
		adminKey = "sellnow-dev-key" // dev default; override in deployment
	}
	rate := os.Getenv("SHIPPING_RATE")
	if rate == "" {
		rate = "150.00"
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, AdminKey: adminKey, ShippingRate: rate}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SHIPPING_RATE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.ShippingRate)
	return cfg
}
