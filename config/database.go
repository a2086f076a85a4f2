package config

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlitePrefix selects the sqlite driver, e.g. "sqlite:bakery.db" or "sqlite::memory:"
const sqlitePrefix = "sqlite:"

var DB *gorm.DB

// ConnectDatabase opens the database named by databaseURL. Postgres URLs
// go to the postgres driver; "sqlite:<path>" opens a local sqlite file.
func ConnectDatabase(databaseURL string, logLevel string) error {
	if databaseURL == "" {
		return fmt.Errorf("database URL is empty")
	}

	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel(logLevel))}

	var dialector gorm.Dialector
	driver := "postgres"
	if path, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok {
		dialector = sqlite.Open(path)
		driver = "sqlite"
	} else {
		dialector = postgres.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		// sqlite serializes writers; one connection keeps :memory: databases shared
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	DB = db
	log.Printf("Database connection established successfully (%s)", driver)
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
