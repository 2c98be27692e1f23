package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is a global variable to hold the database connection
var DB *gorm.DB

// ConnectDatabase opens the PostgreSQL connection and stores it in DB.
// TranslateError makes unique-constraint violations surface as
// gorm.ErrDuplicatedKey, so callers can detect duplicate zone names
// without driver-specific checks.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}
