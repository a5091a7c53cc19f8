package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the configured database. DATABASE_URL selects postgres;
// without it the shop runs on a local sqlite file (DB_PATH, default
// pos.db), which matches the single-terminal deployment.
func ConnectDB() *gorm.DB {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var (
		db      *gorm.DB
		err     error
		sqlite3 bool
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // Disables implicit prepared statements for pooled connections
		}), &gorm.Config{
			Logger:      newLogger,
			PrepareStmt: false,
		})
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "pos.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: newLogger,
		})
		sqlite3 = true
	}

	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}

	sqlDB, _ := db.DB()
	if sqlite3 {
		// sqlite is single-writer; one connection avoids lock errors.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
	return db
}
