package initializers

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/lib/pq"
)

var DB *gorm.DB // Migrate reuses this connection

// ConnectDB opens the postgres connection through the lib/pq driver.
func ConnectDB(dsn string, debug bool) error {
	log.Info().Msg("[ConnectDB] Connecting to database")
	if dsn == "" {
		return fmt.Errorf("database DSN is empty")
	}

	pgConfig := postgres.Config{
		PreferSimpleProtocol: true, // no implicit prepared statements behind poolers
		DriverName:           "postgres",
		DSN:                  dsn,
	}
	gormLogger := logger.Default.LogMode(logger.Warn)
	if debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	var err error
	DB, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		PrepareStmt:          false,
		DisableAutomaticPing: true,
		Logger:               gormLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	log.Info().Msg("[ConnectDB] Database connection successful")
	return nil
}
