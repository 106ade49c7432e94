package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

// Init opens the sqlite database at dbPath and migrates the schema. The
// returned handle is owned by the caller and released with Close.
func Init(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// sqlite is single-writer; one connection also keeps ":memory:" databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Destination{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	zap.L().Info("Database initialised and migrated successfully", zap.String("path", dbPath))

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
