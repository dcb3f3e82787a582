package database

import (
	"fmt"
	"os"

	"takura-freight/logger"
	bidModel "takura-freight/models/bid"
	jobModel "takura-freight/models/job"
	loadModel "takura-freight/models/load"
	logModel "takura-freight/models/log"
	notificationModel "takura-freight/models/notification"
	userModel "takura-freight/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := seedJobCounter(DB); err != nil {
		logger.Error("Failed to seed job counter", err)
		return nil, err
	}

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order.
func autoMigrate(db *gorm.DB) error {
	// Stage 1: models with no foreign keys
	stage1Models := []interface{}{
		&userModel.User{},
		&jobModel.Counter{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing users
	stage2Models := []interface{}{
		&loadModel.Load{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: models referencing loads
	stage3Models := []interface{}{
		&bidModel.Bid{},
		&jobModel.Job{},
	}

	for _, model := range stage3Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Remaining models
	remainingModels := []interface{}{
		&notificationModel.Notification{},
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// seedJobCounter makes sure the single sequence row for job ids exists.
func seedJobCounter(db *gorm.DB) error {
	counter := jobModel.Counter{ID: 1}
	return db.FirstOrCreate(&counter, jobModel.Counter{ID: 1}).Error
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Load indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_loads_client_status ON loads(client_id, status)").Error; err != nil {
		return fmt.Errorf("failed to create load client/status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_loads_created_at ON loads(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create load created_at index: %w", err)
	}

	// Bid indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bids_driver ON bids(driver_id)").Error; err != nil {
		return fmt.Errorf("failed to create bid driver index: %w", err)
	}

	// Job indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_jobs_driver_status ON jobs(driver_id, status)").Error; err != nil {
		return fmt.Errorf("failed to create job driver/status index: %w", err)
	}

	// Notification indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications(user_id, read)").Error; err != nil {
		return fmt.Errorf("failed to create notification user/read index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
