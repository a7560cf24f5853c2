package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/cobraflex/printercare/internal/domain/awards"
	"github.com/cobraflex/printercare/internal/domain/maintenance"
	"github.com/cobraflex/printercare/internal/domain/preset"
	"github.com/cobraflex/printercare/internal/domain/user"
	"github.com/cobraflex/printercare/internal/infrastructure/persistence/postgres/connection"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MigrationRecord tracks the migration history
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;unique"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for migration records
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	// Enable UUID extension for PostgreSQL
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Error("Failed to create UUID extension", zap.Error(err))
		return fmt.Errorf("failed to create UUID extension: %v", err)
	}

	// Create migrations table if it doesn't exist
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		logger.Error("Failed to create migrations table", zap.Error(err))
		return fmt.Errorf("failed to create migrations table: %v", err)
	}

	// Start a transaction for the entire migration process
	return db.Transaction(func(tx *gorm.DB) error {
		// Create a wrapped database connection for the transaction
		txDB := &connection.Database{DB: tx}

		// Get the current highest version number
		var lastVersion int
		if err := txDB.Model(&MigrationRecord{}).Select("COALESCE(MAX(version), 0)").Scan(&lastVersion).Error; err != nil {
			return fmt.Errorf("failed to get last version: %v", err)
		}

		// Define the models in the order they should be migrated
		// This order matters due to foreign key relationships
		models := []interface{}{
			&user.User{}, // Users first, everything else references them
			&user.UserSession{},
			&maintenance.Task{},
			&maintenance.Log{},
			&awards.UserAward{},
			&awards.UserStreak{},
			&preset.TaskPreset{},
			&preset.PresetAssignment{},
		}

		// Migrate each model
		for i, model := range models {
			modelName := fmt.Sprintf("%T", model)

			// Check if this model has been migrated
			var record MigrationRecord
			err := txDB.Where("name = ?", modelName).First(&record).Error
			isNewMigration := errors.Is(err, gorm.ErrRecordNotFound)

			// Run the migration
			if err := txDB.AutoMigrate(model); err != nil {
				logger.Error("Failed to migrate model",
					zap.String("model", modelName),
					zap.Error(err),
				)
				return fmt.Errorf("failed to migrate %s: %v", modelName, err)
			}

			// Record the migration if it's new
			if isNewMigration {
				record = MigrationRecord{
					Name:      modelName,
					Version:   lastVersion + i + 1, // Increment version for each new migration
					AppliedAt: time.Now(),
				}
				if err := txDB.Create(&record).Error; err != nil {
					logger.Error("Failed to record migration",
						zap.String("model", modelName),
						zap.Error(err),
					)
					return fmt.Errorf("failed to record migration for %s: %v", modelName, err)
				}
				logger.Info("Applied new migration",
					zap.String("model", modelName),
					zap.Int("version", record.Version),
				)
			}
		}

		// Seed the default admin account
		if err := createDefaultAdmin(tx); err != nil {
			return err
		}

		logger.Info("Database migration completed successfully")
		return nil
	})
}

// createDefaultAdmin ensures the built-in admin account exists
func createDefaultAdmin(db *gorm.DB) error {
	var existing user.User
	err := db.Where("company_name = ? AND serial_number = ? AND operator_name = ?",
		"CobraFlex", "ADMIN001", "Administrator").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := user.User{
		CompanyName:  "CobraFlex",
		SerialNumber: "ADMIN001",
		OperatorName: "Administrator",
		Email:        "admin@cobraflex.com",
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		Timezone:     "UTC",
		PurchaseDate: time.Now().UTC().Truncate(24 * time.Hour),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}
	return nil
}

// GetMigrationHistory returns the history of applied migrations
func GetMigrationHistory(db *connection.Database) ([]MigrationRecord, error) {
	var records []MigrationRecord
	err := db.Order("version ASC").Find(&records).Error
	return records, err
}
