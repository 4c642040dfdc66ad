package db

import (
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

// Migrate runs automigration for every entity, in dependency order.
func Migrate(gdb *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Label{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
		&models.UserBehavior{},
	}

	for _, model := range models {
		if err := gdb.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}
