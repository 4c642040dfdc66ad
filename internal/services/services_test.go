package services_test

import (
	"testing"

	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, username, role string) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: string(passwordHash),
		IsActive:     true,
	}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	return user
}

func createProject(t *testing.T, gdb *gorm.DB, name string, creator models.User, members ...models.User) models.Project {
	t.Helper()

	project := models.Project{
		Name:        name,
		CreatedByID: creator.ID,
		IsActive:    true,
	}

	if err := gdb.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project %s: %v", name, err)
	}

	for _, member := range members {
		membership := models.ProjectMembership{UserID: member.ID, ProjectID: project.ID}
		if err := gdb.Create(&membership).Error; err != nil {
			t.Fatalf("failed to add member %s: %v", member.Username, err)
		}
	}

	return project
}

func createLabel(t *testing.T, gdb *gorm.DB, project models.Project, name string) models.Label {
	t.Helper()

	label := models.Label{Name: name, Color: "#fbbf24", ProjectID: project.ID}

	if err := gdb.Create(&label).Error; err != nil {
		t.Fatalf("failed to create label %s: %v", name, err)
	}

	return label
}

func createTask(t *testing.T, gdb *gorm.DB, project models.Project, creator models.User, in services.CreateTaskInput) models.Task {
	t.Helper()

	task, err := services.CreateTask(gdb, project, creator.ID, in)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}
