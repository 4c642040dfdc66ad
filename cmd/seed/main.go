// Command seed loads a fixture data set: three users, the "Teams in Space"
// project with its labels, and a board of tasks spread across every status.
// Safe to run repeatedly; existing records are reused.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sprintboard-dev/sprintboard/db"
	"github.com/sprintboard-dev/sprintboard/internal/models"
	"github.com/sprintboard-dev/sprintboard/internal/services"
	"github.com/sprintboard-dev/sprintboard/internal/types"
	"golang.org/x/crypto/bcrypt"
)

type taskFixture struct {
	title          string
	description    string
	status         string
	priority       string
	assignee       *models.User
	estimatedHours uint
	actualHours    uint
	label          string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Creating sample data...")

	manager := ensureUser("scrum_master", "scrum@teamsinspace.com", "John", "Smith", types.RoleOwnerManager)
	alice := ensureUser("employee1", "employee1@teamsinspace.com", "Alice", "Johnson", types.RoleMember)
	bob := ensureUser("employee2", "employee2@teamsinspace.com", "Bob", "Wilson", types.RoleMember)

	project := ensureProject("Teams in Space", "Software project for space exploration team management", manager)

	if err := services.ReplaceProjectMembers(db.DB, project.ID, []uint{manager.ID, alice.ID, bob.ID}); err != nil {
		log.Fatalf("Failed to set project members: %v", err)
	}

	labels := map[string]models.Label{}
	for _, l := range []struct{ name, color string }{
		{"SPACE TRAVEL PARTNERS", "#fbbf24"},
		{"Local Mars Office", "#f97316"},
		{"SeeSpaceEZ Plus", "#60a5fa"},
		{"Large Team Support", "#a78bfa"},
	} {
		labels[l.name] = ensureLabel(project, l.name, l.color)
	}

	fixtures := []taskFixture{
		{"Engage Jupiter Express for outer solar system travel", "Establish partnership with Jupiter Express for long-distance space travel services", types.StatusTodo, types.PriorityHigh, &alice, 5, 0, "SPACE TRAVEL PARTNERS"},
		{"Create 90 day plans for all departments in the Mars Office", "Develop comprehensive 90-day strategic plans for each department", types.StatusTodo, types.PriorityUrgent, &bob, 9, 0, "Local Mars Office"},
		{"Engage Saturn's Rings Resort as a preferred provider", "Negotiate partnership with Saturn's Rings Resort for accommodation services", types.StatusTodo, types.PriorityMedium, &alice, 3, 0, "SPACE TRAVEL PARTNERS"},
		{"Enable Speedy SpaceCraft as the preferred", "Set up Speedy SpaceCraft as the preferred transportation provider", types.StatusTodo, types.PriorityHigh, &bob, 4, 0, "SPACE TRAVEL PARTNERS"},
		{"Requesting available flights is now taking > 5 seconds", "Performance issue with flight availability API needs optimization", types.StatusInProgress, types.PriorityHigh, &alice, 3, 0, "SeeSpaceEZ Plus"},
		{"Engage Saturn Shuttle Lines for group tours", "Establish partnership for group tour transportation services", types.StatusInProgress, types.PriorityMedium, &bob, 4, 0, "SPACE TRAVEL PARTNERS"},
		{"Establish a catering vendor to provide meal service", "Find and contract with a reliable catering service for space missions", types.StatusInProgress, types.PriorityMedium, &alice, 4, 0, "Local Mars Office"},
		{"Register with the Mars Ministry of Revenue", "Complete registration process with Mars tax authorities", types.StatusCodeReview, types.PriorityHigh, &bob, 3, 0, "Local Mars Office"},
		{"Draft network plan for Mars Office", "Create comprehensive network infrastructure plan for Mars office", types.StatusCodeReview, types.PriorityMedium, &alice, 3, 0, "Local Mars Office"},
		{"Homepage footer uses an inline style - should use a class", "Refactor homepage footer to use CSS classes instead of inline styles", types.StatusDone, types.PriorityLow, &bob, 3, 2, "Large Team Support"},
		{"Engage JetShuttle SpaceWays for travel", "Establish partnership with JetShuttle SpaceWays for travel services", types.StatusDone, types.PriorityHigh, &alice, 5, 6, "SPACE TRAVEL PARTNERS"},
	}

	for _, f := range fixtures {
		ensureTask(project, manager, f, labels)
	}

	log.Println("Sample data ready")
}

func ensureUser(username, email, firstName, lastName, role string) models.User {
	var user models.User

	if err := db.DB.Where("username = ?", username).First(&user).Error; err == nil {
		return user
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user = models.User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		PasswordHash: string(passwordHash),
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", username, err)
	}

	return user
}

func ensureProject(name, description string, creator models.User) models.Project {
	var project models.Project

	if err := db.DB.Where("name = ?", name).First(&project).Error; err == nil {
		return project
	}

	project = models.Project{
		Name:        name,
		Description: description,
		CreatedByID: creator.ID,
		IsActive:    true,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Fatalf("Failed to create project %s: %v", name, err)
	}

	return project
}

func ensureLabel(project models.Project, name, color string) models.Label {
	var label models.Label

	if err := db.DB.Where("project_id = ? AND name = ?", project.ID, name).First(&label).Error; err == nil {
		return label
	}

	label = models.Label{Name: name, Color: color, ProjectID: project.ID}

	if err := db.DB.Create(&label).Error; err != nil {
		log.Fatalf("Failed to create label %s: %v", name, err)
	}

	return label
}

func ensureTask(project models.Project, creator models.User, f taskFixture, labels map[string]models.Label) {
	var count int64

	db.DB.Model(&models.Task{}).Where("project_id = ? AND title = ?", project.ID, f.title).Count(&count)
	if count > 0 {
		return
	}

	var estimated *uint
	if f.estimatedHours > 0 {
		estimated = &f.estimatedHours
	}

	var assigneeID *uint
	if f.assignee != nil {
		assigneeID = &f.assignee.ID
	}

	_, err := services.CreateTask(db.DB, project, creator.ID, services.CreateTaskInput{
		Title:          f.title,
		Description:    f.description,
		Status:         f.status,
		Priority:       f.priority,
		EstimatedHours: estimated,
		ActualHours:    f.actualHours,
		AssignedToID:   assigneeID,
		LabelIDs:       []uint{labels[f.label].ID},
	})

	if err != nil {
		log.Fatalf("Failed to create task %q: %v", f.title, err)
	}
}
