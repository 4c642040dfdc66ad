package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// User roles.
const (
	RoleOwnerManager = "owner_manager"
	RoleMember       = "member"
)

// Task statuses, in board-column order.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCodeReview = "code_review"
	StatusDone       = "done"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Activity log actions.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
	ActionAssigned      = "assigned"
	ActionCommented     = "commented"
	ActionCompleted     = "completed"
)

// TaskStatuses lists every status in kanban column order. The enum defines
// allowed values only; any status may follow any other.
var TaskStatuses = []string{StatusTodo, StatusInProgress, StatusCodeReview, StatusDone}

// StatusNames maps a status to its board column display name.
var StatusNames = map[string]string{
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusCodeReview: "Code Review",
	StatusDone:       "Done",
}

var TaskPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ValidStatus(s string) bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func ValidPriority(p string) bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func ValidRole(r string) bool {
	return r == RoleOwnerManager || r == RoleMember
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
