package types

import "time"

type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	AvatarURL  string    `json:"avatar_url"`
	DateJoined time.Time `json:"date_joined"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LabelResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	Content   string       `json:"content"`
	Author    UserResponse `json:"author"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ActivityLogResponse struct {
	ID          uint         `json:"id"`
	Action      string       `json:"action"`
	Description string       `json:"description"`
	User        UserResponse `json:"user"`
	OldValue    *string      `json:"old_value"`
	NewValue    *string      `json:"new_value"`
	Timestamp   time.Time    `json:"timestamp"`
}

type TaskResponse struct {
	ID             uint                  `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Project        uint                  `json:"project"`
	AssignedTo     *UserResponse         `json:"assigned_to"`
	CreatedBy      UserResponse          `json:"created_by"`
	Status         string                `json:"status"`
	Priority       string                `json:"priority"`
	Labels         []LabelResponse       `json:"labels"`
	DueDate        *time.Time            `json:"due_date"`
	EstimatedHours *uint                 `json:"estimated_hours"`
	ActualHours    uint                  `json:"actual_hours"`
	TaskKey        string                `json:"task_id"` // human-readable key, distinct from the numeric id
	Comments       []CommentResponse     `json:"comments"`
	ActivityLogs   []ActivityLogResponse `json:"activity_logs"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type ProjectResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedBy   uint            `json:"created_by"`
	Members     []UserResponse  `json:"members"`
	Labels      []LabelResponse `json:"labels"`
	TaskCount   int64           `json:"task_count"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type BehaviorResponse struct {
	ID              uint                   `json:"id"`
	ActionType      string                 `json:"action_type"`
	Task            *uint                  `json:"task"`
	DurationSeconds *uint                  `json:"duration_seconds"`
	Metadata        map[string]interface{} `json:"metadata"`
	Timestamp       time.Time              `json:"timestamp"`
}
