package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	Title        string `gorm:"not null"`
	Description  string
	ProjectID    uint  `gorm:"not null;index"`
	CreatedByID  uint  `gorm:"not null;index"`
	AssignedToID *uint `gorm:"index"`
	Status       string `gorm:"not null;default:todo;index"`
	Priority     string `gorm:"not null;default:medium"`
	DueDate      *time.Time
	EstimatedHours *uint
	ActualHours    uint   `gorm:"not null;default:0"`
	TaskKey        string `gorm:"uniqueIndex;not null"` // e.g. "TIS-25"

	// Relationships
	Project      Project       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy    User          `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo   *User         `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Labels       []Label       `gorm:"many2many:task_labels"`
	Comments     []Comment     `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ActivityLogs []ActivityLog `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
