package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBehavior is an append-only analytics record of a user action. It feeds
// aggregate counting only and never participates in authorization or task
// lifecycle decisions.
type UserBehavior struct {
	gorm.Model

	UserID          uint   `gorm:"not null;index"`
	ActionType      string `gorm:"not null"` // e.g. "user_login", "task_status_update"
	TaskID          *uint  `gorm:"index"`
	DurationSeconds *uint
	Metadata        datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	User User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Task *Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
