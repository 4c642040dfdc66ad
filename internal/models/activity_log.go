package models

import "gorm.io/gorm"

// ActivityLog is the append-only audit trail of a task. Rows are only ever
// created, never updated or deleted, except when the owning task goes away.
type ActivityLog struct {
	gorm.Model

	TaskID      uint   `gorm:"not null;index"`
	UserID      uint   `gorm:"not null;index"`
	Action      string `gorm:"not null"` // "created", "updated", "status_changed", "assigned", "commented", "completed"
	Description string `gorm:"not null"`
	OldValue    *string
	NewValue    *string

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
