package models

import "gorm.io/gorm"

type Label struct {
	gorm.Model

	Name      string `gorm:"not null"`
	Color     string `gorm:"not null;default:#007bff"` // hex color code
	ProjectID uint   `gorm:"not null;index"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks   []Task  `gorm:"many2many:task_labels"`
}
