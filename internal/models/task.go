package models

import "gorm.io/gorm"

type Task struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:todo"` // "todo", "in-progress", "done"
	ProjectID   uint   `gorm:"not null;index"`
}
