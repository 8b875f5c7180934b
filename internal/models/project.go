package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	OwnerID     uint `gorm:"not null;index"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	// Deleting a project intentionally leaves its tasks in place, so no
	// delete cascade on this association.
	Tasks []Task `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade"`
}
