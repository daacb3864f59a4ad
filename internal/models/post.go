// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents an authored entry in the Plume application.
// CreatedAt is assigned by the server on insert and is never modified by
// edits. Deleting a group leaves its posts in place with a null group ref.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	GroupID  *uint  `gorm:"index" json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
