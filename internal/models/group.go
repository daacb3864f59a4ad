// Package models contains data structures for the application's domain models.
package models

import "time"

// Group represents a topic community posts can be filed under.
// The slug is assigned on creation and never changed afterwards; feed URLs
// reference groups by slug.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}
