// Package models contains data structures for the application's domain models.
package models

import "time"

// Follow records that one user wants another author's posts in their
// personalized feed. The (follower, author) pair is unique and a user can
// never follow themselves; the service layer rejects self-follows before
// they reach the database.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"follower_id"`
	AuthorID   uint      `gorm:"not null;uniqueIndex:idx_follows_pair;index" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Author   User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
