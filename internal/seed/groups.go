package seed

import (
	"fmt"

	"plume/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInGroup is a permanent system group.
type BuiltInGroup struct {
	Title       string
	Slug        string
	Description string
}

// BuiltInGroups defines the permanent system groups.
var BuiltInGroups = []BuiltInGroup{
	{Title: "The Commons", Slug: "commons", Description: "General discussion for Plume."},
	{Title: "Announcements", Slug: "announcements", Description: "Platform news and updates."},
	{Title: "Writing Desk", Slug: "writing", Description: "Essays, drafts, and craft talk."},
	{Title: "The Reading Room", Slug: "books", Description: "Books, reviews, and reading lists."},
	{Title: "The Projection Booth", Slug: "movies", Description: "Film discussion and recommendations."},
	{Title: "The Listening Post", Slug: "music", Description: "Music discovery and discussion."},
	{Title: "The Workshop", Slug: "development", Description: "Software development discussions."},
	{Title: "The Darkroom", Slug: "photography", Description: "Photography and visual work."},
	{Title: "The Field Guide", Slug: "travel", Description: "Trips, routes, and places worth the detour."},
	{Title: "The Pantry", Slug: "food", Description: "Food, cooking, and recipes."},
	{Title: "The Arcade", Slug: "gaming", Description: "Gaming across all platforms."},
	{Title: "The Observatory", Slug: "science", Description: "Science news and long reads."},
}

// Groups seeds the permanent built-in groups. Existing groups are updated in
// place, keyed by slug, so the preset can be re-applied on every boot.
func Groups(db *gorm.DB) error {
	for _, item := range BuiltInGroups {
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error
		if err != nil {
			return fmt.Errorf("seed built-in group %s: %w", item.Slug, err)
		}
	}

	return nil
}
