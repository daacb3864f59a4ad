package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"plume/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{MaxDays: 90})

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	if err := Groups(db); err != nil {
		return fmt.Errorf("failed to seed built-in groups: %w", err)
	}
	var groups []models.Group
	if err := db.Order("id").Find(&groups).Error; err != nil {
		return fmt.Errorf("failed to load groups: %w", err)
	}
	log.Printf("✓ %d groups available", len(groups))

	posts, err := createPosts(factory, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	numComments, err := createComments(factory, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", numComments)

	numFollows, err := createFollows(factory, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follows created", numFollows)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include some specific users for consistency if cleaning
	if count >= 3 {
		baseUsers := []string{"plume", "editor", "test"}
		for _, name := range baseUsers {
			name := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the originals."
				u.Avatar = fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name)
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createPosts(factory *Factory, users []*models.User, groups []models.Group, count int) ([]*models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]*models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]

		// roughly 60% of posts go into a group
		var group *models.Group
		if len(groups) > 0 && r.Float32() < 0.6 {
			group = &groups[r.Intn(len(groups))]
		}

		posts = append(posts, factory.BuildPost(user, group))
	}

	if err := factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(factory *Factory, users []*models.User, posts []*models.Post) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	total := 0

	for _, post := range posts {
		for i := 0; i < r.Intn(5); i++ {
			user := users[r.Intn(len(users))]
			if _, err := factory.CreateComment(user, post); err != nil {
				return total, err
			}
			total++
		}
	}

	return total, nil
}

func createFollows(factory *Factory, users []*models.User) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	total := 0

	for _, follower := range users {
		for i := 0; i < r.Intn(6); i++ {
			author := users[r.Intn(len(users))]
			if author.ID == follower.ID {
				continue
			}
			if err := factory.CreateFollow(follower, author); err != nil {
				return total, err
			}
			total++
		}
	}

	return total, nil
}
