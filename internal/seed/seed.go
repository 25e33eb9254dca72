// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"devconnect/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data: users with developer
// profiles, a post feed, and scattered likes and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	factory := NewFactory(db)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	// Roughly four in five users get a profile, the rest stay bare accounts.
	profiles := 0
	for _, user := range users {
		if r.Intn(5) == 0 {
			continue
		}
		if _, err := factory.CreateProfile(user); err != nil {
			return fmt.Errorf("failed to create profiles: %w", err)
		}
		profiles++
	}
	log.Printf("created %d profiles", profiles)

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		post, err := factory.CreatePost(author, 90)
		if err != nil {
			return fmt.Errorf("failed to create posts: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	likes, comments := 0, 0
	for _, post := range posts {
		for i := 0; i < r.Intn(6); i++ {
			if err := factory.CreateLike(post, users[r.Intn(len(users))]); err != nil {
				return fmt.Errorf("failed to create likes: %w", err)
			}
			likes++
		}
		for i := 0; i < r.Intn(4); i++ {
			if _, err := factory.CreateComment(post, users[r.Intn(len(users))]); err != nil {
				return fmt.Errorf("failed to create comments: %w", err)
			}
			comments++
		}
	}
	log.Printf("created %d likes and %d comments", likes, comments)

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, experiences, educations, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
