// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/avatar"
	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var statuses = []string{
	"Junior Developer", "Developer", "Senior Developer",
	"Student or Learning", "Instructor", "Manager",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL",
	"React", "Vue", "Node.js", "Docker", "Kubernetes", "PostgreSQL",
	"Redis", "AWS", "GCP", "Terraform", "GraphQL", "HTML", "CSS",
}

var degrees = []string{
	"BSc Computer Science", "MSc Software Engineering",
	"Bootcamp Certificate", "BA Mathematics", "Self-taught",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   avatar.URL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// CreateProfile constructs and persists a profile for the given user,
// including a couple of experience and education entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:         user.ID,
		Status:         pick(f.rand, statuses),
		Skills:         f.pickSkills(),
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Social: models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", strings.ToLower(gofakeit.Username())),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", strings.ToLower(gofakeit.Username())),
		},
	}

	for i := 0; i < 1+f.rand.Intn(3); i++ {
		from := f.pastDate(8)
		exp := models.Experience{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		}
		if !exp.Current {
			to := from.AddDate(0, 6+f.rand.Intn(30), 0)
			exp.To = &to
		}
		profile.Experience = append(profile.Experience, exp)
	}

	from := f.pastDate(12)
	to := from.AddDate(3+f.rand.Intn(2), 0, 0)
	profile.Education = append(profile.Education, models.Education{
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       pick(f.rand, degrees),
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(8),
	})

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// CreatePost constructs and persists a post authored by user, with a
// realistic created_at spread over the last maxDays days.
func (f *Factory) CreatePost(user *models.User, maxDays int, overrides ...func(*models.Post)) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}
	post := &models.Post{
		UserID:       user.ID,
		Text:         gofakeit.Paragraph(1, 2, 8, " "),
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		CreatedAt: time.Now().
			Add(-time.Duration(f.rand.Intn(maxDays)) * 24 * time.Hour).
			Add(-time.Duration(f.rand.Intn(24)) * time.Hour),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// CreateComment persists a comment by user on post.
func (f *Factory) CreateComment(post *models.Post, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:       post.ID,
		UserID:       user.ID,
		Text:         gofakeit.Sentence(8 + f.rand.Intn(10)),
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// CreateLike persists user's like on post. Duplicate likes are skipped.
func (f *Factory) CreateLike(post *models.Post, user *models.User) error {
	like := &models.Like{PostID: post.ID, UserID: user.ID}
	err := f.db.Create(like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}

func (f *Factory) pickSkills() []string {
	n := 3 + f.rand.Intn(5)
	perm := f.rand.Perm(len(skillPool))
	skills := make([]string, 0, n)
	for _, idx := range perm[:n] {
		skills = append(skills, skillPool[idx])
	}
	return skills
}

func (f *Factory) pastDate(maxYears int) time.Time {
	days := f.rand.Intn(maxYears * 365)
	return time.Now().AddDate(0, 0, -days).Truncate(24 * time.Hour)
}

func pick(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}
