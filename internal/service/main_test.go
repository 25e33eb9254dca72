package service

import (
	"context"
	"errors"
	"testing"

	"devconnect/internal/database"
	"devconnect/internal/models"
	"devconnect/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	profiles    *ProfileService
	posts       *PostService
}

// setupEnv wires the services against real repositories over an in-memory
// database, so business rules are tested with the persistence semantics
// they rely on (unique indexes, row scoping).
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	env := &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		profileRepo: repository.NewProfileRepository(db),
		postRepo:    repository.NewPostRepository(db),
		commentRepo: repository.NewCommentRepository(db),
	}
	env.profiles = NewProfileService(env.profileRepo, env.userRepo)
	env.posts = NewPostService(env.postRepo, env.commentRepo, env.userRepo)
	return env
}

func (e *testEnv) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hashed", Avatar: "https://example.com/" + name + ".png"}
	require.NoError(t, e.userRepo.Create(context.Background(), user))
	return user
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
}
