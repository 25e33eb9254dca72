package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer wires a Server over an in-memory database with the real
// repositories and services, and registers the full route table.
func setupTestServer(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config: &config.Config{
			JWTSecret: "test_secret",
			JWTTTL:    time.Hour,
		},
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	s.profileService = service.NewProfileService(profileRepo, userRepo)
	s.postService = service.NewPostService(postRepo, commentRepo, userRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

// do sends a JSON request, optionally authenticated, and returns the response.
func do(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func registerUser(t *testing.T, app *fiber.App, name, email string) string {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body map[string]string
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestAPIFlow(t *testing.T) {
	app := setupTestServer(t)

	aliceToken := registerUser(t, app, "Alice Dev", "alice@example.com")
	bobToken := registerUser(t, app, "Bob Dev", "bob@example.com")

	// A second registration with the same email fails no matter the password.
	resp0 := do(t, app, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Alice Clone",
		"email":    "alice@example.com",
		"password": "differentpass",
	})
	require.Equal(t, http.StatusBadRequest, resp0.StatusCode)
	assert.Equal(t, models.CodeDuplicateEmail, decodeErrorBody(t, resp0).Code)

	// Login matches registration credentials.
	resp := do(t, app, http.MethodPost, "/api/auth", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginBody struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeJSON(t, resp, &loginBody)
	assert.Equal(t, "alice@example.com", loginBody.User.Email)
	aliceID := loginBody.User.ID

	// The current-user endpoint resolves the token's subject and never
	// serializes the password hash.
	resp = do(t, app, http.MethodGet, "/api/auth", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]any
	decodeJSON(t, resp, &me)
	assert.EqualValues(t, aliceID, me["id"])
	assert.NotContains(t, me, "password")

	// The feed is closed to unauthenticated clients.
	resp = do(t, app, http.MethodGet, "/api/posts", "", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	t.Run("Profile Lifecycle", func(t *testing.T) {
		resp := do(t, app, http.MethodGet, "/api/profile/me", aliceToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = do(t, app, http.MethodPost, "/api/profile", aliceToken, map[string]any{
			"status": "Senior Developer",
			"skills": "Go, SQL, Docker",
			"social": map[string]string{"twitter": "https://twitter.com/alice"},
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var profile models.Profile
		decodeJSON(t, resp, &profile)
		assert.Equal(t, []string{"Go", "SQL", "Docker"}, profile.Skills)
		assert.Equal(t, "https://twitter.com/alice", profile.Social.Twitter)

		resp = do(t, app, http.MethodPut, "/api/profile/experience", aliceToken, map[string]any{
			"title":   "Backend Engineer",
			"company": "Initech",
			"from":    "2021-03-01",
			"current": true,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeJSON(t, resp, &profile)
		require.Len(t, profile.Experience, 1)
		assert.Equal(t, "Initech", profile.Experience[0].Company)

		// The public profile view requires no token.
		resp = do(t, app, http.MethodGet, fmt.Sprintf("/api/profile/user/%d", aliceID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeJSON(t, resp, &profile)
		assert.Equal(t, "Senior Developer", profile.Status)

		resp = do(t, app, http.MethodGet, "/api/profile/all", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var profiles []models.Profile
		decodeJSON(t, resp, &profiles)
		assert.Len(t, profiles, 1)
	})

	t.Run("Post Lifecycle", func(t *testing.T) {
		resp := do(t, app, http.MethodPost, "/api/posts", aliceToken, map[string]string{
			"text": "Shipped the new feed",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var post models.Post
		decodeJSON(t, resp, &post)
		assert.Equal(t, "Alice Dev", post.AuthorName)
		postID := post.ID

		// Bob likes the post once; the second attempt is rejected.
		resp = do(t, app, http.MethodPut, fmt.Sprintf("/api/posts/like/%d", postID), bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var likes []models.Like
		decodeJSON(t, resp, &likes)
		assert.Len(t, likes, 1)

		resp = do(t, app, http.MethodPut, fmt.Sprintf("/api/posts/like/%d", postID), bobToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		errResp := decodeErrorBody(t, resp)
		assert.Equal(t, models.CodeAlreadyLiked, errResp.Code)

		resp = do(t, app, http.MethodPut, fmt.Sprintf("/api/posts/comment/%d", postID), bobToken, map[string]string{
			"text": "Nice work",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var comments []models.Comment
		decodeJSON(t, resp, &comments)
		require.Len(t, comments, 1)
		commentID := comments[0].ID

		// Only the comment author may remove it.
		resp = do(t, app, http.MethodDelete,
			fmt.Sprintf("/api/posts/comment/%d/%d", postID, commentID), aliceToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = do(t, app, http.MethodDelete,
			fmt.Sprintf("/api/posts/comment/%d/%d", postID, commentID), bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeJSON(t, resp, &comments)
		assert.Empty(t, comments)

		// Only the post author may remove the post.
		resp = do(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), bobToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = do(t, app, http.MethodPut, fmt.Sprintf("/api/posts/unlike/%d", postID), bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeJSON(t, resp, &likes)
		assert.Empty(t, likes)

		resp = do(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), aliceToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = do(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), aliceToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Account Deletion", func(t *testing.T) {
		resp := do(t, app, http.MethodDelete, "/api/profile", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		decodeJSON(t, resp, &body)
		assert.Equal(t, "User deleted", body["message"])

		// The deleted user's token no longer resolves.
		resp = do(t, app, http.MethodGet, "/api/auth", bobToken, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		// Deletion releases the email: the same address registers again.
		registerUser(t, app, "Bob Reborn", "bob@example.com")
	})
}

func decodeErrorBody(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var errResp models.ErrorResponse
	decodeJSON(t, resp, &errResp)
	return errResp
}
