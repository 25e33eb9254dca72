package server

import (
	"errors"
	"net/http/httptest"
	"testing"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	assert.Equal(t, "ID", humanizeParam("id"))
	assert.Equal(t, "user ID", humanizeParam("userId"))
	assert.Equal(t, "comment ID", humanizeParam("commentId"))
	assert.Equal(t, "post ID", humanizeParam("postId"))
	assert.Equal(t, "username", humanizeParam("username"))
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.NewValidationError("bad"), fiber.StatusBadRequest},
		{models.NewDuplicateEmailError(), fiber.StatusBadRequest},
		{models.NewInvalidCredentialsError(), fiber.StatusBadRequest},
		{models.NewAlreadyLikedError(), fiber.StatusBadRequest},
		{models.NewNotLikedError(), fiber.StatusBadRequest},
		{models.NewUnauthorizedError("no"), fiber.StatusUnauthorized},
		{models.NewForbiddenError("no"), fiber.StatusForbidden},
		{models.NewNotFoundError("Post", 1), fiber.StatusNotFound},
		{models.NewUpstreamError("github", 404), fiber.StatusBadGateway},
		{models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{errors.New("plain"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusForError(tc.err), "%v", tc.err)
	}
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/", func(c *fiber.Ctx) error {
		got = parsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	// A zero limit means no cap at all.
	cases := []struct {
		query  string
		limit  int
		offset int
	}{
		{"", 0, 0},
		{"?limit=5&offset=10", 5, 10},
		{"?limit=-1", 0, 0},
		{"?offset=-3", 0, 0},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		assert.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, tc.limit, got.Limit, tc.query)
		assert.Equal(t, tc.offset, got.Offset, tc.query)
	}
}
