// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := s.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
// @Summary Create or update the current user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Status         string                   `json:"status"`
		Skills         string                   `json:"skills"`
		Company        string                   `json:"company"`
		Website        string                   `json:"website"`
		Location       string                   `json:"location"`
		Bio            string                   `json:"bio"`
		GithubUsername string                   `json:"githubusername"`
		Social         service.SocialLinksInput `json:"social"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.UserContext(), service.UpsertProfileInput{
		UserID:         userID,
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.Social,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profile/all
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} models.Profile
// @Router /profile/all [get]
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:userId
// @Summary Profile by user ID
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/user/{userId} [get]
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
// @Summary Delete the current user and their profile
// @Tags profile
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.profileService.DeleteAccount(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

// AddExperience handles PUT /api/profile/experience
// @Summary Add a work-history entry
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/experience [put]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		From        string `json:"from"`
		To          string `json:"to"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), service.ExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:id
// @Summary Remove a work-history entry
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/experience/{id} [delete]
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	expID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveExperience(c.UserContext(), userID, expID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
// @Summary Add an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/education [put]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		School       string `json:"school"`
		Degree       string `json:"degree"`
		FieldOfStudy string `json:"fieldofstudy"`
		From         string `json:"from"`
		To           string `json:"to"`
		Current      bool   `json:"current"`
		Description  string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), service.EducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:id
// @Summary Remove an education entry
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/education/{id} [delete]
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	eduID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveEducation(c.UserContext(), userID, eduID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username
// @Summary Public GitHub repos for a username
// @Tags profile
// @Produce json
// @Success 200 {array} github.Repo
// @Failure 502 {object} models.ErrorResponse
// @Router /profile/github/{username} [get]
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	repos, err := s.github.ListRepos(c.UserContext(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(repos)
}
