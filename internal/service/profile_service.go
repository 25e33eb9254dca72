// Package service contains the business rules between HTTP handlers and repositories.
package service

import (
	"context"
	"errors"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

// ProfileService owns profile upsert/merge semantics and the
// experience/education list editing rules.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

// SocialLinksInput carries the optional social URL fields of an upsert request.
type SocialLinksInput struct {
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

// UpsertProfileInput carries a profile create-or-update request. Skills is
// the raw comma-separated string as sent by clients.
type UpsertProfileInput struct {
	UserID         uint
	Status         string
	Skills         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	Social         SocialLinksInput
}

// Upsert creates the caller's profile or partially updates it. Only fields
// present in the request overwrite stored values, including the social
// sub-fields.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	if in.Status == "" {
		return nil, models.NewValidationError("Status is required")
	}
	if in.Skills == "" {
		return nil, models.NewValidationError("Skills are required")
	}
	skills := validation.NormalizeSkills(in.Skills)
	if len(skills) == 0 {
		return nil, models.NewValidationError("Skills are required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		profile = &models.Profile{UserID: in.UserID}
	}

	profile.Status = in.Status
	profile.Skills = skills
	if in.Company != "" {
		profile.Company = in.Company
	}
	if in.Website != "" {
		profile.Website = in.Website
	}
	if in.Location != "" {
		profile.Location = in.Location
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
	if in.GithubUsername != "" {
		profile.GithubUsername = in.GithubUsername
	}
	if in.Social.Youtube != "" {
		profile.Social.Youtube = in.Social.Youtube
	}
	if in.Social.Twitter != "" {
		profile.Social.Twitter = in.Social.Twitter
	}
	if in.Social.Facebook != "" {
		profile.Social.Facebook = in.Social.Facebook
	}
	if in.Social.Linkedin != "" {
		profile.Social.Linkedin = in.Social.Linkedin
	}
	if in.Social.Instagram != "" {
		profile.Social.Instagram = in.Social.Instagram
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// DeleteAccount removes the caller's profile and user record. The profile
// delete is a no-op for users that never created one.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// ExperienceInput carries an add-experience request. From and To are dates
// in "2006-01-02" or RFC 3339 form.
type ExperienceInput struct {
	UserID      uint
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

func (s *ProfileService) AddExperience(ctx context.Context, in ExperienceInput) (*models.Profile, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Company == "" {
		return nil, models.NewValidationError("Company is required")
	}
	from, to, err := parseDateRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, profile, exp); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

// RemoveExperience deletes the identified entry from the caller's profile.
// A missing entry id is an explicit NotFound failure.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteExperience(ctx, profile, expID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// EducationInput carries an add-education request.
type EducationInput struct {
	UserID       uint
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

func (s *ProfileService) AddEducation(ctx context.Context, in EducationInput) (*models.Profile, error) {
	if in.School == "" {
		return nil, models.NewValidationError("School is required")
	}
	if in.Degree == "" {
		return nil, models.NewValidationError("Degree is required")
	}
	if in.FieldOfStudy == "" {
		return nil, models.NewValidationError("Field of study is required")
	}
	from, to, err := parseDateRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, profile, edu); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, in.UserID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteEducation(ctx, profile, eduID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseDateRange(fromStr, toStr string) (time.Time, *time.Time, error) {
	if fromStr == "" {
		return time.Time{}, nil, models.NewValidationError("From date is required")
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("From date must be a valid date (YYYY-MM-DD)")
	}
	if toStr == "" {
		return from, nil, nil
	}
	to, err := parseDate(toStr)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError("To date must be a valid date (YYYY-MM-DD)")
	}
	return from, &to, nil
}

func isNotFound(err error) bool {
	var appErr *models.AppError
	return errors.As(err, &appErr) && appErr.Code == models.CodeNotFound
}
