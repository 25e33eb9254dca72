package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// experience/education child rows.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, profile *models.Profile, exp *models.Experience) error
	DeleteExperience(ctx context.Context, profile *models.Profile, expID uint) error
	AddEducation(ctx context.Context, profile *models.Profile, edu *models.Education) error
	DeleteEducation(ctx context.Context, profile *models.Profile, eduID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// newestFirst orders child rows so the most recently added entry comes first,
// matching list-prepend semantics.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("User").
			Preload("Experience", newestFirst).
			Preload("Education", newestFirst).
			Where("user_id = ?", userID).
			First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile

	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("User").
			Preload("Experience", newestFirst).
			Preload("Education", newestFirst).
			Order("created_at DESC").
			Find(&profiles).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// DeleteByUserID hard-deletes the profile and its child rows. A missing
// profile is not an error: account deletion must succeed for users that
// never created a profile.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return models.NewInternalError(err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, profile *models.Profile, exp *models.Experience) error {
	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) DeleteExperience(ctx context.Context, profile *models.Profile, expID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Experience", expID)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, profile *models.Profile, edu *models.Education) error {
	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) DeleteEducation(ctx context.Context, profile *models.Profile, eduID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Education", eduID)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}
