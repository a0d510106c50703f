package repository

import (
	"context"
	"errors"

	"devconnector/internal/cache"
	"devconnector/internal/models"

	"gorm.io/gorm"
)

// ErrNoProfile is the not-found error for profile lookups. A syntactically
// invalid user id yields the same error as an unassigned one.
var ErrNoProfile = models.NewNotFoundError("no profile for this user")

// ProfileRepository owns the profile aggregate. Experience and education
// entries are mutated only through these operations; every mutation returns
// the full refreshed aggregate.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, incoming *models.Profile, suppliedFields []string) (*models.Profile, error)
	AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withAggregate preloads the owning user and the embedded sub-collections.
// Experience and education are ordered most-recent-insertion-first, so a new
// entry always renders at the top of the profile.
func (r *profileRepository) withAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("experiences.id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("educations.id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.withAggregate(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, models.NewInternalError(err)
	}
	profile.Normalize()
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	err := cache.Aside(ctx, cache.ProfilesKey, &profiles, cache.ProfilesTTL, func() error {
		if err := r.withAggregate(r.db.WithContext(ctx)).Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		for i := range profiles {
			profiles[i].Normalize()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert creates the profile when none exists for incoming.UserID, otherwise
// updates exactly the columns named in suppliedFields (plus the social
// sub-record, which is replaced wholesale). Untouched columns keep their
// prior values.
func (r *profileRepository) Upsert(ctx context.Context, incoming *models.Profile, suppliedFields []string) (*models.Profile, error) {
	var existing models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", incoming.UserID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(incoming).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	case err != nil:
		return nil, models.NewInternalError(err)
	default:
		columns := append([]string{
			"status", "skills",
			"social_youtube", "social_twitter", "social_facebook",
			"social_linkedin", "social_instagram",
		}, suppliedFields...)
		if err := r.db.WithContext(ctx).
			Model(&existing).
			Select(columns).
			Updates(incoming).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	cache.InvalidateProfiles(ctx)
	return r.GetByUserID(ctx, incoming.UserID)
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error) {
	profile, err := r.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateProfiles(ctx)
	return r.GetByUserID(ctx, userID)
}

// RemoveExperience deletes the entry by id within the owner's profile.
// A missing id is reported as not-found rather than silently ignored.
func (r *profileRepository) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := r.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("no experience for this id")
	}

	cache.InvalidateProfiles(ctx)
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error) {
	profile, err := r.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateProfiles(ctx)
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := r.lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("no education for this id")
	}

	cache.InvalidateProfiles(ctx)
	return r.GetByUserID(ctx, userID)
}

// DeleteByUserID removes the profile and its sub-collections. It is a no-op
// when the user never created a profile.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return models.NewInternalError(err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&models.Profile{}, profile.ID).Error; err != nil {
			return models.NewInternalError(err)
		}
		cache.InvalidateProfiles(ctx)
		return nil
	})
}

// lookup fetches the bare profile row (no preloads) for mutation paths.
func (r *profileRepository) lookup(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoProfile
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}
