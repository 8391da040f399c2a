package repositories

import (
	"errors"
	"fmt"
	"magicbio/internal/models"

	"gorm.io/gorm"
)

// GORMBioRepository is a GORM implementation of BioRepository.
type GORMBioRepository struct {
	db *gorm.DB
}

// NewGORMBioRepository creates a new instance of GORMBioRepository.
func NewGORMBioRepository(db *gorm.DB) *GORMBioRepository {
	return &GORMBioRepository{
		db: db,
	}
}

// GetByUsername retrieves a profile by exact username match.
// Returns (nil, nil) when no profile exists for the username.
func (r *GORMBioRepository) GetByUsername(username string) (*models.Bio, error) {
	var bio models.Bio
	if err := r.db.First(&bio, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bio by username %s: %w", username, err)
	}
	return &bio, nil
}

// GetByUserID retrieves the profile owned by the given user.
func (r *GORMBioRepository) GetByUserID(userID string) (*models.Bio, error) {
	var bio models.Bio
	if err := r.db.First(&bio, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("bio for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get bio by user ID %s: %w", userID, err)
	}
	return &bio, nil
}

// Update saves an existing profile.
func (r *GORMBioRepository) Update(bio *models.Bio) error {
	res := r.db.Save(bio) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update bio: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows were
		// affected by an update, so we check RowsAffected.
		return fmt.Errorf("bio with ID %s not found for update", bio.ID)
	}
	return nil
}
